package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user chose not to submit.
	ErrDeclined = errors.New("tui: submission declined")
	// ErrTooManyAttempts is returned when the form stayed invalid after the
	// configured number of correction rounds. It wraps the last aggregate
	// submission error.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
)
