// Package orchestrator implements the registration form state machine. A Form
// is a single explicit state record; every user action arrives as a typed
// Event through Dispatch, which runs the relevant validators and the cascade
// controller, recomputes the submit gate, and performs the submit, reset and
// modal transitions.
//
// Phases:
//
//	Editing ──Submitted(invalid)──▶ SubmittedInvalid ──any edit──▶ Editing
//	Editing ──Submitted(valid)────▶ SubmittedSuccess ──ModalDismissed──▶ Editing
//
// A Form is not safe for concurrent use; hosts serialise access per session.
package orchestrator
