// Package strength scores passwords against five independent criteria and
// maps the score to a three-level label. The label is informational only.
package strength

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// MinLength is the length criterion; the password validator shares it.
const MinLength = 8

// Level is the classifier output. LevelNone is reserved for the empty
// password, which is never classified.
type Level int

const (
	LevelNone Level = iota
	LevelWeak
	LevelMedium
	LevelStrong
)

// Placeholder is the neutral label shown while no password is entered.
const Placeholder = "Strength: —"

func (l Level) String() string {
	switch l {
	case LevelWeak:
		return "weak"
	case LevelMedium:
		return "medium"
	case LevelStrong:
		return "strong"
	default:
		return ""
	}
}

// Label renders the text displayed next to the strength bar.
func (l Level) Label() string {
	switch l {
	case LevelWeak:
		return "Strength: Weak"
	case LevelMedium:
		return "Strength: Medium"
	case LevelStrong:
		return "Strength: Strong"
	default:
		return Placeholder
	}
}

// MarshalJSON encodes the level by name; LevelNone encodes as "".
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the names produced by MarshalJSON.
func (l *Level) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseLevel(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name back into a Level.
func ParseLevel(raw string) (Level, error) {
	switch raw {
	case "":
		return LevelNone, nil
	case "weak":
		return LevelWeak, nil
	case "medium":
		return LevelMedium, nil
	case "strong":
		return LevelStrong, nil
	default:
		return LevelNone, fmt.Errorf("strength: unknown level %q", raw)
	}
}

// Criteria records which of the five criteria a password satisfies.
type Criteria struct {
	Length    bool
	Lowercase bool
	Uppercase bool
	Digit     bool
	Symbol    bool
}

// Score counts the satisfied criteria.
func (c Criteria) Score() int {
	score := 0
	for _, ok := range []bool{c.Length, c.Lowercase, c.Uppercase, c.Digit, c.Symbol} {
		if ok {
			score++
		}
	}
	return score
}

// Evaluate inspects pw. Character classes are ASCII: anything outside
// [A-Za-z0-9] counts as a symbol.
func Evaluate(pw string) Criteria {
	c := Criteria{Length: utf8.RuneCountInString(pw) >= MinLength}
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lowercase = true
		case r >= 'A' && r <= 'Z':
			c.Uppercase = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c
}

// Score is shorthand for Evaluate(pw).Score().
func Score(pw string) int {
	return Evaluate(pw).Score()
}

// Classify maps the score to a level: ≤2 weak, 3–4 medium, 5 strong. The
// empty password yields LevelNone.
func Classify(pw string) Level {
	if pw == "" {
		return LevelNone
	}
	return ForScore(Score(pw))
}

// ForScore maps a raw score to its level.
func ForScore(score int) Level {
	switch {
	case score <= 2:
		return LevelWeak
	case score <= 4:
		return LevelMedium
	default:
		return LevelStrong
	}
}
