package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	for name, fn := range map[string]pongo2.FilterFunction{
		"trim":           filterTrim,
		"invalid_class":  filterInvalidClass,
		"strength_class": filterStrengthClass,
		"dom_id":         filterDOMID,
	} {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInvalidClass maps a truthy invalid flag to the error modifier class.
func filterInvalidClass(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsTrue() {
		return pongo2.AsValue("is-invalid"), nil
	}
	return pongo2.AsValue(""), nil
}

func filterStrengthClass(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	level := strings.TrimSpace(in.String())
	if level == "" {
		return pongo2.AsValue("rf-strength"), nil
	}
	return pongo2.AsValue("rf-strength rf-strength--" + level), nil
}

// filterDOMID turns an option label into an id fragment: "New York City"
// becomes "new-york-city".
func filterDOMID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(in.String())) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return pongo2.AsValue(strings.TrimSuffix(b.String(), "-")), nil
}
