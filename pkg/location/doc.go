// Package location holds the static country → state → city catalog used by
// the cascading selects and by the phone prefix check.
//
// The bundled catalog is embedded as YAML; callers can supply their own
// document through Load as long as it keeps the invariants enforced by
// Catalog.Validate: every country has at least one state and every state at
// least one city.
package location
