package validation

import (
	"sort"
	"strings"
)

// DefaultDisposableDomains is the bundled sample of throwaway email domains.
var DefaultDisposableDomains = []string{
	"tempmail.com",
	"10minutemail.com",
	"mailinator.com",
	"yopmail.com",
	"guerrillamail.com",
}

// Denylist matches email domains exactly, ignoring case. The zero value
// blocks nothing.
type Denylist struct {
	domains map[string]struct{}
}

// NewDenylist builds a denylist from the supplied domains. Blank entries are
// dropped.
func NewDenylist(domains ...string) Denylist {
	return Denylist{}.With(domains...)
}

// DefaultDenylist returns a denylist seeded with DefaultDisposableDomains.
func DefaultDenylist() Denylist {
	return NewDenylist(DefaultDisposableDomains...)
}

// With returns a copy extended with extra domains.
func (d Denylist) With(domains ...string) Denylist {
	out := Denylist{domains: make(map[string]struct{}, len(d.domains)+len(domains))}
	for domain := range d.domains {
		out.domains[domain] = struct{}{}
	}
	for _, domain := range domains {
		normalized := normalizeDomain(domain)
		if normalized == "" {
			continue
		}
		out.domains[normalized] = struct{}{}
	}
	return out
}

// Contains reports an exact, case-insensitive domain match. Subdomains of a
// listed domain are not matched.
func (d Denylist) Contains(domain string) bool {
	if len(d.domains) == 0 {
		return false
	}
	_, ok := d.domains[normalizeDomain(domain)]
	return ok
}

// Domains lists the blocked domains sorted alphabetically.
func (d Denylist) Domains() []string {
	out := make([]string, 0, len(d.domains))
	for domain := range d.domains {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of blocked domains.
func (d Denylist) Len() int {
	return len(d.domains)
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
