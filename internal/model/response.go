package model

// ResponseSet holds the addresses and domains observed in a form-response
// artifact during one check run. It is rebuilt on every run and never
// persisted.
type ResponseSet struct {
	Emails  map[string]struct{}
	Domains map[string]struct{}
}

// NewResponseSet returns an empty response set.
func NewResponseSet() ResponseSet {
	return ResponseSet{
		Emails:  make(map[string]struct{}),
		Domains: make(map[string]struct{}),
	}
}

// Add records a raw value if it looks like an email address, after
// normalization. The address's domain is recorded alongside it.
func (s ResponseSet) Add(raw string) {
	email := NormalizeEmail(raw)
	if !LooksLikeEmail(email) {
		return
	}
	s.Emails[email] = struct{}{}
	if d := Domain(email); d != "" {
		s.Domains[d] = struct{}{}
	}
}

// Merge folds another response set into this one.
func (s ResponseSet) Merge(other ResponseSet) {
	for e := range other.Emails {
		s.Emails[e] = struct{}{}
	}
	for d := range other.Domains {
		s.Domains[d] = struct{}{}
	}
}

// ContainsEmail reports whether the exact address responded.
func (s ResponseSet) ContainsEmail(email string) bool {
	_, ok := s.Emails[email]
	return ok
}

// ContainsDomain reports whether anyone at the domain responded.
func (s ResponseSet) ContainsDomain(domain string) bool {
	_, ok := s.Domains[domain]
	return ok
}

// Empty reports whether the set has no responding addresses.
func (s ResponseSet) Empty() bool {
	return len(s.Emails) == 0
}
