package model

// genericDomains lists public mail providers that must never be treated as
// corporate: one person answering from gmail.com says nothing about the
// other gmail.com rows in the ledger.
var genericDomains = map[string]struct{}{
	"gmail.com":      {},
	"gmail.com.br":   {},
	"outlook.com":    {},
	"outlook.com.br": {},
	"hotmail.com":    {},
	"hotmail.com.br": {},
	"live.com":       {},
	"live.com.br":    {},
	"yahoo.com":      {},
	"yahoo.com.br":   {},
	"icloud.com":     {},
	"bol.com.br":     {},
	"uol.com.br":     {},
}

// IsGenericDomain reports whether the domain belongs to a public mail
// provider. extra supplements the built-in deny list (campaign config may
// add regional providers).
func IsGenericDomain(domain string, extra []string) bool {
	if _, ok := genericDomains[domain]; ok {
		return true
	}
	for _, e := range extra {
		if domain == e {
			return true
		}
	}
	return false
}
