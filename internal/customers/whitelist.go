package customers

import "strings"

// Whitelist is the set of emails allowed to use the admin catalog endpoints.
// Loaded from config at startup; comparison is case-insensitive.
type Whitelist map[string]struct{}

func NewWhitelist(emails []string) Whitelist {
	w := make(Whitelist, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			w[e] = struct{}{}
		}
	}
	return w
}

func (w Whitelist) Allowed(email string) bool {
	_, ok := w[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
