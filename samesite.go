package spiderkit

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SameSite reports whether two URLs belong to the same registrable
// domain (eTLD+1), so that blog.example.com and www.example.com compare
// equal while example.co.uk and other.co.uk do not.
func SameSite(a, b *url.URL) bool {
	da, oka := registrableDomain(a)
	db, okb := registrableDomain(b)
	return oka && okb && da == db
}

func registrableDomain(u *url.URL) (string, bool) {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return domain, true
}
