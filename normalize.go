package spiderkit

import (
	"net/url"
	"strings"
)

// Origin is the comparison-stable form of a URL's scheme, host and path.
// Query parameters are deliberately left out so the origin remains
// reusable for comparisons that should ignore them; query
// canonicalization happens during fingerprinting.
type Origin struct {
	Scheme string
	Host   string // includes a port only when it is not the scheme default
	Path   string
}

// String reassembles the origin as scheme://host/path.
func (o Origin) String() string {
	return o.Scheme + "://" + o.Host + o.Path
}

// NormalizeOrigin canonicalizes a URL into an Origin:
//
//   - scheme and host are lower-cased
//   - the default port for the scheme is stripped (80 for http, 443 for https)
//   - an empty path collapses to "/"
//   - a single trailing slash beyond the root is removed
//
// Returns EINVALIDURL if the input cannot be parsed or lacks a scheme or
// host.
func NormalizeOrigin(rawURL string) (Origin, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Origin{}, Errorf(EINVALIDURL, "cannot parse URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Origin{}, Errorf(EINVALIDURL, "URL %q lacks scheme or host", rawURL)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	// Strip the default port for the scheme.
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}

	path := u.Path
	if path == "" {
		path = "/"
	} else if path != "/" && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return Origin{Scheme: scheme, Host: host, Path: path}, nil
}
