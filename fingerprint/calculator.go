// Package fingerprint derives stable, fixed-width keys from crawl
// requests. Two requests addressing the same logical resource produce
// identical fingerprints regardless of query parameter order, path
// dot-segments, URL casing or default ports.
package fingerprint

import (
	"encoding/binary"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"

	"github.com/fwojciec/spiderkit"
)

// Compile-time interface verification.
var _ spiderkit.Fingerprinter = (*Calculator)(nil)

// fingerprintSeed is the fixed seed of the 128-bit fingerprint hash.
// A per-process random seed would break reproducibility: the same
// logical request must map to the same filter bit positions across
// restarts.
const fingerprintSeed uint32 = 0x5f3759df

// separator joins canonical key components. A raw newline cannot occur
// in an HTTP method or a parsed URL, so the concatenation is
// unambiguous.
const separator = "\n"

// Calculator computes request fingerprints. The zero value is ready to
// use; it is stateless and safe for concurrent use.
type Calculator struct {
	// HeaderDigest, when set, contributes a digest of relevant headers
	// to the fingerprint. Which headers matter is the caller's policy;
	// when nil, headers never affect request identity.
	HeaderDigest func(h http.Header) []byte
}

// Fingerprint computes the canonical fingerprint of a request.
// Returns EINVALIDREQUEST for a nil request or empty method, and
// EINVALIDURL if the URL cannot be normalized.
func (c *Calculator) Fingerprint(req *spiderkit.Request) (spiderkit.Fingerprint, error) {
	if req == nil {
		return spiderkit.Fingerprint{}, spiderkit.Errorf(spiderkit.EINVALIDREQUEST, "nil request")
	}
	var headerDigest []byte
	if c.HeaderDigest != nil {
		headerDigest = c.HeaderDigest(req.Header)
	}
	return c.compute(req.Method, req.URL, req.Body, headerDigest)
}

// Compute computes a fingerprint from the raw parts of a request,
// without header contribution.
func (c *Calculator) Compute(method, rawURL string, body []byte) (spiderkit.Fingerprint, error) {
	return c.compute(method, rawURL, body, nil)
}

func (c *Calculator) compute(method, rawURL string, body, headerDigest []byte) (spiderkit.Fingerprint, error) {
	if method == "" {
		return spiderkit.Fingerprint{}, spiderkit.Errorf(spiderkit.EINVALIDREQUEST, "empty request method")
	}

	origin, err := spiderkit.NormalizeOrigin(rawURL)
	if err != nil {
		return spiderkit.Fingerprint{}, err
	}

	var b strings.Builder
	b.WriteString(strings.ToUpper(method))
	b.WriteString(separator)
	b.WriteString(origin.Scheme + "://" + origin.Host)
	b.WriteString(separator)
	b.WriteString(cleanPath(origin.Path))
	b.WriteString(separator)
	b.WriteString(canonicalQuery(rawQuery(rawURL)))
	if len(body) > 0 {
		b.WriteString(separator)
		b.WriteString(digest(body))
	}
	if len(headerDigest) > 0 {
		b.WriteString(separator)
		b.WriteString(digest(headerDigest))
	}

	h1, h2 := murmur3.Sum128WithSeed([]byte(b.String()), fingerprintSeed)

	var fp spiderkit.Fingerprint
	binary.BigEndian.PutUint64(fp[:8], h1)
	binary.BigEndian.PutUint64(fp[8:], h2)
	return fp, nil
}

// cleanPath resolves "." and ".." segments and enforces a leading slash.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// rawQuery extracts the query string portion of a URL, without the "?".
// The URL has already been validated by NormalizeOrigin at this point.
func rawQuery(rawURL string) string {
	s := rawURL
	if idx := strings.IndexByte(s, '#'); idx != -1 {
		s = s[:idx]
	}
	if idx := strings.IndexByte(s, '?'); idx != -1 {
		return s[idx+1:]
	}
	return ""
}

// canonicalQuery sorts query parameter pairs lexicographically by key,
// then by value, making parameter order irrelevant to the fingerprint.
func canonicalQuery(query string) string {
	if query == "" {
		return ""
	}

	type pair struct {
		key, value, raw string
	}

	parts := strings.Split(query, "&")
	pairs := make([]pair, 0, len(parts))
	for _, raw := range parts {
		if raw == "" {
			continue
		}
		key, value := raw, ""
		if idx := strings.IndexByte(raw, '='); idx != -1 {
			key, value = raw[:idx], raw[idx+1:]
		}
		pairs = append(pairs, pair{key: key, value: value, raw: raw})
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	raws := make([]string, len(pairs))
	for i, p := range pairs {
		raws[i] = p.raw
	}
	return strings.Join(raws, "&")
}

// digest returns a short stable digest of b, used for body and header
// contributions.
func digest(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
