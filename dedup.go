package spiderkit

import "encoding/hex"

// Fingerprint is a fixed-width digest identifying a canonicalized
// request. Two requests for the same logical resource always produce the
// same fingerprint; distinct resources may collide with negligible
// probability, which the probabilistic filter already tolerates.
type Fingerprint [16]byte

// String returns the fingerprint as a lowercase hex string.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Fingerprinter derives a stable fingerprint from a request.
type Fingerprinter interface {
	// Fingerprint computes the request's canonical fingerprint.
	// Returns EINVALIDURL if the request URL cannot be normalized and
	// EINVALIDREQUEST if the request itself is malformed.
	Fingerprint(req *Request) (Fingerprint, error)
}

// Deduplicator tracks which fingerprints have been processed.
// Implementations may trade exactness for space: false positives are
// allowed, false negatives are not.
type Deduplicator interface {
	// Insert marks a fingerprint as seen. Idempotent.
	Insert(key Fingerprint)

	// Contains reports whether a fingerprint may have been seen.
	Contains(key Fingerprint) bool

	// CheckAndMark marks a fingerprint as seen and reports whether it
	// was already present before the call. The test and the mark are a
	// single atomic step with respect to concurrent calls.
	CheckAndMark(key Fingerprint) bool
}
