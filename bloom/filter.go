// Package bloom provides a space-efficient probabilistic set over
// request fingerprints for crawl deduplication.
package bloom

import (
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/spaolacci/murmur3"

	"github.com/fwojciec/spiderkit"
)

// Compile-time interface verification.
var _ spiderkit.Deduplicator = (*Filter)(nil)

// Fixed seeds for the two base hashes of the double-hashing scheme.
// These must never change: the same key has to map to the same bit
// positions across process restarts.
const (
	seedA uint32 = 0x9747b28c
	seedB uint32 = 0x2e1b2138
)

// Filter is a classical Bloom filter: a packed bit array probed at k
// positions per key. Membership tests may report false positives but
// never false negatives. Bits are only ever set, never cleared; there is
// no deletion and no failure state. Inserting more than the configured
// capacity degrades the false positive rate gracefully.
//
// A single mutex guards the bit array so that CheckAndMark is atomic
// with respect to concurrent calls on the same key. The lock is held
// only for the k-position read-and-set, which is sufficient at typical
// crawler worker counts; a CAS-per-word design would scale further but
// is materially harder to get right.
type Filter struct {
	mu   sync.Mutex
	bits *bitset.BitSet
	m    uint64
	k    int
}

// New creates a Filter sized for n expected items with false positive
// rate p. The bit array length m and hash count k are derived as
//
//	m = ceil(-(n * ln p) / (ln 2)^2)
//	k = round((m / n) * ln 2), at least 1
//
// and are fixed for the lifetime of the filter. Returns ECONFIG if
// n <= 0 or p is outside the open interval (0, 1).
func New(n int, p float64) (*Filter, error) {
	if n <= 0 {
		return nil, spiderkit.Errorf(spiderkit.ECONFIG, "expected item count must be positive, got %d", n)
	}
	if p <= 0 || p >= 1 {
		return nil, spiderkit.Errorf(spiderkit.ECONFIG, "false positive rate must be in (0, 1), got %g", p)
	}

	m := uint64(math.Ceil(-(float64(n) * math.Log(p)) / (math.Ln2 * math.Ln2)))
	k := int(math.Round(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}

	return &Filter{
		bits: bitset.New(uint(m)),
		m:    m,
		k:    k,
	}, nil
}

// M returns the bit array length. Needed, together with K, to persist
// the filter state externally.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of probed positions per key.
func (f *Filter) K() int { return f.k }

// Insert marks a fingerprint as seen. Idempotent.
func (f *Filter) Insert(key spiderkit.Fingerprint) {
	h1, h2 := baseHashes(key)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < f.k; i++ {
		f.bits.Set(f.position(h1, h2, i))
	}
}

// Contains reports whether a fingerprint may have been inserted. A false
// result is definitive; a true result may be a false positive with
// probability approaching the configured rate at capacity.
func (f *Filter) Contains(key spiderkit.Fingerprint) bool {
	h1, h2 := baseHashes(key)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < f.k; i++ {
		if !f.bits.Test(f.position(h1, h2, i)) {
			return false
		}
	}
	return true
}

// CheckAndMark marks a fingerprint as seen and reports whether it was
// already present before the call. The test and the insert happen under
// one lock acquisition, so concurrent callers racing on the same key
// observe exactly one "newly marked" result.
func (f *Filter) CheckAndMark(key spiderkit.Fingerprint) bool {
	h1, h2 := baseHashes(key)

	f.mu.Lock()
	defer f.mu.Unlock()
	present := true
	for i := 0; i < f.k; i++ {
		pos := f.position(h1, h2, i)
		if !f.bits.Test(pos) {
			present = false
			f.bits.Set(pos)
		}
	}
	return present
}

// baseHashes derives the two independent 64-bit hashes for double
// hashing from the fingerprint.
func baseHashes(key spiderkit.Fingerprint) (uint64, uint64) {
	h1 := murmur3.Sum64WithSeed(key[:], seedA)
	h2 := murmur3.Sum64WithSeed(key[:], seedB)
	return h1, h2
}

// position returns the i-th probed bit position for the base hashes.
func (f *Filter) position(h1, h2 uint64, i int) uint {
	return uint((h1 + uint64(i)*h2) % f.m)
}
