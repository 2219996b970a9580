package bloom_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/spiderkit"
	"github.com/fwojciec/spiderkit/bloom"
)

// fp builds a deterministic fingerprint from a short string.
func fp(s string) spiderkit.Fingerprint {
	var f spiderkit.Fingerprint
	copy(f[:], s)
	return f
}

func TestNew_DerivesParameters(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(1000, 0.1)
	require.NoError(t, err)

	assert.Equal(t, uint64(4793), f.M())
	assert.Equal(t, 3, f.K())
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		p    float64
	}{
		{"zero capacity", 0, 0.1},
		{"negative capacity", -5, 0.1},
		{"zero rate", 1000, 0},
		{"rate of one", 1000, 1},
		{"rate above one", 1000, 1.5},
		{"negative rate", 1000, -0.1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := bloom.New(tt.n, tt.p)
			assert.Nil(t, f)
			assert.Equal(t, spiderkit.ECONFIG, spiderkit.ErrorCode(err))
		})
	}
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(1000, 0.01)
	require.NoError(t, err)

	keys := make([]spiderkit.Fingerprint, 1000)
	for i := range keys {
		keys[i] = fp(fmt.Sprintf("key/%d", i))
	}

	for i, key := range keys {
		if i%2 == 0 {
			f.Insert(key)
		} else {
			f.CheckAndMark(key)
		}
	}

	for _, key := range keys {
		assert.True(t, f.Contains(key))
		assert.True(t, f.CheckAndMark(key))
	}
}

func TestFilter_ContainsBeforeInsert(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(1000, 0.01)
	require.NoError(t, err)

	assert.False(t, f.Contains(fp("never inserted")))
	assert.False(t, f.CheckAndMark(fp("never inserted")))
	assert.True(t, f.Contains(fp("never inserted")))
}

func TestFilter_InsertIsIdempotent(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(1000, 0.01)
	require.NoError(t, err)

	key := fp("https://example.com/a")
	f.Insert(key)
	f.Insert(key)
	f.Insert(key)

	assert.True(t, f.Contains(key))
	assert.True(t, f.CheckAndMark(key))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems = 1000
		fpRate   = 0.1
		probes   = 100000
	)

	f, err := bloom.New(numItems, fpRate)
	require.NoError(t, err)

	for i := 0; i < numItems; i++ {
		f.Insert(fp(fmt.Sprintf("added/%d", i)))
	}

	falsePositives := 0
	for i := 0; i < probes; i++ {
		if f.Contains(fp(fmt.Sprintf("probe/%d", i))) {
			falsePositives++
		}
	}

	// The observed rate should be statistically consistent with the
	// configured 10%; the wide band avoids flakiness.
	observed := float64(falsePositives) / float64(probes)
	assert.Greater(t, observed, 0.07, "false positive rate %f below band", observed)
	assert.Less(t, observed, 0.13, "false positive rate %f above band", observed)
}

func TestFilter_CheckAndMarkIsAtomic(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(10000, 0.01)
	require.NoError(t, err)

	const workers = 64
	key := fp("https://example.com/contested")

	var newlyMarked atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if !f.CheckAndMark(key) {
				newlyMarked.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), newlyMarked.Load(),
		"exactly one worker must observe the key as newly marked")
}

func TestFilter_ConcurrentMixedUse(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(10000, 0.01)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fp(fmt.Sprintf("worker/%d/%d", w, i))
				f.Insert(key)
				assert.True(t, f.Contains(key))
				assert.True(t, f.CheckAndMark(key))
			}
		}(w)
	}
	wg.Wait()
}

func TestFilter_OverfillDegradesGracefully(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(100, 0.01)
	require.NoError(t, err)

	// Insert 10x the configured capacity; every inserted key must still
	// be reported present.
	for i := 0; i < 1000; i++ {
		f.Insert(fp(fmt.Sprintf("over/%d", i)))
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, f.Contains(fp(fmt.Sprintf("over/%d", i))))
	}
}
