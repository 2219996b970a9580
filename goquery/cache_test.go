package goquery_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/spiderkit"
	"github.com/fwojciec/spiderkit/goquery"
)

func TestSelectorCache_Get(t *testing.T) {
	t.Parallel()

	cache := goquery.NewSelectorCache()
	assert.Equal(t, 0, cache.Len())

	first, err := cache.Get("a[href]")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, cache.Len())

	// Second lookup hits the cache without growing it.
	_, err = cache.Get("a[href]")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestSelectorCache_InvalidSelector(t *testing.T) {
	t.Parallel()

	cache := goquery.NewSelectorCache()

	_, err := cache.Get("a[")
	assert.Equal(t, spiderkit.EINVALID, spiderkit.ErrorCode(err))
	assert.Equal(t, 0, cache.Len(), "failed compilations are not cached")
}

func TestSelectorCache_Prewarm(t *testing.T) {
	t.Parallel()

	cache := goquery.NewSelectorCache()
	cache.Prewarm()
	assert.Greater(t, cache.Len(), 5)
}

func TestSelectorCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := goquery.NewSelectorCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, err := cache.Get("a[href]")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
}
