package goquery

import (
	"sync"

	"github.com/andybalholm/cascadia"

	"github.com/fwojciec/spiderkit"
)

// SelectorCache caches compiled CSS selectors. Compiling the same
// selector for every page adds up when crawling many similarly
// structured pages; the cache is safe for concurrent use by multiple
// crawler goroutines.
type SelectorCache struct {
	mu        sync.RWMutex
	selectors map[string]cascadia.Selector
}

// NewSelectorCache creates an empty SelectorCache.
func NewSelectorCache() *SelectorCache {
	return &SelectorCache{selectors: make(map[string]cascadia.Selector)}
}

// Get returns the compiled selector, compiling and caching it on first
// use. Returns EINVALID if the selector cannot be compiled.
func (c *SelectorCache) Get(selector string) (cascadia.Selector, error) {
	c.mu.RLock()
	cached, ok := c.selectors[selector]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, spiderkit.Errorf(spiderkit.EINVALID, "cannot compile selector %q: %v", selector, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have compiled it in the meantime; keep the
	// first stored copy.
	if cached, ok := c.selectors[selector]; ok {
		return cached, nil
	}
	c.selectors[selector] = compiled
	return compiled, nil
}

// Len returns the number of cached selectors.
func (c *SelectorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.selectors)
}

// commonSelectors are the selectors used by link extraction plus other
// attributes pages commonly reference resources through.
var commonSelectors = []string{
	"a[href]",
	"link[href]",
	"script[src]",
	"img[src]",
	"audio[src]",
	"video[src]",
	"source[src]",
	"form[action]",
	"iframe[src]",
	"embed[src]",
	"object[data]",
}

// Prewarm populates the cache with commonly used selectors.
func (c *SelectorCache) Prewarm() {
	for _, selector := range commonSelectors {
		_, _ = c.Get(selector)
	}
}
