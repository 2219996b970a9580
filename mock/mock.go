// Package mock provides function-field mocks of spiderkit interfaces
// for use in tests.
package mock

import (
	"net/url"
	"time"

	"github.com/fwojciec/spiderkit"
)

var _ spiderkit.Deduplicator = (*Deduplicator)(nil)

// Deduplicator is a mock implementation of spiderkit.Deduplicator.
type Deduplicator struct {
	InsertFn       func(key spiderkit.Fingerprint)
	ContainsFn     func(key spiderkit.Fingerprint) bool
	CheckAndMarkFn func(key spiderkit.Fingerprint) bool
}

func (d *Deduplicator) Insert(key spiderkit.Fingerprint) {
	d.InsertFn(key)
}

func (d *Deduplicator) Contains(key spiderkit.Fingerprint) bool {
	return d.ContainsFn(key)
}

func (d *Deduplicator) CheckAndMark(key spiderkit.Fingerprint) bool {
	return d.CheckAndMarkFn(key)
}

var _ spiderkit.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter is a mock implementation of spiderkit.Fingerprinter.
type Fingerprinter struct {
	FingerprintFn func(req *spiderkit.Request) (spiderkit.Fingerprint, error)
}

func (f *Fingerprinter) Fingerprint(req *spiderkit.Request) (spiderkit.Fingerprint, error) {
	return f.FingerprintFn(req)
}

var _ spiderkit.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of spiderkit.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html []byte, baseURL *url.URL) ([]spiderkit.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html []byte, baseURL *url.URL) ([]spiderkit.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}

var _ spiderkit.StatsCollector = (*StatsCollector)(nil)

// StatsCollector is a mock implementation of spiderkit.StatsCollector.
// Event methods with a nil function field are no-ops, so tests only
// wire up what they assert on.
type StatsCollector struct {
	RequestEnqueuedFn  func()
	RequestSentFn      func()
	RequestSucceededFn func(elapsed time.Duration)
	RequestFailedFn    func()
	RequestRetriedFn   func()
	RequestDroppedFn   func()
	ResponseReceivedFn func(status int, bytes int, fromCache bool)
	ItemScrapedFn      func()
	ItemProcessedFn    func()
	ItemDroppedFn      func()
	ParseTimedFn       func(elapsed time.Duration)
	SnapshotFn         func() spiderkit.StatsSnapshot
}

func (c *StatsCollector) RequestEnqueued() {
	if c.RequestEnqueuedFn != nil {
		c.RequestEnqueuedFn()
	}
}

func (c *StatsCollector) RequestSent() {
	if c.RequestSentFn != nil {
		c.RequestSentFn()
	}
}

func (c *StatsCollector) RequestSucceeded(elapsed time.Duration) {
	if c.RequestSucceededFn != nil {
		c.RequestSucceededFn(elapsed)
	}
}

func (c *StatsCollector) RequestFailed() {
	if c.RequestFailedFn != nil {
		c.RequestFailedFn()
	}
}

func (c *StatsCollector) RequestRetried() {
	if c.RequestRetriedFn != nil {
		c.RequestRetriedFn()
	}
}

func (c *StatsCollector) RequestDropped() {
	if c.RequestDroppedFn != nil {
		c.RequestDroppedFn()
	}
}

func (c *StatsCollector) ResponseReceived(status int, bytes int, fromCache bool) {
	if c.ResponseReceivedFn != nil {
		c.ResponseReceivedFn(status, bytes, fromCache)
	}
}

func (c *StatsCollector) ItemScraped() {
	if c.ItemScrapedFn != nil {
		c.ItemScrapedFn()
	}
}

func (c *StatsCollector) ItemProcessed() {
	if c.ItemProcessedFn != nil {
		c.ItemProcessedFn()
	}
}

func (c *StatsCollector) ItemDropped() {
	if c.ItemDroppedFn != nil {
		c.ItemDroppedFn()
	}
}

func (c *StatsCollector) ParseTimed(elapsed time.Duration) {
	if c.ParseTimedFn != nil {
		c.ParseTimedFn(elapsed)
	}
}

func (c *StatsCollector) Snapshot() spiderkit.StatsSnapshot {
	if c.SnapshotFn != nil {
		return c.SnapshotFn()
	}
	return spiderkit.StatsSnapshot{}
}
