// Package metrics implements crawl statistics collection on top of
// go-metrics counters, meters and timers.
package metrics

import (
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/fwojciec/spiderkit"
)

// Compile-time interface verification.
var _ spiderkit.StatsCollector = (*Collector)(nil)

// Collector aggregates crawl events. All methods are safe for
// concurrent use by multiple workers. Call Close when the crawl session
// ends to stop the meter goroutines.
type Collector struct {
	start time.Time

	requestsEnqueued  gometrics.Counter
	requestsSent      gometrics.Counter
	requestsSucceeded gometrics.Counter
	requestsFailed    gometrics.Counter
	requestsRetried   gometrics.Counter
	requestsDropped   gometrics.Counter

	responsesReceived  gometrics.Counter
	responsesFromCache gometrics.Counter
	bytesDownloaded    gometrics.Counter

	itemsScraped   gometrics.Counter
	itemsProcessed gometrics.Counter
	itemsDropped   gometrics.Counter

	requestTimer gometrics.Timer
	parseTimer   gometrics.Timer

	requestMeter  gometrics.Meter
	responseMeter gometrics.Meter
	itemMeter     gometrics.Meter

	mu           sync.Mutex
	statusCounts map[int]int64
}

// NewCollector creates a Collector with its clock started.
func NewCollector() *Collector {
	return &Collector{
		start: time.Now(),

		requestsEnqueued:  gometrics.NewCounter(),
		requestsSent:      gometrics.NewCounter(),
		requestsSucceeded: gometrics.NewCounter(),
		requestsFailed:    gometrics.NewCounter(),
		requestsRetried:   gometrics.NewCounter(),
		requestsDropped:   gometrics.NewCounter(),

		responsesReceived:  gometrics.NewCounter(),
		responsesFromCache: gometrics.NewCounter(),
		bytesDownloaded:    gometrics.NewCounter(),

		itemsScraped:   gometrics.NewCounter(),
		itemsProcessed: gometrics.NewCounter(),
		itemsDropped:   gometrics.NewCounter(),

		requestTimer: gometrics.NewTimer(),
		parseTimer:   gometrics.NewTimer(),

		requestMeter:  gometrics.NewMeter(),
		responseMeter: gometrics.NewMeter(),
		itemMeter:     gometrics.NewMeter(),

		statusCounts: make(map[int]int64),
	}
}

func (c *Collector) RequestEnqueued() { c.requestsEnqueued.Inc(1) }

func (c *Collector) RequestSent() {
	c.requestsSent.Inc(1)
	c.requestMeter.Mark(1)
}

func (c *Collector) RequestSucceeded(elapsed time.Duration) {
	c.requestsSucceeded.Inc(1)
	c.requestTimer.Update(elapsed)
}

func (c *Collector) RequestFailed()  { c.requestsFailed.Inc(1) }
func (c *Collector) RequestRetried() { c.requestsRetried.Inc(1) }
func (c *Collector) RequestDropped() { c.requestsDropped.Inc(1) }

func (c *Collector) ResponseReceived(status int, bytes int, fromCache bool) {
	c.responsesReceived.Inc(1)
	c.responseMeter.Mark(1)
	c.bytesDownloaded.Inc(int64(bytes))
	if fromCache {
		c.responsesFromCache.Inc(1)
	}

	c.mu.Lock()
	c.statusCounts[status]++
	c.mu.Unlock()
}

func (c *Collector) ItemScraped() {
	c.itemsScraped.Inc(1)
	c.itemMeter.Mark(1)
}

func (c *Collector) ItemProcessed() { c.itemsProcessed.Inc(1) }
func (c *Collector) ItemDropped()   { c.itemsDropped.Inc(1) }

func (c *Collector) ParseTimed(elapsed time.Duration) {
	c.parseTimer.Update(elapsed)
}

// Snapshot returns a point-in-time copy of the collected statistics.
func (c *Collector) Snapshot() spiderkit.StatsSnapshot {
	reqTimer := c.requestTimer.Snapshot()
	parseTimer := c.parseTimer.Snapshot()

	c.mu.Lock()
	statusCounts := make(map[int]int64, len(c.statusCounts))
	for code, count := range c.statusCounts {
		statusCounts[code] = count
	}
	c.mu.Unlock()

	return spiderkit.StatsSnapshot{
		RequestsEnqueued:  c.requestsEnqueued.Count(),
		RequestsSent:      c.requestsSent.Count(),
		RequestsSucceeded: c.requestsSucceeded.Count(),
		RequestsFailed:    c.requestsFailed.Count(),
		RequestsRetried:   c.requestsRetried.Count(),
		RequestsDropped:   c.requestsDropped.Count(),

		ResponsesReceived:  c.responsesReceived.Count(),
		ResponsesFromCache: c.responsesFromCache.Count(),
		BytesDownloaded:    c.bytesDownloaded.Count(),
		StatusCounts:       statusCounts,

		ItemsScraped:   c.itemsScraped.Count(),
		ItemsProcessed: c.itemsProcessed.Count(),
		ItemsDropped:   c.itemsDropped.Count(),

		Elapsed: time.Since(c.start),

		AvgRequestTime:   time.Duration(reqTimer.Mean()),
		MinRequestTime:   time.Duration(reqTimer.Min()),
		MaxRequestTime:   time.Duration(reqTimer.Max()),
		RequestTimeCount: reqTimer.Count(),

		AvgParseTime:   time.Duration(parseTimer.Mean()),
		MinParseTime:   time.Duration(parseTimer.Min()),
		MaxParseTime:   time.Duration(parseTimer.Max()),
		ParseTimeCount: parseTimer.Count(),

		RecentRequestsPerSec:  c.requestMeter.Rate1(),
		RecentResponsesPerSec: c.responseMeter.Rate1(),
		RecentItemsPerSec:     c.itemMeter.Rate1(),
	}
}

// Close stops the background goroutines owned by the meters and timers.
// The collector must not be used afterwards.
func (c *Collector) Close() {
	c.requestMeter.Stop()
	c.responseMeter.Stop()
	c.itemMeter.Stop()
	c.requestTimer.Stop()
	c.parseTimer.Stop()
}
