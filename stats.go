package spiderkit

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// StatsCollector records crawl events. Implementations must be safe for
// concurrent use by multiple workers.
type StatsCollector interface {
	RequestEnqueued()
	RequestSent()
	RequestSucceeded(elapsed time.Duration)
	RequestFailed()
	RequestRetried()
	RequestDropped()

	// ResponseReceived records a response with its status code, body
	// size and whether it was served from a cache.
	ResponseReceived(status int, bytes int, fromCache bool)

	ItemScraped()
	ItemProcessed()
	ItemDropped()

	// ParseTimed records the duration of a single parse.
	ParseTimed(elapsed time.Duration)

	// Snapshot returns a point-in-time copy of the collected statistics.
	Snapshot() StatsSnapshot
}

// StatsSnapshot is a point-in-time copy of crawl statistics, safe to
// read without synchronization.
type StatsSnapshot struct {
	RequestsEnqueued  int64
	RequestsSent      int64
	RequestsSucceeded int64
	RequestsFailed    int64
	RequestsRetried   int64
	RequestsDropped   int64

	ResponsesReceived  int64
	ResponsesFromCache int64
	BytesDownloaded    int64
	StatusCounts       map[int]int64

	ItemsScraped   int64
	ItemsProcessed int64
	ItemsDropped   int64

	Elapsed time.Duration

	AvgRequestTime   time.Duration
	MinRequestTime   time.Duration
	MaxRequestTime   time.Duration
	RequestTimeCount int64

	AvgParseTime   time.Duration
	MinParseTime   time.Duration
	MaxParseTime   time.Duration
	ParseTimeCount int64

	// Exponentially weighted recent rates, per second.
	RecentRequestsPerSec  float64
	RecentResponsesPerSec float64
	RecentItemsPerSec     float64
}

// RequestsPerSecond returns the overall request rate for the snapshot.
func (s StatsSnapshot) RequestsPerSecond() float64 {
	return ratePerSecond(s.RequestsSent, s.Elapsed)
}

// ResponsesPerSecond returns the overall response rate for the snapshot.
func (s StatsSnapshot) ResponsesPerSecond() float64 {
	return ratePerSecond(s.ResponsesReceived, s.Elapsed)
}

// ItemsPerSecond returns the overall item rate for the snapshot.
func (s StatsSnapshot) ItemsPerSecond() float64 {
	return ratePerSecond(s.ItemsScraped, s.Elapsed)
}

func ratePerSecond(count int64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(count) / secs
}

// Display formats the snapshot as a human-readable statistics block.
func (s StatsSnapshot) Display() string {
	var b strings.Builder
	b.WriteString("\nCrawl Statistics\n----------------\n")
	fmt.Fprintf(&b, "  duration : %s\n", FormatDuration(s.Elapsed))
	fmt.Fprintf(&b, "  speed    : req/s: %.2f, resp/s: %.2f, item/s: %.2f\n",
		s.RecentRequestsPerSec, s.RecentResponsesPerSec, s.RecentItemsPerSec)
	fmt.Fprintf(&b, "  requests : enqueued: %d, sent: %d, ok: %d, fail: %d, retry: %d, drop: %d\n",
		s.RequestsEnqueued, s.RequestsSent, s.RequestsSucceeded,
		s.RequestsFailed, s.RequestsRetried, s.RequestsDropped)
	fmt.Fprintf(&b, "  response : received: %d, from_cache: %d, downloaded: %s\n",
		s.ResponsesReceived, s.ResponsesFromCache, FormatBytes(s.BytesDownloaded))
	fmt.Fprintf(&b, "  items    : scraped: %d, processed: %d, dropped: %d\n",
		s.ItemsScraped, s.ItemsProcessed, s.ItemsDropped)
	fmt.Fprintf(&b, "  req time : avg: %s, fastest: %s, slowest: %s, total: %d\n",
		FormatDuration(s.AvgRequestTime), FormatDuration(s.MinRequestTime),
		FormatDuration(s.MaxRequestTime), s.RequestTimeCount)
	fmt.Fprintf(&b, "  status   : %s\n", s.formatStatusCounts())
	return b.String()
}

func (s StatsSnapshot) formatStatusCounts() string {
	if len(s.StatusCounts) == 0 {
		return "none"
	}
	codes := make([]int, 0, len(s.StatusCounts))
	for code := range s.StatusCounts {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%d: %d", code, s.StatusCounts[code]))
	}
	return strings.Join(parts, ", ")
}

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration formats a duration, preferring milliseconds for
// sub-second values.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}
