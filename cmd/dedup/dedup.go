package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/spiderkit"
	"github.com/fwojciec/spiderkit/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Deduplicator  spiderkit.Deduplicator
	Fingerprinter spiderkit.Fingerprinter
	Stats         spiderkit.StatsCollector
}

// DedupCmd reads URLs, keeps the first occurrence of each resource and
// writes the survivors out.
type DedupCmd struct {
	Input   string
	Output  string
	Method  string
	Workers int
	Stats   bool
}

type lineResult struct {
	position int
	url      string
	key      spiderkit.Fingerprint
	err      error
}

// Run executes the deduplication pipeline. Fingerprints are computed
// concurrently, but filter decisions are made in input order so the
// first occurrence of a resource always wins.
func (c *DedupCmd) Run(deps *Dependencies) error {
	urls, err := c.readURLs(deps)
	if err != nil {
		return err
	}

	results := make([]lineResult, len(urls))

	g, _ := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Workers)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			if deps.Stats != nil {
				deps.Stats.RequestEnqueued()
			}
			begin := time.Now()
			req := spiderkit.NewRequest(url).WithMethod(c.Method)
			key, err := deps.Fingerprinter.Fingerprint(req)
			if deps.Stats != nil {
				deps.Stats.ParseTimed(time.Since(begin))
			}
			results[i] = lineResult{position: i, url: url, key: key, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out, closeOut, err := c.openOutput(deps)
	if err != nil {
		return err
	}
	defer closeOut()

	w := bufio.NewWriter(out)
	for _, result := range results {
		if result.err != nil {
			deps.Logger.Warn("skipping URL", "url", result.url, "error", spiderkit.ErrorMessage(result.err))
			if deps.Stats != nil {
				deps.Stats.RequestDropped()
			}
			continue
		}
		if deps.Deduplicator.CheckAndMark(result.key) {
			if deps.Stats != nil {
				deps.Stats.ItemDropped()
			}
			continue
		}
		if deps.Stats != nil {
			deps.Stats.ItemProcessed()
		}
		if _, err := fmt.Fprintln(w, result.url); err != nil {
			return spiderkit.Errorf(spiderkit.EINTERNAL, "cannot write output: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		return spiderkit.Errorf(spiderkit.EINTERNAL, "cannot write output: %v", err)
	}

	if c.Stats && deps.Stats != nil {
		fmt.Fprint(deps.Stderr, deps.Stats.Snapshot().Display())
	}
	return nil
}

// readURLs reads one URL per line from the input file or stdin. Blank
// lines and comment lines starting with # are skipped.
func (c *DedupCmd) readURLs(deps *Dependencies) ([]string, error) {
	in := deps.Stdin
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, spiderkit.Errorf(spiderkit.ENOTFOUND, "cannot open input file %q: %v", c.Input, err)
		}
		defer f.Close()
		in = f
	}

	var urls []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, spiderkit.Errorf(spiderkit.EINTERNAL, "cannot read input: %v", err)
	}
	return urls, nil
}

func (c *DedupCmd) openOutput(deps *Dependencies) (io.Writer, func(), error) {
	if c.Output == "" {
		return deps.Stdout, func() {}, nil
	}
	if err := fs.EnsureParentDir(c.Output); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return nil, nil, spiderkit.Errorf(spiderkit.EINTERNAL, "cannot create output file %q: %v", c.Output, err)
	}
	return f, func() { _ = f.Close() }, nil
}
