package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/spiderkit"
	"github.com/fwojciec/spiderkit/bloom"
	"github.com/fwojciec/spiderkit/fingerprint"
	"github.com/fwojciec/spiderkit/metrics"
	skslog "github.com/fwojciec/spiderkit/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dedup"),
		kong.Description("Filter a stream of URLs down to first occurrences using a Bloom filter"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	filter, err := bloom.New(cli.Capacity, cli.FPRate)
	if err != nil {
		return err
	}

	var dedup spiderkit.Deduplicator = filter
	if cli.Verbose {
		dedup = skslog.NewLoggingDeduplicator(filter, logger)
	}

	deps := &Dependencies{
		Ctx:           ctx,
		Stdin:         stdin,
		Stdout:        stdout,
		Stderr:        stderr,
		Logger:        logger,
		Deduplicator:  dedup,
		Fingerprinter: &fingerprint.Calculator{},
	}

	if cli.Stats {
		collector := metrics.NewCollector()
		defer collector.Close()
		deps.Stats = collector
	}

	workers := cli.Workers
	if workers <= 0 {
		workers = 4
	}

	cmd := &DedupCmd{
		Input:   cli.Input,
		Output:  cli.Output,
		Method:  cli.Method,
		Workers: workers,
		Stats:   cli.Stats,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Capacity int     `short:"n" default:"100000" help:"Expected number of distinct URLs"`
	FPRate   float64 `name:"fp-rate" short:"p" default:"0.01" help:"Target false positive rate, between 0 and 1 exclusive"`
	Method   string  `short:"m" default:"GET" help:"HTTP method used when fingerprinting"`
	Workers  int     `short:"c" default:"4" help:"Concurrent fingerprint workers"`
	Output   string  `short:"o" help:"Write unique URLs to a file instead of stdout"`
	Stats    bool    `help:"Print a statistics block to stderr on completion"`
	Verbose  bool    `short:"v" help:"Enable debug logging"`
	Input    string  `arg:"" optional:"" help:"File of URLs, one per line (default: stdin)"`
}
