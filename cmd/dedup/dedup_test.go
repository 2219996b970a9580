package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/spiderkit/cmd/dedup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_Stdin(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/a",
		"",
		"# comment",
		"https://EXAMPLE.com:443/a", // equivalent to the first line
		"https://example.com/c",
	}, "\n")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, lines)
}

func TestDedup_InputAndOutputFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.txt")
	outPath := filepath.Join(dir, "out", "unique.txt")

	require.NoError(t, os.WriteFile(inPath, []byte("https://a.test/\nhttps://a.test\nhttps://b.test/\n"), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--output", outPath, inPath}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "https://a.test/\nhttps://b.test/\n", string(data))
}

func TestDedup_SkipsInvalidURLs(t *testing.T) {
	t.Parallel()

	input := "https://example.com/a\n/relative/only\nhttps://example.com/b\n"

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/a\nhttps://example.com/b\n", stdout.String())
	assert.Contains(t, stderr.String(), "skipping URL")
}

func TestDedup_StatsBlock(t *testing.T) {
	t.Parallel()

	input := "https://example.com/a\nhttps://example.com/a\nhttps://example.com/b\n"

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--stats"}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "Crawl Statistics")
	assert.Contains(t, stderr.String(), "processed: 2")
	assert.Contains(t, stderr.String(), "dropped: 1")
}

func TestDedup_VerboseLogsDecisions(t *testing.T) {
	t.Parallel()

	input := "https://example.com/a\nhttps://example.com/a\n"

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--verbose"}, strings.NewReader(input), &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/a\n", stdout.String())
	assert.Contains(t, stderr.String(), "dedup check")
	assert.Contains(t, stderr.String(), "seen=true")
}
