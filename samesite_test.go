package spiderkit_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/spiderkit"
)

func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}

func TestSameSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical hosts", "https://example.com/a", "https://example.com/b", true},
		{"subdomain", "https://blog.example.com/a", "https://www.example.com/b", true},
		{"host case", "https://EXAMPLE.com/a", "https://example.com/b", true},
		{"different domains", "https://example.com/a", "https://example.org/a", false},
		{"shared public suffix", "https://example.co.uk/a", "https://other.co.uk/a", false},
		{"subdomain of co.uk domain", "https://a.example.co.uk/", "https://example.co.uk/", true},
		{"missing host", "https:///a", "https://example.com/a", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := spiderkit.SameSite(mustParse(t, tt.a), mustParse(t, tt.b))
			assert.Equal(t, tt.want, got)
		})
	}
}
