// Package goquery implements link extraction from HTML pages.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fwojciec/spiderkit"
)

// Compile-time interface verification.
var _ spiderkit.LinkExtractor = (*Extractor)(nil)

// linkSource pairs a CSS selector with the attribute holding the link
// target.
type linkSource struct {
	selector string
	attr     string
}

// linkSources is scanned in order; it covers the elements a crawler
// follows for pages and static resources.
var linkSources = []linkSource{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"script[src]", "src"},
	{"img[src]", "src"},
	{"audio[src]", "src"},
	{"video[src]", "src"},
	{"source[src]", "src"},
}

// Extractor extracts links from HTML using cached compiled selectors.
// Safe for concurrent use.
type Extractor struct {
	// AllowCrossSite disables the default filtering of links that point
	// outside the base URL's registrable domain.
	AllowCrossSite bool

	cache *SelectorCache
}

// NewExtractor creates an Extractor with a prewarmed selector cache.
func NewExtractor() *Extractor {
	cache := NewSelectorCache()
	cache.Prewarm()
	return &Extractor{cache: cache}
}

// ExtractLinks parses HTML and returns the unique links found, resolved
// against baseURL and classified by element type. Unless AllowCrossSite
// is set, links outside the base URL's site are dropped.
// Returns EINVALID if the HTML cannot be parsed.
func (e *Extractor) ExtractLinks(html []byte, baseURL *url.URL) ([]spiderkit.Link, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, spiderkit.Errorf(spiderkit.EINVALID, "cannot parse HTML: %v", err)
	}

	var links []spiderkit.Link
	seen := make(map[string]bool)

	for _, src := range linkSources {
		matcher, err := e.cache.Get(src.selector)
		if err != nil {
			return nil, err
		}

		doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
			raw, ok := sel.Attr(src.attr)
			if !ok || raw == "" {
				return
			}
			ref, err := url.Parse(raw)
			if err != nil {
				return
			}
			resolved := baseURL.ResolveReference(ref)
			if !e.AllowCrossSite && !spiderkit.SameSite(resolved, baseURL) {
				return
			}

			linkType := classify(sel)
			key := resolved.String() + "\x00" + string(linkType)
			if seen[key] {
				return
			}
			seen[key] = true
			links = append(links, spiderkit.Link{URL: resolved, Type: linkType})
		})
	}

	return links, nil
}

// classify maps an element to the type of resource it links to.
func classify(sel *goquery.Selection) spiderkit.LinkType {
	switch goquery.NodeName(sel) {
	case "a":
		return spiderkit.LinkPage
	case "link":
		if rel, ok := sel.Attr("rel"); ok && strings.EqualFold(rel, "stylesheet") {
			return spiderkit.LinkStylesheet
		}
		return spiderkit.LinkOther
	case "script":
		return spiderkit.LinkScript
	case "img":
		return spiderkit.LinkImage
	case "audio", "video", "source":
		return spiderkit.LinkMedia
	default:
		return spiderkit.LinkOther
	}
}
