package spiderkit

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// LinkType classifies a link discovered on a page.
type LinkType string

// Link types recognized by link extraction.
const (
	LinkPage       LinkType = "page"
	LinkScript     LinkType = "script"
	LinkStylesheet LinkType = "stylesheet"
	LinkImage      LinkType = "image"
	LinkMedia      LinkType = "media"
	LinkOther      LinkType = "other"
)

// Link represents a link discovered on a web page, resolved against the
// page URL.
type Link struct {
	URL  *url.URL
	Type LinkType
}

// LinkExtractor extracts links from page content.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns discovered links resolved
	// against baseURL. Implementations decide which links are in scope
	// (e.g., same-site only).
	ExtractLinks(html []byte, baseURL *url.URL) ([]Link, error)
}

// Response represents an HTTP response received during a crawl.
// URL is the final URL after any redirects; RequestURL is the URL of the
// request that produced the response.
type Response struct {
	URL        string         `json:"url"`
	StatusCode int            `json:"statusCode"`
	Header     http.Header    `json:"headers,omitempty"`
	Body       []byte         `json:"body,omitempty"`
	RequestURL string         `json:"requestUrl"`
	Cached     bool           `json:"cached"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return Errorf(EINVALID, "cannot unmarshal response body: %v", err)
	}
	return nil
}

// Request reconstructs the request that produced this response, carrying
// the response metadata over.
func (r *Response) Request() *Request {
	req := NewRequest(r.RequestURL)
	for k, v := range r.Meta {
		req.WithMeta(k, v)
	}
	return req
}

// Links extracts links from the response body using the given extractor.
// Returns EINVALIDURL if the response URL cannot be parsed.
func (r *Response) Links(extractor LinkExtractor) ([]Link, error) {
	base, err := url.Parse(r.URL)
	if err != nil {
		return nil, Errorf(EINVALIDURL, "cannot parse response URL %q: %v", r.URL, err)
	}
	return extractor.ExtractLinks(r.Body, base)
}
