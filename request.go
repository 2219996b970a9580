package spiderkit

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Request represents an outgoing HTTP request in the crawl pipeline.
// The zero value is not useful; construct with NewRequest.
type Request struct {
	URL    string         `json:"url"`
	Method string         `json:"method"`
	Header http.Header    `json:"headers,omitempty"`
	Body   []byte         `json:"body,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// NewRequest creates a GET request for the given URL.
func NewRequest(rawURL string) *Request {
	return &Request{
		URL:    rawURL,
		Method: http.MethodGet,
		Header: http.Header{},
		Meta:   map[string]any{},
	}
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALIDURL, "request URL required")
	}
	if r.Method == "" {
		return Errorf(EINVALIDREQUEST, "request method required")
	}
	return nil
}

// WithMethod sets the HTTP method and returns the request.
func (r *Request) WithMethod(method string) *Request {
	r.Method = method
	return r
}

// WithHeader adds a header and returns the request.
func (r *Request) WithHeader(name, value string) *Request {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	r.Header.Set(name, value)
	return r
}

// WithBytes sets a raw byte body and defaults the method to POST.
func (r *Request) WithBytes(body []byte) *Request {
	r.Body = body
	return r.WithMethod(http.MethodPost)
}

// WithJSON marshals v as the request body, sets the Content-Type header
// and defaults the method to POST.
func (r *Request) WithJSON(v any) (*Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, Errorf(EINVALIDREQUEST, "cannot marshal JSON body: %v", err)
	}
	r.WithHeader("Content-Type", "application/json")
	return r.WithBytes(body), nil
}

// WithForm encodes form values as the request body, sets the
// Content-Type header and defaults the method to POST. Values are
// encoded in sorted key order, so the body is stable for fingerprinting.
func (r *Request) WithForm(form url.Values) *Request {
	r.WithHeader("Content-Type", "application/x-www-form-urlencoded")
	return r.WithBytes([]byte(form.Encode()))
}

// WithMeta attaches a metadata value and returns the request.
func (r *Request) WithMeta(key string, value any) *Request {
	if r.Meta == nil {
		r.Meta = map[string]any{}
	}
	r.Meta[key] = value
	return r
}

const retryAttemptsKey = "retry_attempts"

// RetryAttempts returns the number of times the request has been retried.
func (r *Request) RetryAttempts() int {
	v, ok := r.Meta[retryAttemptsKey]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case float64: // JSON round-trip decodes numbers as float64
		return int(n)
	}
	return 0
}

// IncrementRetryAttempts bumps the retry counter.
func (r *Request) IncrementRetryAttempts() {
	r.WithMeta(retryAttemptsKey, r.RetryAttempts()+1)
}
