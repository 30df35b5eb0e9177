package offline

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HandlerFetcher returns a Fetcher that serves requests in-process through h.
func HandlerFetcher(h http.Handler) Fetcher {
	return handlerFetcher{handler: h}
}

type handlerFetcher struct {
	handler http.Handler
}

func (f handlerFetcher) Fetch(req *http.Request) (*Response, error) {
	rec := &recorder{header: make(http.Header)}
	f.handler.ServeHTTP(rec, req)
	return rec.response(), nil
}

type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(p)
}

func (r *recorder) response() *Response {
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{
		Status: status,
		Header: r.header,
		Body:   r.body.Bytes(),
	}
}

// HTTPFetcher forwards requests to a remote origin.
type HTTPFetcher struct {
	origin  *url.URL
	client  *http.Client
	maxSize int64
}

// NewHTTPFetcher creates a Fetcher that resolves request paths against origin.
// Response bodies larger than maxSize bytes are rejected with ErrTooLarge;
// a maxSize of zero disables the limit.
func NewHTTPFetcher(origin string, client *http.Client, maxSize int64) (*HTTPFetcher, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("origin must be http or https: %s", origin)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFetcher{
		origin:  u,
		client:  client,
		maxSize: maxSize,
	}, nil
}

// Fetch forwards req to the origin and buffers the response.
func (f *HTTPFetcher) Fetch(req *http.Request) (*Response, error) {
	target := f.origin.ResolveReference(&url.URL{
		Path:     strings.TrimPrefix(req.URL.Path, "/"),
		RawQuery: req.URL.RawQuery,
	})

	body := req.Body
	if body == nil {
		body = http.NoBody
	}

	out, err := http.NewRequestWithContext(req.Context(), req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", target, err)
	}
	out.Header = req.Header.Clone()
	out.ContentLength = req.ContentLength

	resp, err := f.client.Do(out)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if f.maxSize > 0 {
		reader = io.LimitReader(resp.Body, f.maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if f.maxSize > 0 && int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("%w: %s", ErrTooLarge, target)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   data,
	}, nil
}
