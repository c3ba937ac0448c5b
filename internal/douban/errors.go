package douban

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"mediashelf/internal/services"
)

// FetchKind classifies why a page could not be retrieved.
type FetchKind string

const (
	KindNetwork    FetchKind = "network"
	KindTimeout    FetchKind = "timeout"
	KindHTTPStatus FetchKind = "http_status"
)

// FetchError reports a failed page retrieval. Fetches are never retried, so
// the error is final for the request that produced it.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int
	Latency    time.Duration
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("fetch %s: status %d %s (latency=%v)", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Latency)
	case KindTimeout:
		return fmt.Sprintf("fetch %s: timed out after %v: %v", e.URL, e.Latency, e.Err)
	default:
		return fmt.Sprintf("fetch %s (latency=%v): %v", e.URL, e.Latency, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorKind exposes the failure class for logs and API payloads.
func (e *FetchError) ErrorKind() string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

// NotFound reports whether the source answered 404 for the page.
func (e *FetchError) NotFound() bool {
	return e != nil && e.Kind == KindHTTPStatus && e.StatusCode == http.StatusNotFound
}

// Is maps fetch failures onto the shared service markers.
func (e *FetchError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case services.ErrTimeout:
		return e.Kind == KindTimeout
	case services.ErrNotFound:
		return e.NotFound()
	case services.ErrUpstream:
		return e.Kind != KindTimeout && !e.NotFound()
	}
	return false
}

// AsFetchError unwraps err into a *FetchError when possible.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}
