package httpcase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Jeffail/gabs/v2"
)

// Response is everything the runner captured about one request and its response.
type Response struct {
	Method      string
	URL         string
	RequestBody []byte
	StatusCode  int
	Header      http.Header
	Body        []byte
	Elapsed     time.Duration

	parsed   *gabs.Container
	parseErr error
	isParsed bool
}

// JSON parses the response body. The result is cached.
func (r *Response) JSON() (*gabs.Container, error) {
	if !r.isParsed {
		r.parsed, r.parseErr = gabs.ParseJSON(r.Body)
		r.isParsed = true
	}
	return r.parsed, r.parseErr
}

// RequestError is returned when no response could be obtained, including when the request
// timed out.
type RequestError struct {
	Method  string
	URL     string
	Elapsed time.Duration
	Err     error
}

func (e *RequestError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("%s %s timed out after %s", e.Method, e.URL, e.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Timeout returns true if the request failed because its deadline expired.
func (e *RequestError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
