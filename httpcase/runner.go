package httpcase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "jokeapi-contract-tests"
)

// Runner sends cases to one base URL.
type Runner struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	headers map[string]string
	logger  framework.Logger
}

type Option func(*Runner)

// WithTimeout sets the time limit for each request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(r *Runner) {
		if client != nil {
			r.client = client
		}
	}
}

// WithLogger sets the logger that receives a description of every request and response.
func WithLogger(logger framework.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaultHeader adds a header to every request. A header set on the Case overrides it.
func WithDefaultHeader(name, value string) Option {
	return func(r *Runner) {
		r.headers[name] = value
	}
}

func NewRunner(baseURL string, options ...Option) *Runner {
	r := &Runner{
		baseURL: baseURL,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		headers: map[string]string{"User-Agent": DefaultUserAgent},
		logger:  framework.NullLogger(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

func (r *Runner) BaseURL() string {
	return r.baseURL
}

func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// WithDebugLogger returns a copy of the runner that also logs to another logger, such as
// the debug logger of the current test.
func (r *Runner) WithDebugLogger(logger framework.Logger) *Runner {
	r1 := *r
	r1.logger = framework.MultiLogger(r.logger, logger)
	return &r1
}

// Do sends the request described by the case and reads the whole response. It does not
// evaluate the case's expectations.
func (r *Runner) Do(ctx context.Context, c Case) (*Response, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid test case %q: %w", c.Name, err)
	}
	reqURL, err := c.requestURL(r.baseURL)
	if err != nil {
		return nil, err
	}

	var body []byte
	if c.Body != nil {
		body, err = json.Marshal(c.Body)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal request body: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, c.Method, reqURL, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, k := range sortedKeys(c.Headers) {
		req.Header.Set(k, c.Headers[k])
	}

	r.logger.Printf("Sending request: %s", CurlCommand(c.Method, reqURL, req.Header, body))

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		reqErr := &RequestError{Method: c.Method, URL: reqURL, Elapsed: time.Since(start), Err: err}
		r.logger.Printf("Request failed: %s", reqErr)
		return nil, reqErr
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	elapsed := time.Since(start)
	if err != nil {
		reqErr := &RequestError{Method: c.Method, URL: reqURL, Elapsed: elapsed, Err: err}
		r.logger.Printf("Unable to read response body: %s", reqErr)
		return nil, reqErr
	}

	r.logger.Printf("Received %s in %s: %s", resp.Status, elapsed.Round(time.Millisecond), truncate(respBody, 1000))

	return &Response{
		Method:      c.Method,
		URL:         reqURL,
		RequestBody: body,
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        respBody,
		Elapsed:     elapsed,
	}, nil
}

// Check sends the case and evaluates all of its expectations. The error is nil only if the
// request succeeded and every expectation held. Use multierr.Errors to get the individual
// failures.
func (r *Runner) Check(ctx context.Context, c Case) (*Response, error) {
	resp, err := r.Do(ctx, c)
	if err != nil {
		return nil, err
	}
	return resp, Evaluate(resp, c.Expect)
}

func truncate(data []byte, max int) string {
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
