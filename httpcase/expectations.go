package httpcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Kind identifies what an expectation checks.
type Kind string

const (
	KindStatus       Kind = "status"
	KindHeader       Kind = "header"
	KindBody         Kind = "body"
	KindJSON         Kind = "json"
	KindSchema       Kind = "schema"
	KindResponseTime Kind = "response time"
)

// Expectation is a single pass/fail condition on a response.
type Expectation interface {
	// Check returns nil if the response satisfies the expectation, or an *ExpectationError.
	Check(resp *Response) error
	String() string
}

// ExpectationError describes one violated expectation.
type ExpectationError struct {
	Kind        Kind
	Expectation string
	Message     string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expected %s: %s", e.Expectation, e.Message)
}

func failed(e Expectation, kind Kind, format string, args ...interface{}) error {
	return &ExpectationError{Kind: kind, Expectation: e.String(), Message: fmt.Sprintf(format, args...)}
}

// Evaluate checks every expectation against the response. It does not stop at the first
// failure; the result combines all of them, in order, and is nil if there were none.
func Evaluate(resp *Response, expectations []Expectation) error {
	var err error
	for _, e := range expectations {
		err = multierr.Append(err, e.Check(resp))
	}
	return err
}

type statusExpectation struct {
	status int
}

// ExpectStatus requires an exact status code.
func ExpectStatus(status int) Expectation {
	return statusExpectation{status: status}
}

func (s statusExpectation) String() string {
	return fmt.Sprintf("status %d", s.status)
}

func (s statusExpectation) Check(resp *Response) error {
	if resp.StatusCode != s.status {
		return failed(s, KindStatus, "got %d", resp.StatusCode)
	}
	return nil
}

type headerExpectation struct {
	name      string
	substring string
}

// ExpectHeaderContains requires the named header to be present and its value to contain
// the substring, ignoring case.
func ExpectHeaderContains(name, substring string) Expectation {
	return headerExpectation{name: http.CanonicalHeaderKey(name), substring: substring}
}

func (h headerExpectation) String() string {
	return fmt.Sprintf("header %s containing %q", h.name, h.substring)
}

func (h headerExpectation) Check(resp *Response) error {
	values := resp.Header.Values(h.name)
	if len(values) == 0 {
		return failed(h, KindHeader, "header not found")
	}
	value := strings.Join(values, ", ")
	if !strings.Contains(strings.ToLower(value), strings.ToLower(h.substring)) {
		return failed(h, KindHeader, "value was %q", value)
	}
	return nil
}

type bodyExpectation struct {
	substring string
}

// ExpectBodyContains requires the raw body to contain the substring.
func ExpectBodyContains(substring string) Expectation {
	return bodyExpectation{substring: substring}
}

func (b bodyExpectation) String() string {
	return fmt.Sprintf("body containing %q", b.substring)
}

func (b bodyExpectation) Check(resp *Response) error {
	if !bytes.Contains(resp.Body, []byte(b.substring)) {
		return failed(b, KindBody, "body was %s", truncate(resp.Body, 200))
	}
	return nil
}

type responseTimeExpectation struct {
	max time.Duration
}

// ExpectResponseTimeAtMost requires the time from sending the request to reading the
// whole response to be no more than max.
func ExpectResponseTimeAtMost(max time.Duration) Expectation {
	return responseTimeExpectation{max: max}
}

func (r responseTimeExpectation) String() string {
	return fmt.Sprintf("response time at most %s", r.max)
}

func (r responseTimeExpectation) Check(resp *Response) error {
	if resp.Elapsed > r.max {
		return failed(r, KindResponseTime, "response took %s", resp.Elapsed.Round(time.Millisecond))
	}
	return nil
}

type jsonLikeExpectation struct {
	expected    interface{}
	description string
	err         error
}

// ExpectJSONLike requires the body to be JSON that contains everything in expected: every
// property of an expected object must be present with a matching value, and extra
// properties are ignored. Each element of an expected array must match a different element
// of the actual array, in any order.
//
// The expected value can be anything that marshals to JSON, such as a map, a struct or an
// ldvalue.Value.
func ExpectJSONLike(expected interface{}) Expectation {
	data, err := json.Marshal(expected)
	if err != nil {
		return jsonLikeExpectation{description: fmt.Sprintf("%v", expected), err: err}
	}
	var generic interface{}
	err = json.Unmarshal(data, &generic)
	return jsonLikeExpectation{expected: generic, description: string(data), err: err}
}

func (j jsonLikeExpectation) String() string {
	return "JSON like " + j.description
}

func (j jsonLikeExpectation) Check(resp *Response) error {
	if j.err != nil {
		return failed(j, KindJSON, "invalid expected value: %s", j.err)
	}
	actual, err := resp.JSON()
	if err != nil {
		return failed(j, KindJSON, "response body is not valid JSON: %s", truncate(resp.Body, 200))
	}
	if mismatches := matchJSON("", j.expected, actual); len(mismatches) != 0 {
		message := strings.Join(mismatches, "; ")
		if diff := diffJSON(j.expected, actual); diff != "" {
			message += "\ndiff (-expected +actual):\n" + diff
		}
		return failed(j, KindJSON, "%s", message)
	}
	return nil
}

type jsonFieldExpectation struct {
	path string
}

// ExpectJSONField requires a value to exist at a dotted path such as "jokes.0.id". A null
// value counts as present.
func ExpectJSONField(path string) Expectation {
	return jsonFieldExpectation{path: path}
}

func (j jsonFieldExpectation) String() string {
	return fmt.Sprintf("JSON field %q", j.path)
}

func (j jsonFieldExpectation) Check(resp *Response) error {
	actual, err := resp.JSON()
	if err != nil {
		return failed(j, KindJSON, "response body is not valid JSON: %s", truncate(resp.Body, 200))
	}
	if !actual.ExistsP(j.path) {
		return failed(j, KindJSON, "not found")
	}
	return nil
}
