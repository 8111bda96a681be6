package jokeapitests

import (
	"context"
	"fmt"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"

	"github.com/Jeffail/gabs/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type environment struct {
	ctx    context.Context
	runner *httpcase.Runner
	config suiteConfig
}

// T represents a test or subtest in the JokeAPI test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by the lower-level framework package.
//
// It also knows how to send an httpcase.Case to the service under test and report every
// violated expectation as a failure of the current test.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Check sends the case and reports each failed expectation as an error of this test, then
// returns the response so that the test can make further assertions on it. If no response
// could be obtained at all, the test fails and exits immediately.
func (t *T) Check(c httpcase.Case) *httpcase.Response {
	runner := t.env.runner.WithDebugLogger(t.context.DebugLogger())
	resp, err := runner.Check(t.env.ctx, c)
	if resp == nil {
		t.context.Fail(err)
		t.FailNow()
	}
	for _, e := range multierr.Errors(err) {
		t.context.Fail(e)
	}
	return resp
}

// RunCase runs the case as a subtest with the case's name.
func (t *T) RunCase(c httpcase.Case) {
	t.Run(c.Name, func(t *T) {
		t.Check(c)
	})
}

// RequireJSON parses the response body, failing the test immediately if it is not JSON.
func (t *T) RequireJSON(resp *httpcase.Response) *gabs.Container {
	parsed, err := resp.JSON()
	require.NoError(t, err, "response body is not valid JSON")
	return parsed
}

// RequireArray returns the array at a dotted path of the response, failing the test
// immediately if there is none.
func (t *T) RequireArray(resp *httpcase.Response, path string) []*gabs.Container {
	value := t.RequireJSON(resp)
	if path != "" {
		value = value.Path(path)
	}
	if _, ok := value.Data().([]interface{}); !ok {
		require.Fail(t, fmt.Sprintf("expected an array at %q", path), "got %s", value.String())
	}
	return value.Children()
}

// RequireStrings is like RequireArray but requires every element to be a string.
func (t *T) RequireStrings(resp *httpcase.Response, path string) []string {
	var ret []string
	for i, item := range t.RequireArray(resp, path) {
		s, ok := item.Data().(string)
		require.True(t, ok, "element %d of %q is not a string: %s", i, path, item.String())
		ret = append(ret, s)
	}
	return ret
}
