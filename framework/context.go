package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

const filteredOutReason = "excluded by filter parameters"

type environment struct {
	results    Results
	testLogger TestLogger
	sink       ResultSink
	filter     Filter
}

// Context is the state of a single test or group of tests. It is used in the same way as
// *testing.T, and can be passed to the assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	started     time.Time
	subtests    int
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run runs a root test action. Tests are executed sequentially, in the order that the
// action calls Context.Run. Either testLogger or sink may be nil.
func Run(
	filter Filter,
	testLogger TestLogger,
	sink ResultSink,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	if sink == nil {
		sink = nullResultSink{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
		sink:       sink,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	c.started = time.Now()
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.record()
	}()

	action(c)
}

// A group that only ran subtests is not a result of its own, unless it failed outside
// of those subtests.
func (c *Context) record() {
	if c.subtests > 0 && !c.failed {
		return
	}
	c.env.add(TestResult{
		TestID:     c.id,
		Errors:     c.errors,
		Skipped:    c.skipped,
		SkipReason: c.skipReason,
		Duration:   time.Since(c.started),
	})
}

func (e *environment) add(result TestResult) {
	e.results.Tests = append(e.results.Tests, result)
	switch {
	case result.Failed():
		e.results.Failures = append(e.results.Failures, result)
	case result.Skipped:
		e.results.Skipped = append(e.results.Skipped, result)
	}
	e.sink.Record(result)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest with the given name. The subtest's ID is this test's ID plus the name.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)
	c.subtests++

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, filteredOutReason)
		c.env.add(TestResult{TestID: id, Skipped: true, SkipReason: filteredOutReason})
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Fail records an error that already exists, without stopping the test.
func (c *Context) Fail(err error) {
	if err == nil {
		return
	}
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
