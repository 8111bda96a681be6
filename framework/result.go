package framework

import (
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed returns the number of tests that ran and did not fail.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures) - len(r.Skipped)
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID with one more path component. The receiver is not modified.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}
