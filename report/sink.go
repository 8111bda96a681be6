package report

import (
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// RunInfo identifies one run of a test suite.
type RunInfo struct {
	ID      uuid.UUID
	Suite   string
	BaseURL string
	Started time.Time
}

// NewRunInfo returns a RunInfo with a fresh random ID, started now.
func NewRunInfo(suite, baseURL string) RunInfo {
	return RunInfo{ID: uuid.New(), Suite: suite, BaseURL: baseURL, Started: time.Now()}
}

// Sink receives the results of one run. Start is called before the first test, Record as
// each test finishes, and End once after the last test.
type Sink interface {
	framework.ResultSink
	Start(run RunInfo)
	End(results framework.Results) error
}

type multiSink []Sink

// Multi returns a Sink that passes everything to each of the given sinks in order. End is
// called on all of them even if some fail, and the errors are combined.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Start(run RunInfo) {
	for _, s := range m {
		s.Start(run)
	}
}

func (m multiSink) Record(result framework.TestResult) {
	for _, s := range m {
		s.Record(result)
	}
}

func (m multiSink) End(results framework.Results) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.End(results))
	}
	return err
}
