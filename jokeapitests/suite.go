package jokeapitests

import (
	"context"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
)

// SuiteName identifies this suite in reports.
const SuiteName = "jokeapi"

const DefaultMaxResponseTime = 10 * time.Second

type suiteConfig struct {
	maxResponseTime time.Duration
	definitions     []httpcase.GroupDefinition
}

// Option changes how the suite runs.
type Option func(*environment)

// WithContext sets a context that bounds every request. It defaults to context.Background().
func WithContext(ctx context.Context) Option {
	return func(e *environment) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// WithMaxResponseTime sets the ceiling for the ping response time.
func WithMaxResponseTime(d time.Duration) Option {
	return func(e *environment) {
		if d > 0 {
			e.config.maxResponseTime = d
		}
	}
}

// WithDefinitions adds groups of cases loaded from YAML. They run after the built-in
// groups, under "definitions/<group name>".
func WithDefinitions(defs *httpcase.Definitions) Option {
	return func(e *environment) {
		if defs != nil {
			e.config.definitions = append(e.config.definitions, defs.Groups...)
		}
	}
}

// RunTestSuite runs every group of tests against the runner's base URL, in order. Each
// result is passed to sink as soon as it is known; sink may be nil.
func RunTestSuite(
	runner *httpcase.Runner,
	filter framework.Filter,
	testLogger framework.TestLogger,
	sink framework.ResultSink,
	options ...Option,
) framework.Results {
	env := &environment{
		ctx:    context.Background(),
		runner: runner,
		config: suiteConfig{maxResponseTime: DefaultMaxResponseTime},
	}
	for _, o := range options {
		o(env)
	}

	return framework.Run(filter, testLogger, sink, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run("system", DoSystemTests)
		t.Run("jokes", DoJokeTests)
		t.Run("submission", DoSubmissionTests)
		if len(env.config.definitions) != 0 {
			t.Run("definitions", DoDefinitionTests)
		}
	})
}
