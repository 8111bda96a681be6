// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to JokeAPI.
//
// The general model is:
//
// 1. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A Context implements the TestingT interfaces of testify's assert
// and require packages, so standard assertions can be used outside of "go test".
//
// 2. Test progress is reported to a TestLogger as tests start, fail, finish or are skipped,
// and every finished test is passed to a ResultSink.
//
// 3. Each test gets its own capturing debug logger, whose output the TestLogger may choose
// to print when the test finishes.
//
// The domain-specific code that knows what is being tested is responsible for constructing
// requests and a domain-specific test API on top of the test context.
package framework
