// Package httpcase describes a single HTTP request together with the expectations that the
// response must satisfy, and runs it.
//
// A Case is a value: the With* methods return modified copies, so a base case can be shared
// between tests. A Runner sends a Case to a fixed base URL with a bounded timeout and
// evaluates every Expectation against the response, reporting all failures rather than
// only the first one.
package httpcase
