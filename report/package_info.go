// Package report contains the sinks that receive test results as a suite runs: a console
// summary, an Excel workbook, and a fan-out to several sinks at once.
package report
