package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	consoleErrorColor   = color.New(color.FgRed)
	consoleFailedColor  = color.New(color.FgRed, color.Bold)
	consoleSkippedColor = color.New(color.FgYellow)
	consoleDebugColor   = color.New(color.Faint)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", consoleErrorColor.Sprint(line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", consoleFailedColor.Sprint("FAILED"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, consoleDebugColor.Sprint("    DEBUG "))
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", consoleSkippedColor.Sprint("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", consoleSkippedColor.Sprint("SKIPPED"), id, reason)
	}
}
