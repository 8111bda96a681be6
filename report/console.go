package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	passedColor  = color.New(color.FgGreen, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

// Console prints a summary of the run when it ends. Output is coloured unless color.NoColor
// is set, which fatih/color does automatically when stdout is not a terminal.
type Console struct {
	out io.Writer
	run RunInfo
	now func() time.Time
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out, now: time.Now}
}

func (c *Console) Start(run RunInfo) {
	c.run = run
	fmt.Fprintf(c.out, "Running %s against %s (run %s)\n", run.Suite, run.BaseURL, run.ID)
}

func (c *Console) Record(framework.TestResult) {}

func (c *Console) End(results framework.Results) error {
	fmt.Fprintln(c.out)
	summary := fmt.Sprintf("%d tests: %s, %s, %s",
		len(results.Tests),
		passedColor.Sprintf("%d passed", results.Passed()),
		c.failedText(len(results.Failures)),
		skippedColor.Sprintf("%d skipped", len(results.Skipped)),
	)
	if !c.run.Started.IsZero() {
		summary += fmt.Sprintf(" in %s", c.now().Sub(c.run.Started).Round(time.Millisecond))
	}
	fmt.Fprintln(c.out, summary)

	if results.OK() {
		fmt.Fprintln(c.out, passedColor.Sprint("PASSED"))
		return nil
	}
	fmt.Fprintln(c.out, failedColor.Sprint("FAILED")+":")
	for _, f := range results.Failures {
		fmt.Fprintf(c.out, "  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(c.out, "    %s\n", line)
			}
		}
	}
	return nil
}

func (c *Console) failedText(n int) string {
	if n == 0 {
		return "0 failed"
	}
	return failedColor.Sprintf("%d failed", n)
}
