package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/config"
	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"
)

type commandParams struct {
	baseURL         string
	timeout         time.Duration
	maxResponseTime time.Duration
	slowThreshold   time.Duration
	configFile      string
	filters         framework.RegexFilters
	debug           bool
	debugAll        bool
	excelReport     string
	definitions     string
	mock            bool
	logLevel        string
}

// Read parses the command line. Values that are not given as flags come from the
// configuration file if there is one, and otherwise from config.Default.
func (c *commandParams) Read(args []string, errOut io.Writer) error {
	defaults := config.Default()

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.baseURL, "url", defaults.BaseURL, "base URL of the JokeAPI service")
	fs.DurationVar(&c.timeout, "timeout", defaults.Timeout, "timeout for each request")
	fs.DurationVar(&c.maxResponseTime, "max-response-time", defaults.MaxResponseTime, "maximum response time for ping")
	fs.StringVar(&c.configFile, "config", "", "YAML configuration file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.excelReport, "excel", "", "write an Excel report to this .xlsx file")
	fs.StringVar(&c.definitions, "definitions", "", "YAML file of additional test cases")
	fs.BoolVar(&c.mock, "mock", false, "run against an in-process mock API instead of the real service")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := &defaults
	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return err
		}
		cfg = loaded
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["url"] {
		c.baseURL = cfg.BaseURL
	}
	if !set["timeout"] {
		c.timeout = cfg.Timeout
	}
	if !set["max-response-time"] {
		c.maxResponseTime = cfg.MaxResponseTime
	}
	if !set["excel"] {
		c.excelReport = cfg.ExcelReport
	}
	if !set["definitions"] {
		c.definitions = cfg.Definitions
	}
	c.slowThreshold = cfg.SlowThreshold
	c.logLevel = cfg.LogLevel

	if c.timeout <= 0 || c.maxResponseTime <= 0 {
		err := fmt.Errorf("-timeout and -max-response-time must be positive")
		fmt.Fprintln(errOut, err)
		return err
	}
	if c.baseURL == "" && !c.mock {
		err := fmt.Errorf("-url must not be empty")
		fmt.Fprintln(errOut, err)
		return err
	}
	return nil
}
