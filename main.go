package main

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"os/signal"

	"github.com/jokeapi-tests/jokeapi-contract-tests/config"
	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
	"github.com/jokeapi-tests/jokeapi-contract-tests/jokeapitests"
	"github.com/jokeapi-tests/jokeapi-contract-tests/logging"
	"github.com/jokeapi-tests/jokeapi-contract-tests/mockapi"
	"github.com/jokeapi-tests/jokeapi-contract-tests/report"
)

const (
	exitPassed  = 0
	exitFailed  = 1
	exitInvalid = 2
	envFile     = ".env"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(errOut, "Unable to read %s: %s\n", envFile, err)
		return exitInvalid
	}

	var params commandParams
	if err := params.Read(args, errOut); err != nil {
		return exitInvalid
	}

	logging.Init(params.logLevel)
	log := logging.GetLogger()
	defer func() { _ = log.Sync() }()

	var defs *httpcase.Definitions
	if params.definitions != "" {
		var err error
		if defs, err = httpcase.LoadDefinitions(params.definitions); err != nil {
			fmt.Fprintf(errOut, "Invalid test definitions: %s\n", err)
			return exitInvalid
		}
	}

	baseURL := params.baseURL
	if params.mock {
		server := httptest.NewServer(mockapi.NewHandler())
		defer server.Close()
		baseURL = server.URL
		log.Infof("Using mock API at %s", baseURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := httpcase.NewRunner(baseURL,
		httpcase.WithTimeout(params.timeout),
		httpcase.WithLogger(logging.Printf(log)),
	)

	sinks := []report.Sink{report.NewConsole(out)}
	if params.excelReport != "" {
		sinks = append(sinks, report.NewExcel(params.excelReport, params.slowThreshold))
	}
	sink := report.Multi(sinks...)

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	sink.Start(report.NewRunInfo(jokeapitests.SuiteName, baseURL))
	log.Debugf("Testing %s with request timeout %s, ping response time limit %s",
		runner.BaseURL(), runner.Timeout(), params.maxResponseTime)
	results := jokeapitests.RunTestSuite(runner, params.filters.AsFilter, testLogger, sink,
		jokeapitests.WithContext(ctx),
		jokeapitests.WithMaxResponseTime(params.maxResponseTime),
		jokeapitests.WithDefinitions(defs),
	)
	if err := sink.End(results); err != nil {
		log.Errorf("Unable to write report: %s", err)
		return exitFailed
	}
	if params.excelReport != "" {
		log.Infof("Excel report written to %s", params.excelReport)
	}

	if !results.OK() {
		return exitFailed
	}
	return exitPassed
}
