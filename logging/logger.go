// Package logging provides the harness-level logger. Per-test debug output does not go
// here; it is captured by the framework package and shown by the test logger.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jokeapi-tests/jokeapi-contract-tests/framework"

	"go.uber.org/zap"
)

// LevelEnvVar is the environment variable that selects the logging level.
const LevelEnvVar = "JOKEAPI_TESTS_LOG_LEVEL"

var (
	log     *zap.SugaredLogger
	logOnce sync.Once
)

var logLevels = []string{
	zap.DebugLevel.String(),
	zap.InfoLevel.String(),
	zap.WarnLevel.String(),
	zap.ErrorLevel.String(),
	zap.DPanicLevel.String(),
	zap.PanicLevel.String(),
	zap.FatalLevel.String(),
}

func validLevel(level string) bool {
	for _, v := range logLevels {
		if v == level {
			return true
		}
	}
	return false
}

// New builds a console logger at the given level. An unrecognized level falls back to info.
func New(level string) (*zap.SugaredLogger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if !validLevel(level) {
		level = zap.InfoLevel.String()
	}
	rawJSON := []byte(fmt.Sprintf(`{
	  "level": "%s",
	  "encoding": "console",
	  "outputPaths": ["stderr"],
	  "errorOutputPaths": ["stderr"],
	  "initialFields": {},
	  "encoderConfig": {
	    "messageKey": "message",
	    "levelKey": "level",
	    "timeKey": "time",
	    "timeEncoder": "iso8601",
	    "levelEncoder": "lowercase"
	  }
	}`, level))

	var cfg zap.Config
	if err := json.Unmarshal(rawJSON, &cfg); err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}

// GetLogger returns the process-wide logger, creating it on first use with the level taken
// from LevelEnvVar, or the level passed to Init if that was called first.
func GetLogger() *zap.SugaredLogger {
	Init(os.Getenv(LevelEnvVar))
	return log
}

// Init creates the process-wide logger at the given level. Only the first call has any effect.
func Init(level string) {
	logOnce.Do(func() {
		l, err := New(level)
		if err != nil {
			l = zap.NewNop().Sugar()
		}
		log = l
		log.Debugf("Logging level set to %s", level)
	})
}

type printfAdapter struct {
	logger *zap.SugaredLogger
}

func (p printfAdapter) Printf(message string, args ...interface{}) {
	p.logger.Debugf(message, args...)
}

// Printf adapts a zap logger to the framework's Logger interface. Messages are logged at
// debug level.
func Printf(logger *zap.SugaredLogger) framework.Logger {
	if logger == nil {
		return framework.NullLogger()
	}
	return printfAdapter{logger: logger}
}
