package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	os.Unsetenv(LogLevelEnvVar)
	cfg := Default()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultMaxResponseTime, cfg.MaxResponseTime)
	assert.Equal(t, DefaultSlowThreshold, cfg.SlowThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.ExcelReport)
	assert.Empty(t, cfg.Definitions)
}

func TestDefaultLogLevelFromEnvironment(t *testing.T) {
	os.Setenv(LogLevelEnvVar, "debug")
	defer os.Unsetenv(LogLevelEnvVar)
	assert.Equal(t, "debug", Default().LogLevel)
}

func TestLoad(t *testing.T) {
	os.Setenv("JOKEAPI_TESTS_CONFIG_URL", "http://localhost:8080")
	defer os.Unsetenv("JOKEAPI_TESTS_CONFIG_URL")

	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
baseURL: ${JOKEAPI_TESTS_CONFIG_URL}
timeout: 5s
maxResponseTime: 1500ms
slowThreshold: 300ms
excelReport: report.xlsx
definitions: cases.yml
logLevel: warn
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.MaxResponseTime)
	assert.Equal(t, 300*time.Millisecond, cfg.SlowThreshold)
	assert.Equal(t, "report.xlsx", cfg.ExcelReport)
	assert.Equal(t, filepath.Join(dir, "cases.yml"), cfg.Definitions)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadKeepsDefaultsForMissingValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "excelReport: /tmp/r.xlsx\ndefinitions: /abs/cases.yml\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "/abs/cases.yml", cfg.Definitions)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad duration":      "timeout: forever\n",
		"negative duration": "maxResponseTime: -1s\n",
		"unknown key":       "baseUrl: http://x\n",
		"malformed":         "timeout: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, "config.yml", content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnvFile(filepath.Join(dir, ".env")))

	os.Unsetenv("JOKEAPI_TESTS_FROM_DOTENV")
	defer os.Unsetenv("JOKEAPI_TESTS_FROM_DOTENV")
	path := writeFile(t, dir, ".env", "JOKEAPI_TESTS_FROM_DOTENV=yes\n")
	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "yes", os.Getenv("JOKEAPI_TESTS_FROM_DOTENV"))
}
