package httpcase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const testDefinitions = `
groups:
  - name: extra
    cases:
      - name: ping
        path: /ping
        expect:
          status: 200
          headers:
            content-type: json
          bodyContains: ["Pong"]
          jsonLike:
            error: false
          fieldsExist: [timestamp]
          maxResponseTime: 2s
      - name: submit
        method: post
        path: /submit
        query:
          dry-run: true
          amount: 3
        headers:
          X-Test: "yes"
        body:
          formatVersion: 3
          flags:
            nsfw: false
        expect:
          status: 201
          jsonSchema: '{"type":"object"}'
`

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions([]byte(testDefinitions))
	require.NoError(t, err)
	require.Len(t, defs.Groups, 1)
	assert.Equal(t, "extra", defs.Groups[0].Name)

	cases, err := defs.Groups[0].Build()
	require.NoError(t, err)
	require.Len(t, cases, 2)

	ping := cases[0]
	assert.Equal(t, "ping", ping.Name)
	assert.Equal(t, MethodGet, ping.Method)
	require.Len(t, ping.Expect, 6)
	assert.Equal(t, "status 200", ping.Expect[0].String())
	assert.Equal(t, `header Content-Type containing "json"`, ping.Expect[1].String())
	assert.Equal(t, `body containing "Pong"`, ping.Expect[2].String())
	assert.Equal(t, `JSON like {"error":false}`, ping.Expect[3].String())
	assert.Equal(t, `JSON field "timestamp"`, ping.Expect[4].String())
	assert.Equal(t, "response time at most "+(2*time.Second).String(), ping.Expect[5].String())

	submit := cases[1]
	assert.Equal(t, MethodPost, submit.Method)
	assert.Equal(t, ldvalue.Bool(true), submit.Query["dry-run"])
	assert.Equal(t, ldvalue.Int(3), submit.Query["amount"])
	assert.Equal(t, "yes", submit.Headers["X-Test"])
	assert.Equal(t, map[string]interface{}{
		"formatVersion": 3,
		"flags":         map[string]interface{}{"nsfw": false},
	}, submit.Body)
	require.Len(t, submit.Expect, 2)
	assert.Equal(t, `body matching schema "submit"`, submit.Expect[1].String())
}

func TestParseDefinitionsErrors(t *testing.T) {
	for name, yml := range map[string]string{
		"group name":     "groups: [{cases: []}]",
		"case name":      "groups: [{name: g, cases: [{path: /ping}]}]",
		"method":         "groups: [{name: g, cases: [{name: c, method: PUT, path: /x}]}]",
		"path param":     "groups: [{name: g, cases: [{name: c, path: '/joke/{category}'}]}]",
		"query value":    "groups: [{name: g, cases: [{name: c, path: /x, query: {a: [1, 2]}}]}]",
		"schema":         "groups: [{name: g, cases: [{name: c, path: /x, expect: {jsonSchema: '{'}}]}]",
		"response time":  "groups: [{name: g, cases: [{name: c, path: /x, expect: {maxResponseTime: soon}}]}]",
		"malformed yaml": "groups: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDefinitions([]byte(yml))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefinitionsSubstitutesEnvironment(t *testing.T) {
	os.Setenv("JOKEAPI_TESTS_DEF_CATEGORY", "Programming")
	defer os.Unsetenv("JOKEAPI_TESTS_DEF_CATEGORY")

	fileName := filepath.Join(t.TempDir(), "cases.yml")
	require.NoError(t, os.WriteFile(fileName, []byte(`
groups:
  - name: env
    cases:
      - name: category
        path: /joke/{category}
        pathParams:
          category: ${JOKEAPI_TESTS_DEF_CATEGORY}
`), 0o600))

	defs, err := LoadDefinitions(fileName)
	require.NoError(t, err)
	cases, err := defs.Groups[0].Build()
	require.NoError(t, err)
	assert.Equal(t, "Programming", cases[0].PathParams["category"])
}

func TestLoadDefinitionsMissingFile(t *testing.T) {
	_, err := LoadDefinitions(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
