package httpcase

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func jsonResponse(body string) *Response {
	return &Response{
		StatusCode: 200,
		Header:     http.Header{"Content-Type": {"application/json; charset=utf-8"}},
		Body:       []byte(body),
	}
}

func requireExpectationError(t *testing.T, err error, kind Kind) *ExpectationError {
	t.Helper()
	require.Error(t, err)
	var e *ExpectationError
	require.True(t, errors.As(err, &e), "error was %T: %s", err, err)
	assert.Equal(t, kind, e.Kind)
	return e
}

func TestExpectStatus(t *testing.T) {
	resp := jsonResponse(`{}`)
	assert.NoError(t, ExpectStatus(200).Check(resp))

	err := ExpectStatus(201).Check(resp)
	requireExpectationError(t, err, KindStatus)
	assert.Equal(t, "expected status 201: got 200", err.Error())
}

func TestExpectHeaderContains(t *testing.T) {
	resp := jsonResponse(`{}`)
	assert.NoError(t, ExpectHeaderContains("content-type", "application/json").Check(resp))
	assert.NoError(t, ExpectHeaderContains("Content-Type", "UTF-8").Check(resp))

	e := requireExpectationError(t, ExpectHeaderContains("Content-Type", "xml").Check(resp), KindHeader)
	assert.Equal(t, `value was "application/json; charset=utf-8"`, e.Message)

	e = requireExpectationError(t, ExpectHeaderContains("X-Missing", "a").Check(resp), KindHeader)
	assert.Equal(t, "header not found", e.Message)
}

func TestExpectBodyContains(t *testing.T) {
	resp := jsonResponse(`{"joke":"Why?"}`)
	assert.NoError(t, ExpectBodyContains("Why?").Check(resp))
	requireExpectationError(t, ExpectBodyContains("Because").Check(resp), KindBody)
}

func TestExpectResponseTimeAtMost(t *testing.T) {
	resp := jsonResponse(`{}`)
	resp.Elapsed = 1500 * time.Millisecond
	assert.NoError(t, ExpectResponseTimeAtMost(2*time.Second).Check(resp))
	assert.NoError(t, ExpectResponseTimeAtMost(1500*time.Millisecond).Check(resp))

	e := requireExpectationError(t, ExpectResponseTimeAtMost(time.Second).Check(resp), KindResponseTime)
	assert.Equal(t, "response took 1.5s", e.Message)
}

func TestExpectJSONLike(t *testing.T) {
	resp := jsonResponse(`{"error":false,"category":"Pun","flags":{"nsfw":false,"racist":false},"id":12,"extra":[1,2]}`)

	assert.NoError(t, ExpectJSONLike(map[string]interface{}{"error": false}).Check(resp))
	assert.NoError(t, ExpectJSONLike(map[string]interface{}{
		"category": "Pun",
		"id":       12,
		"flags":    map[string]interface{}{"nsfw": false},
	}).Check(resp))
	assert.NoError(t, ExpectJSONLike(ldvalue.ObjectBuild().Set("id", ldvalue.Int(12)).Build()).Check(resp))

	e := requireExpectationError(t, ExpectJSONLike(map[string]interface{}{
		"category": "Dark",
		"flags":    map[string]interface{}{"nsfw": true},
	}).Check(resp), KindJSON)
	lines := strings.SplitN(e.Message, "\n", 3)
	require.Len(t, lines, 3)
	assert.Equal(t, `at "category": expected "Dark" but got "Pun"; at "flags.nsfw": expected true but got false`, lines[0])
	assert.Equal(t, "diff (-expected +actual):", lines[1])
	assert.Contains(t, lines[2], `"Dark"`)
	assert.Contains(t, lines[2], `"Pun"`)
	assert.NotContains(t, lines[2], "racist")
}

func TestExpectJSONLikeScalarHasNoDiff(t *testing.T) {
	e := requireExpectationError(t, ExpectJSONLike(2).Check(jsonResponse(`"2"`)), KindJSON)
	assert.Equal(t, `at "(root)": expected 2 but got "2"`, e.Message)
}

func TestExpectJSONLikeWithStruct(t *testing.T) {
	type partial struct {
		Error bool   `json:"error"`
		Type  string `json:"type"`
	}
	resp := jsonResponse(`{"error":false,"type":"single","joke":"x"}`)
	assert.NoError(t, ExpectJSONLike(partial{Type: "single"}).Check(resp))
}

func TestExpectJSONLikeWithInvalidBody(t *testing.T) {
	e := requireExpectationError(t, ExpectJSONLike(map[string]interface{}{}).Check(jsonResponse(`<xml/>`)), KindJSON)
	assert.Contains(t, e.Message, "not valid JSON")
}

func TestExpectJSONLikeWithUnmarshalableValue(t *testing.T) {
	e := requireExpectationError(t, ExpectJSONLike(make(chan int)).Check(jsonResponse(`{}`)), KindJSON)
	assert.Contains(t, e.Message, "invalid expected value")
}

func TestExpectJSONField(t *testing.T) {
	resp := jsonResponse(`{"jokes":[{"id":1},{"id":2}],"info":{"version":null}}`)
	assert.NoError(t, ExpectJSONField("jokes.1.id").Check(resp))
	assert.NoError(t, ExpectJSONField("info.version").Check(resp))

	e := requireExpectationError(t, ExpectJSONField("jokes.2.id").Check(resp), KindJSON)
	assert.Equal(t, "not found", e.Message)
}

func TestEvaluateCollectsEveryFailureInOrder(t *testing.T) {
	resp := jsonResponse(`{"error":true}`)
	resp.StatusCode = 400

	err := Evaluate(resp, []Expectation{
		ExpectStatus(200),
		ExpectHeaderContains("Content-Type", "json"),
		ExpectJSONField("joke"),
	})
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	requireExpectationError(t, errs[0], KindStatus)
	requireExpectationError(t, errs[1], KindJSON)
}

func TestEvaluateWithNoFailures(t *testing.T) {
	assert.NoError(t, Evaluate(jsonResponse(`{}`), []Expectation{ExpectStatus(200)}))
	assert.NoError(t, Evaluate(jsonResponse(`{}`), nil))
}
