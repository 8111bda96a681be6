package mockapi

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into), "body: %s", rec.Body.String())
}

func newTestHandler() http.Handler {
	return NewHandler(WithClock(func() time.Time { return fixedTime }))
}

func TestPing(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/ping", "")
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":false,"ping":"Pong!","timestamp":1704164645000}`, rec.Body.String())
}

func TestInfo(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/info", "")
	assert.Equal(t, 200, rec.Code)
	var body struct {
		Error   bool   `json:"error"`
		Version string `json:"version"`
		Jokes   struct {
			TotalCount int      `json:"totalCount"`
			Categories []string `json:"categories"`
		} `json:"jokes"`
	}
	decode(t, rec, &body)
	assert.False(t, body.Error)
	assert.Equal(t, mockVersion, body.Version)
	assert.Equal(t, len(catalogue), body.Jokes.TotalCount)
	assert.Equal(t, servicedef.AllCategories, body.Jokes.Categories)
}

func TestListEndpoints(t *testing.T) {
	h := newTestHandler()
	for path, field := range map[string]string{"/categories": "categories", "/flags": "flags", "/formats": "formats"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, "GET", path, "")
			assert.Equal(t, 200, rec.Code)
			var body map[string]interface{}
			decode(t, rec, &body)
			assert.Equal(t, false, body["error"])
			assert.NotEmpty(t, body[field])
		})
	}

	rec := do(t, h, "GET", "/endpoints", "")
	assert.Equal(t, 200, rec.Code)
	var endpoints []endpoint
	decode(t, rec, &endpoints)
	assert.NotEmpty(t, endpoints)
}

func TestLanguages(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/languages", "")
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jokeLanguages"`)
}

func TestLangCode(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h, "GET", "/langcode/portuguese", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"error":false,"code":"pt"}`, rec.Body.String())

	rec = do(t, h, "GET", "/langcode/English", "")
	assert.JSONEq(t, `{"error":false,"code":"en"}`, rec.Body.String())

	rec = do(t, h, "GET", "/langcode/klingon", "")
	assert.Equal(t, 400, rec.Code)
}

func TestJokeByCategory(t *testing.T) {
	h := newTestHandler()
	for _, category := range servicedef.JokeCategories {
		t.Run(category, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				rec := do(t, h, "GET", "/joke/"+category, "")
				require.Equal(t, 200, rec.Code)
				var joke servicedef.Joke
				decode(t, rec, &joke)
				assert.False(t, joke.Error)
				assert.Equal(t, category, joke.Category)
			}
		})
	}
}

func TestJokeCategoryListAndAlias(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h, "GET", "/joke/Pun,coding?amount=10", "")
	require.Equal(t, 200, rec.Code)
	var body servicedef.MultipleJokes
	decode(t, rec, &body)
	for _, j := range body.Jokes {
		assert.Contains(t, []string{servicedef.CategoryPun, servicedef.CategoryProgramming}, j.Category)
	}
}

func TestInvalidCategory(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/joke/InvalidCategory", "")
	assert.Equal(t, 400, rec.Code)
	var body servicedef.ErrorResponse
	decode(t, rec, &body)
	assert.True(t, body.Error)
	assert.Equal(t, 400, body.Code)
}

func TestMultipleJokes(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/joke/Any?amount=2", "")
	require.Equal(t, 200, rec.Code)
	var body servicedef.MultipleJokes
	decode(t, rec, &body)
	assert.Equal(t, 2, body.Amount)
	require.Len(t, body.Jokes, 2)
	assert.NotEqual(t, body.Jokes[0].ID, body.Jokes[1].ID)
}

func TestAmountIsCapped(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/joke/Any?amount=500", "")
	var body servicedef.MultipleJokes
	decode(t, rec, &body)
	assert.Equal(t, maxAmount, body.Amount)
}

func TestJokeFilters(t *testing.T) {
	h := newTestHandler()

	for _, jokeType := range []string{servicedef.TypeSingle, servicedef.TypeTwoPart} {
		rec := do(t, h, "GET", "/joke/Any?amount=10&type="+jokeType, "")
		var body servicedef.MultipleJokes
		decode(t, rec, &body)
		require.NotEmpty(t, body.Jokes)
		for _, j := range body.Jokes {
			assert.Equal(t, jokeType, j.Type)
			if jokeType == servicedef.TypeSingle {
				assert.NotEmpty(t, j.Joke)
			} else {
				assert.NotEmpty(t, j.Setup)
				assert.NotEmpty(t, j.Delivery)
			}
		}
	}

	rec := do(t, h, "GET", "/joke/Any?amount=10&blacklistFlags=nsfw,racist,explicit", "")
	var clean servicedef.MultipleJokes
	decode(t, rec, &clean)
	require.NotEmpty(t, clean.Jokes)
	for _, j := range clean.Jokes {
		assert.False(t, j.Flags.NSFW)
		assert.False(t, j.Flags.Racist)
		assert.False(t, j.Flags.Explicit)
	}

	rec = do(t, h, "GET", "/joke/Any?contains=NOODLE", "")
	require.Equal(t, 200, rec.Code)
	var found servicedef.Joke
	decode(t, rec, &found)
	assert.Equal(t, 2, found.ID)

	rec = do(t, h, "GET", "/joke/Any?amount=10&idRange=3-5", "")
	var ranged servicedef.MultipleJokes
	decode(t, rec, &ranged)
	assert.Equal(t, 3, ranged.Amount)
	for _, j := range ranged.Jokes {
		assert.True(t, j.ID >= 3 && j.ID <= 5)
	}
}

func TestInvalidJokeParameters(t *testing.T) {
	h := newTestHandler()
	for _, query := range []string{
		"type=triple", "blacklistFlags=rude", "idRange=5-2", "idRange=x", "amount=0", "amount=two",
	} {
		t.Run(query, func(t *testing.T) {
			rec := do(t, h, "GET", "/joke/Any?"+query, "")
			assert.Equal(t, 400, rec.Code)
		})
	}
}

func TestNoMatchingJoke(t *testing.T) {
	rec := do(t, newTestHandler(), "GET", "/joke/Any?contains=zzzzzz", "")
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "No matching joke found")
}

func TestXMLFormat(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h, "GET", "/joke/Pun?format=xml", "")
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "xml")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	var body struct {
		Error    bool   `xml:"error"`
		Category string `xml:"category"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, servicedef.CategoryPun, body.Category)

	rec = do(t, h, "GET", "/joke/Any?format=xml&amount=2", "")
	var multi struct {
		Amount int `xml:"amount"`
		Jokes  []struct {
			ID int `xml:"id"`
		} `xml:"jokes>joke"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &multi))
	assert.Equal(t, 2, multi.Amount)
	assert.Len(t, multi.Jokes, 2)
}

func TestYAMLAndTextFormats(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h, "GET", "/joke/Any?format=yaml&contains=noodle", "")
	require.Equal(t, 200, rec.Code)
	var body map[string]interface{}
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "An impasta.", body["delivery"])

	rec = do(t, h, "GET", "/joke/Any?format=txt&contains=noodle", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "What do you call a fake noodle?\n\nAn impasta.", rec.Body.String())
}

const validSubmission = `{"formatVersion":3,"category":"Misc","type":"single","joke":"A joke.",
	"flags":{"nsfw":false,"religious":false,"political":false,"racist":false,"sexist":false,"explicit":false},
	"lang":"en"}`

func TestSubmitDryRun(t *testing.T) {
	rec := do(t, newTestHandler(), "POST", "/submit?dry-run", validSubmission)
	require.Equal(t, 201, rec.Code)
	var body servicedef.SubmissionResponse
	decode(t, rec, &body)
	assert.False(t, body.Error)
	assert.Equal(t, submissionDryRun, body.Message)
	require.NotNil(t, body.Submission)
	assert.Equal(t, servicedef.TypeSingle, body.Submission.Type)
	assert.Equal(t, servicedef.CategoryMisc, body.Submission.Category)
	assert.Equal(t, "A joke.", body.Submission.Joke)
}

func TestSubmitWithoutDryRun(t *testing.T) {
	rec := do(t, newTestHandler(), "POST", "/submit", validSubmission)
	require.Equal(t, 201, rec.Code)
	var body servicedef.SubmissionResponse
	decode(t, rec, &body)
	assert.Equal(t, submissionSaved, body.Message)
}

func TestSubmitEncodedSubmission(t *testing.T) {
	data, err := json.Marshal(servicedef.NewTwoPartSubmission(servicedef.CategoryProgramming, "Setup?", "Delivery."))
	require.NoError(t, err)
	rec := do(t, newTestHandler(), "POST", "/submit?dry-run=true", string(data))
	assert.Equal(t, 201, rec.Code)
}

func TestSubmitInvalid(t *testing.T) {
	h := newTestHandler()
	valid := servicedef.NewSingleSubmission(servicedef.CategoryMisc, "A joke.")
	for name, s := range map[string]servicedef.Submission{
		"invalid category": servicedef.NewSingleSubmission("InvalidCategory", ""),
		"any category":     servicedef.NewSingleSubmission(servicedef.CategoryAny, "A joke."),
		"empty joke":       servicedef.NewSingleSubmission(servicedef.CategoryMisc, ""),
		"empty delivery":   servicedef.NewTwoPartSubmission(servicedef.CategoryMisc, "Setup?", ""),
		"bad version":      func() servicedef.Submission { s := valid; s.FormatVersion = 2; return s }(),
		"bad type":         func() servicedef.Submission { s := valid; s.Type = "limerick"; return s }(),
		"bad lang":         func() servicedef.Submission { s := valid; s.Lang = "xx"; return s }(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(s)
			require.NoError(t, err)
			rec := do(t, h, "POST", "/submit?dry-run=true", string(data))
			assert.Equal(t, 400, rec.Code)
			var body servicedef.ErrorResponse
			decode(t, rec, &body)
			assert.True(t, body.Error)
			assert.NotEmpty(t, body.CausedBy)
		})
	}

	rec := do(t, h, "POST", "/submit?dry-run=true", `{"formatVersion":3,"category":"Misc","type":"single","joke":"x","lang":"en"}`)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "is missing")

	rec = do(t, h, "POST", "/submit?dry-run=true", `not json`)
	assert.Equal(t, 400, rec.Code)
}

func TestUnknownPathAndMethod(t *testing.T) {
	h := newTestHandler()
	rec := do(t, h, "GET", "/nothing", "")
	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = do(t, h, "DELETE", "/ping", "")
	assert.Equal(t, 405, rec.Code)
}

func TestWithJokes(t *testing.T) {
	h := NewHandler(WithJokes([]servicedef.Joke{single(42, servicedef.CategoryPun, "Only joke.", noFlags())}))
	rec := do(t, h, "GET", "/joke/Any", "")
	var joke servicedef.Joke
	decode(t, rec, &joke)
	assert.Equal(t, 42, joke.ID)

	rec = do(t, h, "GET", "/joke/Dark", "")
	assert.Equal(t, 400, rec.Code)
}
