package jokeapitests

import (
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func jokeRequest(category string, query servicedef.JokeQuery) httpcase.Case {
	return httpcase.Get("/joke/{category}").
		WithPathParam("category", category).
		WithQueryParams(query.Params())
}

func DoJokeTests(t *T) {
	t.RunCase(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{}).Named("any").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{"error": false}),
		httpcase.ExpectJSONSchema(jokeSchema),
	))

	for _, category := range servicedef.JokeCategories {
		t.RunCase(jokeRequest(category, servicedef.JokeQuery{}).Named(category).Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false, "category": category}),
		))
	}

	t.Run("multiple jokes", func(t *T) {
		amount := 2
		resp := t.Check(jokeRequest(servicedef.CategoryAny,
			servicedef.JokeQuery{Amount: ldvalue.NewOptionalInt(amount)}).Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false, "amount": amount}),
		))
		jokes := t.RequireArray(resp, "jokes")
		require.Len(t, jokes, amount)
		for i, joke := range jokes {
			violations, err := jokeSchema.Validate(joke.Bytes())
			require.NoError(t, err)
			assert.Empty(t, violations, "joke %d does not match the joke schema", i)
		}
	})

	t.RunCase(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{Type: servicedef.TypeSingle}).
		Named("single type").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{"error": false, "type": servicedef.TypeSingle}),
		httpcase.ExpectJSONField("joke"),
	))

	t.RunCase(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{Type: servicedef.TypeTwoPart}).
		Named("twopart type").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{"error": false, "type": servicedef.TypeTwoPart}),
		httpcase.ExpectJSONField("setup"),
		httpcase.ExpectJSONField("delivery"),
	))

	t.RunCase(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{Format: servicedef.FormatXML}).
		Named("xml format").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectHeaderContains("Content-Type", "xml"),
		httpcase.ExpectBodyContains("<?xml"),
	))

	t.RunCase(jokeRequest(servicedef.CategoryAny,
		servicedef.JokeQuery{BlacklistFlags: []string{servicedef.FlagNSFW, servicedef.FlagRacist}}).
		Named("blacklisted flags").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{
			"error": false,
			"flags": object{servicedef.FlagNSFW: false, servicedef.FlagRacist: false},
		}),
	))

	t.RunCase(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{Contains: "the"}).
		Named("contains search").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{"error": false}),
	))

	t.Run("id range", func(t *T) {
		idRange := servicedef.IDRange{From: 0, To: 10}
		resp := t.Check(jokeRequest(servicedef.CategoryAny, servicedef.JokeQuery{IDRange: &idRange}).Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false}),
		))
		id, ok := t.RequireJSON(resp).Path("id").Data().(float64)
		require.True(t, ok, "response has no numeric id")
		assert.True(t, idRange.Contains(int(id)), "id %v is outside %s", id, idRange)
	})

	t.RunCase(jokeRequest("InvalidCategory", servicedef.JokeQuery{}).Named("invalid category").Expecting(
		httpcase.ExpectStatus(400),
		httpcase.ExpectJSONLike(object{"error": true}),
	))
}
