package jokeapitests

import (
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object = map[string]interface{}

func DoSystemTests(t *T) {
	t.RunCase(httpcase.Get("/ping").Named("ping").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectJSONLike(object{"error": false, "ping": "Pong!"}),
		httpcase.ExpectHeaderContains("Content-Type", "application/json"),
		httpcase.ExpectResponseTimeAtMost(t.env.config.maxResponseTime),
		httpcase.ExpectJSONSchema(pingSchema),
	))

	t.RunCase(httpcase.Get("/info").Named("info").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectBodyContains("version"),
		httpcase.ExpectBodyContains("categories"),
		httpcase.ExpectJSONSchema(infoSchema),
	))

	t.RunCase(httpcase.Get("/languages").Named("languages").Expecting(
		httpcase.ExpectStatus(200),
		httpcase.ExpectBodyContains("jokeLanguages"),
	))

	for _, p := range []struct{ name, code string }{
		{"portuguese", "pt"},
		{"english", "en"},
	} {
		t.RunCase(httpcase.Get("/langcode/{name}").
			Named("langcode "+p.name).
			WithPathParam("name", p.name).
			Expecting(
				httpcase.ExpectStatus(200),
				httpcase.ExpectJSONLike(object{"error": false, "code": p.code}),
			))
	}

	t.Run("categories", func(t *T) {
		resp := t.Check(httpcase.Get("/categories").Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false}),
		))
		assert.Subset(t, t.RequireStrings(resp, "categories"), servicedef.AllCategories)
	})

	t.Run("flags", func(t *T) {
		resp := t.Check(httpcase.Get("/flags").Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false}),
		))
		assert.Subset(t, t.RequireStrings(resp, "flags"), servicedef.AllFlags)
	})

	t.Run("formats", func(t *T) {
		resp := t.Check(httpcase.Get("/formats").Expecting(
			httpcase.ExpectStatus(200),
			httpcase.ExpectJSONLike(object{"error": false}),
		))
		assert.Contains(t, t.RequireStrings(resp, "formats"), servicedef.FormatJSON)
	})

	t.Run("endpoints", func(t *T) {
		resp := t.Check(httpcase.Get("/endpoints").Expecting(httpcase.ExpectStatus(200)))
		require.NotEmpty(t, t.RequireArray(resp, ""))
	})
}
