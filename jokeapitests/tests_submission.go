package jokeapitests

import (
	"github.com/jokeapi-tests/jokeapi-contract-tests/httpcase"
	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"

	"github.com/go-faker/faker/v4"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func dryRunSubmission(s servicedef.Submission) httpcase.Case {
	return httpcase.Post("/submit", s).WithQuery("dry-run", ldvalue.Bool(true))
}

func DoSubmissionTests(t *T) {
	t.RunCase(dryRunSubmission(servicedef.NewSingleSubmission(servicedef.CategoryMisc, faker.Sentence())).
		Named("single dry-run").Expecting(
		httpcase.ExpectStatus(201),
		httpcase.ExpectJSONLike(object{"error": false}),
	))

	t.RunCase(dryRunSubmission(servicedef.NewTwoPartSubmission(servicedef.CategoryProgramming,
		faker.Sentence(), faker.Sentence())).
		Named("twopart dry-run").Expecting(
		httpcase.ExpectStatus(201),
		httpcase.ExpectJSONLike(object{"error": false}),
	))

	t.RunCase(dryRunSubmission(servicedef.NewSingleSubmission(servicedef.CategoryPun, faker.Sentence())).
		Named("echoes type and category").Expecting(
		httpcase.ExpectStatus(201),
		httpcase.ExpectJSONLike(object{
			"error": false,
			"submission": object{
				"type":     servicedef.TypeSingle,
				"category": servicedef.CategoryPun,
			},
		}),
	))

	t.RunCase(dryRunSubmission(servicedef.NewSingleSubmission("InvalidCategory", "")).
		Named("invalid submission").Expecting(
		httpcase.ExpectStatus(400),
	))

	t.RunCase(dryRunSubmission(servicedef.NewSingleSubmission(servicedef.CategoryMisc, "")).
		Named("empty joke text").Expecting(
		httpcase.ExpectStatus(400),
		httpcase.ExpectJSONLike(object{"error": true}),
	))
}
