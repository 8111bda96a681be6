package mockapi

import "github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"

const (
	mockVersion      = "2.3.2"
	defaultLanguage  = "en"
	maxAmount        = 10
	submissionDryRun = "Dry Run complete! No errors were found."
	submissionSaved  = "Joke submission was saved successfully. It will only be visible after it has been reviewed."
)

var jokeLanguages = []string{"cs", "de", "en", "es", "fr", "pt"}

var systemLanguages = []string{"cs", "de", "en", "ru", "es", "fr", "pt"}

var languageCodes = map[string]string{
	"czech":      "cs",
	"german":     "de",
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"portuguese": "pt",
	"russian":    "ru",
}

var categoryAliases = map[string]string{
	"miscellaneous": servicedef.CategoryMisc,
	"coding":        servicedef.CategoryProgramming,
	"development":   servicedef.CategoryProgramming,
	"halloween":     servicedef.CategorySpooky,
}

func noFlags() servicedef.Flags { return servicedef.Flags{} }

func single(id int, category, text string, flags servicedef.Flags) servicedef.Joke {
	return servicedef.Joke{
		Category: category,
		Type:     servicedef.TypeSingle,
		Joke:     text,
		Flags:    flags,
		ID:       id,
		Safe:     flags == noFlags() && category != servicedef.CategoryDark,
		Lang:     defaultLanguage,
	}
}

func twoPart(id int, category, setup, delivery string, flags servicedef.Flags) servicedef.Joke {
	return servicedef.Joke{
		Category: category,
		Type:     servicedef.TypeTwoPart,
		Setup:    setup,
		Delivery: delivery,
		Flags:    flags,
		ID:       id,
		Safe:     flags == noFlags() && category != servicedef.CategoryDark,
		Lang:     defaultLanguage,
	}
}

// catalogue is the fixed set of jokes served by the mock. IDs are the slice indexes.
var catalogue = []servicedef.Joke{
	single(0, servicedef.CategoryProgramming,
		"There are 10 kinds of people in the world: those who know binary and those who don't.", noFlags()),
	twoPart(1, servicedef.CategoryProgramming,
		"Why do programmers prefer dark mode?", "Because light attracts bugs.", noFlags()),
	twoPart(2, servicedef.CategoryMisc,
		"What do you call a fake noodle?", "An impasta.", noFlags()),
	single(3, servicedef.CategoryMisc,
		"I told my wife she was drawing her eyebrows too high. She looked surprised.", noFlags()),
	twoPart(4, servicedef.CategoryDark,
		"What is the worst part about the end of the world?", "Nobody is left to laugh at your jokes.",
		servicedef.Flags{Explicit: true}),
	single(5, servicedef.CategoryPun,
		"I used to be a banker, but I lost interest.", noFlags()),
	twoPart(6, servicedef.CategoryPun,
		"Why did the scarecrow win an award?", "He was outstanding in his field.", noFlags()),
	twoPart(7, servicedef.CategorySpooky,
		"Why didn't the skeleton go to the party?", "He had no body to go with.", noFlags()),
	single(8, servicedef.CategoryChristmas,
		"The elves went on strike because they were underpaid and over-elfed.", noFlags()),
	twoPart(9, servicedef.CategoryChristmas,
		"What do you call an obnoxious reindeer?", "Rude-olph.", noFlags()),
	single(10, servicedef.CategoryProgramming,
		"A SQL query walks into a bar, goes up to two tables and asks: can I join you?", noFlags()),
	twoPart(11, servicedef.CategoryMisc,
		"What did the ocean say to the beach?", "Nothing, it just waved.", servicedef.Flags{NSFW: true}),
	single(12, servicedef.CategoryDark,
		"My grandfather has the heart of a lion and a lifetime ban from the zoo.",
		servicedef.Flags{NSFW: true}),
	twoPart(13, servicedef.CategorySpooky,
		"What room does a ghost not need?", "A living room.", noFlags()),
}
