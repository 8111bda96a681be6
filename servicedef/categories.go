// Package servicedef contains the JokeAPI wire formats that the test suite sends and
// expects to receive.
package servicedef

import "strings"

const (
	CategoryAny         = "Any"
	CategoryMisc        = "Misc"
	CategoryProgramming = "Programming"
	CategoryDark        = "Dark"
	CategoryPun         = "Pun"
	CategorySpooky      = "Spooky"
	CategoryChristmas   = "Christmas"
)

// JokeCategories are the concrete joke categories, not including "Any".
var JokeCategories = []string{
	CategoryProgramming,
	CategoryMisc,
	CategoryDark,
	CategoryPun,
	CategorySpooky,
	CategoryChristmas,
}

// AllCategories is every value accepted as the category path parameter of /joke.
var AllCategories = append([]string{CategoryAny}, JokeCategories...)

const (
	TypeSingle  = "single"
	TypeTwoPart = "twopart"
)

const (
	FlagNSFW      = "nsfw"
	FlagReligious = "religious"
	FlagPolitical = "political"
	FlagRacist    = "racist"
	FlagSexist    = "sexist"
	FlagExplicit  = "explicit"
)

var AllFlags = []string{
	FlagNSFW,
	FlagReligious,
	FlagPolitical,
	FlagRacist,
	FlagSexist,
	FlagExplicit,
}

const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatYAML = "yaml"
	FormatText = "txt"
)

var AllFormats = []string{FormatJSON, FormatXML, FormatYAML, FormatText}

// CurrentFormatVersion is the submission format version that the suite submits.
const CurrentFormatVersion = 3

// CanonicalCategory returns the entry of AllCategories that matches name, ignoring case as
// the service does.
func CanonicalCategory(name string) (string, bool) {
	for _, c := range AllCategories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
