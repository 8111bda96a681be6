package servicedef

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Joke is a single joke as returned by /joke. Either Joke or Setup and Delivery are set,
// depending on Type.
type Joke struct {
	Error    bool   `json:"error"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Joke     string `json:"joke,omitempty"`
	Setup    string `json:"setup,omitempty"`
	Delivery string `json:"delivery,omitempty"`
	Flags    Flags  `json:"flags"`
	ID       int    `json:"id"`
	Safe     bool   `json:"safe"`
	Lang     string `json:"lang"`
}

// MultipleJokes is the body returned by /joke when amount is greater than one.
type MultipleJokes struct {
	Error  bool   `json:"error"`
	Amount int    `json:"amount"`
	Jokes  []Joke `json:"jokes"`
}

// ErrorResponse is the body returned with a 4xx or 5xx status.
type ErrorResponse struct {
	Error          bool     `json:"error"`
	InternalError  bool     `json:"internalError"`
	Code           int      `json:"code"`
	Message        string   `json:"message"`
	CausedBy       []string `json:"causedBy"`
	AdditionalInfo string   `json:"additionalInfo"`
	Timestamp      int64    `json:"timestamp"`
}

// IDRange is an inclusive range of joke IDs for the idRange parameter.
type IDRange struct {
	From, To int
}

func (r IDRange) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return strconv.Itoa(r.From) + "-" + strconv.Itoa(r.To)
}

func (r IDRange) Contains(id int) bool {
	return id >= r.From && id <= r.To
}

// JokeQuery holds the optional query parameters of /joke. Zero values are omitted.
type JokeQuery struct {
	Amount         ldvalue.OptionalInt
	Type           string
	Format         string
	BlacklistFlags []string
	Contains       string
	IDRange        *IDRange
}

// Params returns the query as request parameters.
func (q JokeQuery) Params() map[string]ldvalue.Value {
	params := make(map[string]ldvalue.Value)
	if q.Amount.IsDefined() {
		params["amount"] = ldvalue.Int(q.Amount.IntValue())
	}
	if q.Type != "" {
		params["type"] = ldvalue.String(q.Type)
	}
	if q.Format != "" {
		params["format"] = ldvalue.String(q.Format)
	}
	if len(q.BlacklistFlags) != 0 {
		params["blacklistFlags"] = ldvalue.String(strings.Join(q.BlacklistFlags, ","))
	}
	if q.Contains != "" {
		params["contains"] = ldvalue.String(q.Contains)
	}
	if q.IDRange != nil {
		params["idRange"] = ldvalue.String(q.IDRange.String())
	}
	return params
}
