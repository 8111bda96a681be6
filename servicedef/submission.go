package servicedef

// Flags are the content flags of a joke. On submission all of them must be present.
type Flags struct {
	NSFW      bool `json:"nsfw"`
	Religious bool `json:"religious"`
	Political bool `json:"political"`
	Racist    bool `json:"racist"`
	Sexist    bool `json:"sexist"`
	Explicit  bool `json:"explicit"`
}

// Submission is the body of POST /submit.
//
// Single jokes set Joke; two-part jokes set Setup and Delivery.
type Submission struct {
	FormatVersion int    `json:"formatVersion"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Joke          string `json:"joke,omitempty"`
	Setup         string `json:"setup,omitempty"`
	Delivery      string `json:"delivery,omitempty"`
	Flags         Flags  `json:"flags"`
	Lang          string `json:"lang"`
}

// NewSingleSubmission returns a single-type submission with no flags set.
func NewSingleSubmission(category, joke string) Submission {
	return Submission{
		FormatVersion: CurrentFormatVersion,
		Category:      category,
		Type:          TypeSingle,
		Joke:          joke,
		Lang:          "en",
	}
}

// NewTwoPartSubmission returns a two-part submission with no flags set.
func NewTwoPartSubmission(category, setup, delivery string) Submission {
	return Submission{
		FormatVersion: CurrentFormatVersion,
		Category:      category,
		Type:          TypeTwoPart,
		Setup:         setup,
		Delivery:      delivery,
		Lang:          "en",
	}
}

// SubmissionResponse is the body returned by POST /submit. Submission is only present
// when the submission was accepted.
type SubmissionResponse struct {
	Error      bool        `json:"error"`
	Message    string      `json:"message"`
	Submission *Submission `json:"submission,omitempty"`
	Timestamp  int64       `json:"timestamp"`
}
