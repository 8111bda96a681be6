package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"
)

type submissionBody struct {
	FormatVersion int              `json:"formatVersion"`
	Category      string           `json:"category"`
	Type          string           `json:"type"`
	Joke          string           `json:"joke"`
	Setup         string           `json:"setup"`
	Delivery      string           `json:"delivery"`
	Flags         map[string]*bool `json:"flags"`
	Lang          string           `json:"lang"`
}

// Submit handles POST /submit. With the dry-run query parameter the submission is only
// validated. Accepted submissions are not stored.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submissionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "Request body is not valid JSON", err.Error())
		return
	}

	submission, problems := validateSubmission(body)
	if len(problems) != 0 {
		h.writeError(w, http.StatusBadRequest, "Joke submission is invalid", problems...)
		return
	}

	message := submissionSaved
	if _, dryRun := r.URL.Query()["dry-run"]; dryRun {
		message = submissionDryRun
	}
	writeJSON(w, http.StatusCreated, servicedef.SubmissionResponse{
		Error:      false,
		Message:    message,
		Submission: &submission,
		Timestamp:  h.timestamp(),
	})
}

func validateSubmission(body submissionBody) (servicedef.Submission, []string) {
	var problems []string
	if body.FormatVersion != servicedef.CurrentFormatVersion {
		problems = append(problems, fmt.Sprintf("formatVersion must be %d", servicedef.CurrentFormatVersion))
	}

	category, ok := resolveCategory(body.Category)
	if !ok || category == servicedef.CategoryAny {
		problems = append(problems, fmt.Sprintf("invalid category %q", body.Category))
	}

	switch body.Type {
	case servicedef.TypeSingle:
		if strings.TrimSpace(body.Joke) == "" {
			problems = append(problems, "joke must not be empty")
		}
	case servicedef.TypeTwoPart:
		if strings.TrimSpace(body.Setup) == "" || strings.TrimSpace(body.Delivery) == "" {
			problems = append(problems, "setup and delivery must not be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid type %q", body.Type))
	}

	var flags servicedef.Flags
	for _, name := range servicedef.AllFlags {
		value, ok := body.Flags[name]
		if !ok || value == nil {
			problems = append(problems, fmt.Sprintf("flag %q is missing", name))
			continue
		}
		setFlag(&flags, name, *value)
	}

	lang := body.Lang
	if lang == "" {
		problems = append(problems, "lang must not be empty")
	} else if !contains(jokeLanguages, lang) {
		problems = append(problems, fmt.Sprintf("unsupported language %q", lang))
	}

	return servicedef.Submission{
		FormatVersion: body.FormatVersion,
		Category:      category,
		Type:          body.Type,
		Joke:          body.Joke,
		Setup:         body.Setup,
		Delivery:      body.Delivery,
		Flags:         flags,
		Lang:          lang,
	}, problems
}

func setFlag(flags *servicedef.Flags, name string, value bool) {
	switch name {
	case servicedef.FlagNSFW:
		flags.NSFW = value
	case servicedef.FlagReligious:
		flags.Religious = value
	case servicedef.FlagPolitical:
		flags.Political = value
	case servicedef.FlagRacist:
		flags.Racist = value
	case servicedef.FlagSexist:
		flags.Sexist = value
	case servicedef.FlagExplicit:
		flags.Explicit = value
	}
}
