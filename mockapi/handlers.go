package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func (h *Handler) timestamp() int64 {
	return h.now().UnixMilli()
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, causedBy ...string) {
	if causedBy == nil {
		causedBy = []string{}
	}
	writeJSON(w, status, servicedef.ErrorResponse{
		Error:          true,
		InternalError:  status >= 500,
		Code:           status,
		Message:        message,
		CausedBy:       causedBy,
		AdditionalInfo: message,
		Timestamp:      h.timestamp(),
	})
}

// NotFound handles any path that is not part of the API.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "Not Found", "The requested endpoint "+r.URL.Path+" does not exist")
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed",
		"The endpoint "+r.URL.Path+" does not accept "+r.Method+" requests")
}

// Ping handles GET /ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"ping":      "Pong!",
		"timestamp": h.timestamp(),
	})
}

// Info handles GET /info.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	safe := 0
	maxID := 0
	for _, j := range h.jokes {
		if j.Safe {
			safe++
		}
		if j.ID > maxID {
			maxID = j.ID
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":   false,
		"version": mockVersion,
		"jokes": map[string]interface{}{
			"totalCount":    len(h.jokes),
			"categories":    servicedef.AllCategories,
			"flags":         servicedef.AllFlags,
			"types":         []string{servicedef.TypeSingle, servicedef.TypeTwoPart},
			"submissionURL": "/submit",
			"idRange":       map[string][]int{defaultLanguage: {0, maxID}},
			"safeJokes":     []map[string]interface{}{{"lang": defaultLanguage, "count": safe}},
		},
		"formats":         servicedef.AllFormats,
		"jokeLanguages":   len(jokeLanguages),
		"systemLanguages": len(systemLanguages),
		"info":            "This is a local mock of JokeAPI.",
		"timestamp":       h.timestamp(),
	})
}

// Categories handles GET /categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	aliases := make([]map[string]string, 0, len(categoryAliases))
	for _, alias := range sortedKeys(categoryAliases) {
		aliases = append(aliases, map[string]string{"alias": alias, "resolved": categoryAliases[alias]})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":           false,
		"categories":      servicedef.AllCategories,
		"categoryAliases": aliases,
		"timestamp":       h.timestamp(),
	})
}

// Flags handles GET /flags.
func (h *Handler) Flags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"flags":     servicedef.AllFlags,
		"timestamp": h.timestamp(),
	})
}

// Formats handles GET /formats.
func (h *Handler) Formats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":     false,
		"formats":   servicedef.AllFormats,
		"timestamp": h.timestamp(),
	})
}

type endpointUsage struct {
	Method          string   `json:"method"`
	URL             string   `json:"url"`
	SupportedParams []string `json:"supportedParams"`
}

type endpoint struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       endpointUsage `json:"usage"`
}

func get(name, description string, params ...string) endpoint {
	if params == nil {
		params = []string{}
	}
	return endpoint{Name: name, Description: description,
		Usage: endpointUsage{Method: http.MethodGet, URL: "/" + name, SupportedParams: params}}
}

// Endpoints handles GET /endpoints.
func (h *Handler) Endpoints(w http.ResponseWriter, r *http.Request) {
	list := []endpoint{
		get("categories", "Returns a list of all available categories"),
		get("endpoints", "Returns a list of all endpoints"),
		get("flags", "Returns a list of all the blacklist flags"),
		get("formats", "Returns a list of all the response formats"),
		get("info", "Returns some information about the API"),
		get("joke", "Returns a joke from the specified category",
			"format", "blacklistFlags", "type", "contains", "idRange", "amount", "lang"),
		get("langcode", "Returns the code of a language"),
		get("languages", "Returns the supported languages"),
		get("ping", "Returns a pong"),
		{Name: "submit", Description: "Submits a joke",
			Usage: endpointUsage{Method: http.MethodPost, URL: "/submit", SupportedParams: []string{"dry-run"}}},
	}
	writeJSON(w, http.StatusOK, list)
}

// Languages handles GET /languages.
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	possible := make([]map[string]string, 0, len(languageCodes))
	for _, name := range sortedKeys(languageCodes) {
		possible = append(possible, map[string]string{"code": languageCodes[name], "name": name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"defaultLanguage":   defaultLanguage,
		"jokeLanguages":     jokeLanguages,
		"systemLanguages":   systemLanguages,
		"possibleLanguages": possible,
		"timestamp":         h.timestamp(),
	})
}

// LangCode handles GET /langcode/{name}.
func (h *Handler) LangCode(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	code, ok := languageCodes[strings.ToLower(name)]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   true,
			"message": "Couldn't find a language with the name " + name,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error": false,
		"code":  code,
	})
}
