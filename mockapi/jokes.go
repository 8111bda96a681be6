package mockapi

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v2"

	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"
)

const jokeSeparator = "\n\n----------------------------------------------\n\n"

type jokeFilter struct {
	categories []string
	jokeType   string
	blacklist  []string
	contains   string
	idRange    *servicedef.IDRange
	amount     int
	format     string
}

// GetJoke handles GET /joke/{category}. The category can be "Any" or a comma-separated list
// of categories or aliases.
func (h *Handler) GetJoke(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJokeFilter(chi.URLParam(r, "category"), r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid parameter", err.Error())
		return
	}

	matches := h.selectJokes(filter)
	if len(matches) == 0 {
		h.writeError(w, http.StatusBadRequest, "No matching joke found",
			"No jokes were found that match your provided filter(s).")
		return
	}

	switch filter.format {
	case servicedef.FormatXML:
		h.writeXML(w, matches)
	case servicedef.FormatYAML:
		h.writeYAML(w, matches)
	case servicedef.FormatText:
		writeText(w, matches)
	default:
		writeJSON(w, http.StatusOK, jokesBody(matches))
	}
}

func parseJokeFilter(categoryParam string, r *http.Request) (jokeFilter, error) {
	f := jokeFilter{amount: 1}
	for _, c := range strings.Split(categoryParam, ",") {
		name, ok := resolveCategory(strings.TrimSpace(c))
		if !ok {
			return f, fmt.Errorf("invalid category %q", c)
		}
		if name == servicedef.CategoryAny {
			f.categories = nil
			break
		}
		f.categories = append(f.categories, name)
	}

	q := r.URL.Query()
	switch t := q.Get("type"); t {
	case "", servicedef.TypeSingle, servicedef.TypeTwoPart:
		f.jokeType = t
	default:
		return f, fmt.Errorf("invalid type %q", t)
	}

	if flags := q.Get("blacklistFlags"); flags != "" {
		for _, flag := range strings.Split(flags, ",") {
			flag = strings.ToLower(strings.TrimSpace(flag))
			if !contains(servicedef.AllFlags, flag) {
				return f, fmt.Errorf("invalid flag %q", flag)
			}
			f.blacklist = append(f.blacklist, flag)
		}
	}

	f.contains = strings.ToLower(q.Get("contains"))

	if s := q.Get("idRange"); s != "" {
		idRange, err := parseIDRange(s)
		if err != nil {
			return f, err
		}
		f.idRange = &idRange
	}

	if s := q.Get("amount"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, fmt.Errorf("invalid amount %q", s)
		}
		if n > maxAmount {
			n = maxAmount
		}
		f.amount = n
	}

	f.format = strings.ToLower(q.Get("format"))
	return f, nil
}

func resolveCategory(name string) (string, bool) {
	if c, ok := servicedef.CanonicalCategory(name); ok {
		return c, true
	}
	resolved, ok := categoryAliases[strings.ToLower(name)]
	return resolved, ok
}

func parseIDRange(s string) (servicedef.IDRange, error) {
	parts := strings.SplitN(s, "-", 2)
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return servicedef.IDRange{}, fmt.Errorf("invalid idRange %q", s)
	}
	to := from
	if len(parts) == 2 {
		to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return servicedef.IDRange{}, fmt.Errorf("invalid idRange %q", s)
		}
	}
	if from < 0 || to < from {
		return servicedef.IDRange{}, fmt.Errorf("invalid idRange %q", s)
	}
	return servicedef.IDRange{From: from, To: to}, nil
}

func (f jokeFilter) matches(j servicedef.Joke) bool {
	if len(f.categories) != 0 && !contains(f.categories, j.Category) {
		return false
	}
	if f.jokeType != "" && j.Type != f.jokeType {
		return false
	}
	for _, flag := range f.blacklist {
		if flagSet(j.Flags, flag) {
			return false
		}
	}
	if f.contains != "" {
		text := strings.ToLower(j.Joke + " " + j.Setup + " " + j.Delivery)
		if !strings.Contains(text, f.contains) {
			return false
		}
	}
	if f.idRange != nil && !f.idRange.Contains(j.ID) {
		return false
	}
	return true
}

// selectJokes returns up to filter.amount matching jokes. Successive calls start at
// different positions in the catalogue so that repeated requests vary.
func (h *Handler) selectJokes(f jokeFilter) []servicedef.Joke {
	var candidates []servicedef.Joke
	for _, j := range h.jokes {
		if f.matches(j) {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	h.lock.Lock()
	start := h.next % len(candidates)
	h.next++
	h.lock.Unlock()

	n := f.amount
	if n > len(candidates) {
		n = len(candidates)
	}
	ret := make([]servicedef.Joke, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, candidates[(start+i)%len(candidates)])
	}
	return ret
}

func jokesBody(jokes []servicedef.Joke) interface{} {
	if len(jokes) == 1 {
		return jokes[0]
	}
	return servicedef.MultipleJokes{Amount: len(jokes), Jokes: jokes}
}

func flagSet(flags servicedef.Flags, name string) bool {
	switch name {
	case servicedef.FlagNSFW:
		return flags.NSFW
	case servicedef.FlagReligious:
		return flags.Religious
	case servicedef.FlagPolitical:
		return flags.Political
	case servicedef.FlagRacist:
		return flags.Racist
	case servicedef.FlagSexist:
		return flags.Sexist
	case servicedef.FlagExplicit:
		return flags.Explicit
	}
	return false
}

type xmlFlags struct {
	NSFW      bool `xml:"nsfw"`
	Religious bool `xml:"religious"`
	Political bool `xml:"political"`
	Racist    bool `xml:"racist"`
	Sexist    bool `xml:"sexist"`
	Explicit  bool `xml:"explicit"`
}

type xmlJoke struct {
	Category string   `xml:"category"`
	Type     string   `xml:"type"`
	Joke     string   `xml:"joke,omitempty"`
	Setup    string   `xml:"setup,omitempty"`
	Delivery string   `xml:"delivery,omitempty"`
	Flags    xmlFlags `xml:"flags"`
	ID       int      `xml:"id"`
	Safe     bool     `xml:"safe"`
	Lang     string   `xml:"lang"`
}

type xmlSingle struct {
	XMLName xml.Name `xml:"data"`
	Error   bool     `xml:"error"`
	xmlJoke
}

type xmlMultiple struct {
	XMLName xml.Name  `xml:"data"`
	Error   bool      `xml:"error"`
	Amount  int       `xml:"amount"`
	Jokes   []xmlJoke `xml:"jokes>joke"`
}

func toXMLJoke(j servicedef.Joke) xmlJoke {
	return xmlJoke{
		Category: j.Category,
		Type:     j.Type,
		Joke:     j.Joke,
		Setup:    j.Setup,
		Delivery: j.Delivery,
		Flags:    xmlFlags(j.Flags),
		ID:       j.ID,
		Safe:     j.Safe,
		Lang:     j.Lang,
	}
}

func (h *Handler) writeXML(w http.ResponseWriter, jokes []servicedef.Joke) {
	var body interface{}
	if len(jokes) == 1 {
		body = xmlSingle{xmlJoke: toXMLJoke(jokes[0])}
	} else {
		m := xmlMultiple{Amount: len(jokes)}
		for _, j := range jokes {
			m.Jokes = append(m.Jokes, toXMLJoke(j))
		}
		body = m
	}
	data, err := xml.MarshalIndent(body, "", "    ")
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(data)
}

func (h *Handler) writeYAML(w http.ResponseWriter, jokes []servicedef.Joke) {
	data, err := yaml.Marshal(jokesBody(jokes))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeText(w http.ResponseWriter, jokes []servicedef.Joke) {
	texts := make([]string, 0, len(jokes))
	for _, j := range jokes {
		if j.Type == servicedef.TypeTwoPart {
			texts = append(texts, j.Setup+"\n\n"+j.Delivery)
		} else {
			texts = append(texts, j.Joke)
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strings.Join(texts, jokeSeparator)))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
