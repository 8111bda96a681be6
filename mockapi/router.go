// Package mockapi is an in-process imitation of the JokeAPI HTTP surface. It answers with
// the same response shapes and status codes as the real service, using a small fixed
// catalogue of jokes, so that the suite can run without network access.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jokeapi-tests/jokeapi-contract-tests/servicedef"
)

// Handler holds the mock's state.
type Handler struct {
	jokes []servicedef.Joke
	now   func() time.Time

	lock sync.Mutex
	next int
}

// Option configures a Handler.
type Option func(*Handler)

// WithJokes replaces the built-in catalogue.
func WithJokes(jokes []servicedef.Joke) Option {
	return func(h *Handler) { h.jokes = jokes }
}

// WithClock sets the time source used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler returns the mock API as an http.Handler.
func NewHandler(options ...Option) http.Handler {
	h := &Handler{jokes: catalogue, now: time.Now}
	for _, o := range options {
		o(h)
	}
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	h.Routes(r)
	return r
}

// Routes mounts the JokeAPI routes.
func (h *Handler) Routes(r chi.Router) {
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/ping", h.Ping)
	r.Get("/info", h.Info)
	r.Get("/categories", h.Categories)
	r.Get("/flags", h.Flags)
	r.Get("/formats", h.Formats)
	r.Get("/endpoints", h.Endpoints)
	r.Get("/languages", h.Languages)
	r.Get("/langcode/{name}", h.LangCode)

	r.Get("/joke/{category}", h.GetJoke)

	r.Post("/submit", h.Submit)
}
