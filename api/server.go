// Package api serves a Book over a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/advisor"
	"github.com/etnz/nova/log"
	"github.com/go-chi/chi/v5"
)

// Server holds the dependencies of the handlers.
type Server struct {
	book    *nova.Book
	advisor *advisor.Advisor
	lang    nova.Lang
	log     *log.Logger
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger, tagged with the api component.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.log = l.WithComponent(log.ComponentAPI) }
}

// WithLang sets the language of period labels.
func WithLang(l nova.Lang) Option { return func(s *Server) { s.lang = l } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

// New returns a Server over book. A nil adv disables the advisor routes.
func New(book *nova.Book, adv *advisor.Advisor, opts ...Option) *Server {
	s := &Server{book: book, advisor: adv, lang: nova.French, log: log.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP handler of the API.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/transactions", s.listTransactions)
		r.Post("/transactions", s.createTransaction)
		r.Delete("/transactions/{id}", s.deleteTransaction)

		r.Get("/reports", s.report)
		r.Get("/breakdown", s.breakdown)
		r.Get("/stats", s.stats)

		r.Get("/budgets", s.listBudgets)
		r.Get("/budgets/progress", s.budgetProgress)
		r.Put("/budgets/{category}", s.setBudget)

		r.Get("/categories", s.listCategories)
		r.Post("/categories/{kind}/{name}", s.addCategory)
		r.Delete("/categories/{kind}/{name}", s.removeCategory)

		r.Get("/theme", s.getTheme)
		r.Put("/theme", s.setTheme)

		r.Post("/advisor/advice", s.advice)
		r.Post("/advisor/parse", s.parse)
	})
	return r
}

// statusRecorder remembers the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.InfoContext(r.Context(), "request",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorBody is the payload of every error response.
type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// validationErrors are caused by the request, not the server.
var validationErrors = []error{
	nova.ErrInvalidAmount,
	nova.ErrInvalidKind,
	nova.ErrNegativeBudget,
	nova.ErrEmptyCategory,
	nova.ErrInvalidTheme,
	nova.ErrDuplicateID,
}

// fail maps err to a status code, logging server side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	s.log.Failure(r.Context(), "request failed", err, log.FieldPath, r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error")
}
