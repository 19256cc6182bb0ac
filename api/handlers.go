package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/advisor"
	"github.com/etnz/nova/date"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// parseFilter reads the transaction filter from the query string.
func (s *Server) parseFilter(r *http.Request) (nova.Filter, error) {
	q := r.URL.Query()
	f := nova.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if k := q.Get("type"); k != "" {
		kind, err := nova.ParseKind(k)
		if err != nil {
			return f, err
		}
		f.Kind = kind
	}
	for name, dst := range map[string]*time.Time{"from": &f.From, "to": &f.To} {
		if v := q.Get(name); v != "" {
			d, err := date.Parse(v)
			if err != nil {
				return f, fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = d.In(s.now().Location())
		}
	}
	for name, dst := range map[string]*decimal.Decimal{"min": &f.Min, "max": &f.Max} {
		if v := q.Get(name); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return f, fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = d
		}
	}
	return f, nil
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f.Apply(s.book.Transactions()))
}

// transactionRequest is a draft with an optional date, RFC 3339 or YYYY-MM-DD.
type transactionRequest struct {
	nova.Draft
	Date string `json:"date"`
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	var when time.Time
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			d, derr := date.Parse(req.Date)
			if derr != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", req.Date))
				return
			}
			t = nova.On(d, s.now())
		}
		when = t
	}
	tx, err := s.book.Add(r.Context(), req.Draft, when)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := s.book.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("transaction %q not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	g := date.Monthly
	if v := r.URL.Query().Get("granularity"); v != "" {
		var err error
		if g, err = date.ParsePeriod(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	points := nova.Aggregate(s.book.Transactions(), g, s.lang)
	writeJSON(w, http.StatusOK, struct {
		Granularity date.Period  `json:"granularity"`
		Points      []nova.Point `json:"points"`
		Totals      nova.Totals  `json:"totals"`
	}{g, points, nova.Sum(points)})
}

func (s *Server) breakdown(w http.ResponseWriter, r *http.Request) {
	f, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, nova.Breakdown(f.Apply(s.book.Transactions())))
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nova.Stats(s.book.Transactions()))
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Snapshot().Budgets)
}

func (s *Server) budgetProgress(w http.ResponseWriter, r *http.Request) {
	ref := s.now()
	if m := r.URL.Query().Get("month"); m != "" {
		t, err := time.ParseInLocation("2006-01", m, ref.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q, want YYYY-MM", m))
			return
		}
		ref = t
	}
	state := s.book.Snapshot()
	writeJSON(w, http.StatusOK, nova.MonthlyBudgetProgress(state.Transactions, state.Budgets, ref))
}

func (s *Server) setBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit decimal.Decimal `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.book.SetBudget(r.Context(), chi.URLParam(r, "category"), req.Limit); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.book.Snapshot().Budgets)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Categories())
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	s.updateCategory(w, r, s.book.AddCategory)
}

func (s *Server) removeCategory(w http.ResponseWriter, r *http.Request) {
	s.updateCategory(w, r, s.book.RemoveCategory)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request, update func(ctx context.Context, k nova.Kind, name string) error) {
	kind, err := nova.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := update(r.Context(), kind, chi.URLParam(r, "name")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.book.Categories())
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]nova.Theme{"theme": s.book.Theme()})
}

// setTheme accepts {"theme":"light"|"dark"} or {"toggle":true}.
func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme  string `json:"theme"`
		Toggle bool   `json:"toggle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Toggle {
		if _, err := s.book.ToggleTheme(r.Context()); err != nil {
			s.fail(w, r, err)
			return
		}
	} else {
		t, err := nova.ParseTheme(req.Theme)
		if err == nil {
			err = s.book.SetTheme(r.Context(), t)
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.getTheme(w, r)
}

func (s *Server) advice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "a question is required")
		return
	}
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, advisor.ErrNoCredential.Error())
		return
	}
	answer, err := s.advisor.Ask(r.Context(), s.book.Transactions(), req.Question)
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": answer})
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "a text is required")
		return
	}
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, advisor.ErrNoCredential.Error())
		return
	}
	d, err := s.advisor.ParseDraft(r.Context(), req.Text, s.book.Categories(), s.now())
	if err != nil {
		s.advisorError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) advisorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, advisor.ErrNoCredential):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, advisor.ErrBusy):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, advisor.ErrInvalidDraft):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Failure(r.Context(), "advisor request failed", err)
		writeError(w, http.StatusBadGateway, "advisor unavailable")
	}
}
