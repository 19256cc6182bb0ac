package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/advisor"
	"github.com/etnz/nova/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var now = time.Date(2025, time.March, 20, 9, 30, 0, 0, time.UTC)

// fakeModel answers every request with answer.
type fakeModel struct{ answer string }

func (f fakeModel) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: f.answer}}},
	}}}, nil
}

func (f fakeModel) NewChat(ctx context.Context, config *genai.GenerateContentConfig) (advisor.Chat, error) {
	return nil, fmt.Errorf("not supported")
}

// newTestServer returns a router over a book seeded with the demo transactions.
func newTestServer(t *testing.T, adv *advisor.Advisor) (http.Handler, *nova.Book) {
	t.Helper()
	n := 0
	book, err := nova.OpenBook(context.Background(), storage.NewMemory(),
		nova.WithClock(func() time.Time { return now }),
		nova.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	require.NoError(t, err)
	require.NoError(t, book.Import(context.Background(), nova.Seed(now)))
	return New(book, adv, WithClock(func() time.Time { return now })).Router(), book
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestTransactions(t *testing.T) {
	h, book := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/transactions?type=expense&min=2000", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var txs []nova.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, "demo-3", txs[0].ID)
	assert.Equal(t, "demo-2", txs[1].ID)

	rr = do(t, h, http.MethodPost, "/api/transactions",
		`{"amount": 1500, "description": "Déjeuner", "type": "expense", "category": "Alimentation", "date": "2025-03-18"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created nova.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "2025-03-18T09:30:00Z", created.Date.Format(time.RFC3339))
	assert.Equal(t, "id-1", book.Transactions()[0].ID)

	rr = do(t, h, http.MethodPost, "/api/transactions", `{"amount": -5, "description": "x", "type": "expense", "category": "Autre"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/transactions", `{"amount": 5, "type": "transfer"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	rr = do(t, h, http.MethodPost, "/api/transactions", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = do(t, h, http.MethodGet, "/api/transactions?from=yesterday-ish", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/transactions/demo-3", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, h, http.MethodDelete, "/api/transactions/demo-3", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, book.Transactions(), 5)
}

func TestReports(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodGet, "/api/reports?granularity=yearly", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"granularity": "yearly",
		"points": [{"key":"2025","name":"2025","income":75000,"expense":34700,"balance":40300,"sortTime":1735689600000}],
		"totals": {"income":75000,"expense":34700,"balance":40300}
	}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/reports?granularity=hourly", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/breakdown", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[
		{"name":"Logement","value":25000},
		{"name":"Alimentation","value":8500},
		{"name":"Factures","value":1200}
	]`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"income":75000,"expense":34700,"balance":40300}`, rr.Body.String())
}

func TestBudgets(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := do(t, h, http.MethodPut, "/api/budgets/Alimentation", `{"limit": 10000}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"Alimentation":10000}`, rr.Body.String())

	rr = do(t, h, http.MethodPut, "/api/budgets/Alimentation", `{"limit": -1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/budgets/progress", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var progress []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &progress))
	require.NotEmpty(t, progress)
	assert.Equal(t, "Alimentation", progress[0]["category"])
	assert.EqualValues(t, 85, progress[0]["percent"])

	rr = do(t, h, http.MethodGet, "/api/budgets/progress?month=2024-01", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"category":"Alimentation","spent":0,"limit":10000,"percent":0}]`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/budgets/progress?month=janvier", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCategoriesAndTheme(t *testing.T) {
	h, book := newTestServer(t, nil)

	rr := do(t, h, http.MethodPost, "/api/categories/expense/Voyage", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, book.Categories().Has(nova.Expense, "Voyage"))

	rr = do(t, h, http.MethodDelete, "/api/categories/expense/Voyage", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, book.Categories().Has(nova.Expense, "Voyage"))

	rr = do(t, h, http.MethodPost, "/api/categories/transfer/Voyage", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/theme", "")
	assert.JSONEq(t, `{"theme":"light"}`, rr.Body.String())
	rr = do(t, h, http.MethodPut, "/api/theme", `{"toggle": true}`)
	assert.JSONEq(t, `{"theme":"dark"}`, rr.Body.String())
	rr = do(t, h, http.MethodPut, "/api/theme", `{"theme": "light"}`)
	assert.JSONEq(t, `{"theme":"light"}`, rr.Body.String())
	rr = do(t, h, http.MethodPut, "/api/theme", `{"theme": "sepia"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestAdvisorRoutes(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := do(t, h, http.MethodPost, "/api/advisor/advice", `{"question": "?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	h, _ = newTestServer(t, advisor.NewWithModel(nil))
	rr = do(t, h, http.MethodPost, "/api/advisor/parse", `{"text": "café 200"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	h, _ = newTestServer(t, advisor.NewWithModel(fakeModel{answer: "Épargnez 10% 🚀"}))
	rr = do(t, h, http.MethodPost, "/api/advisor/advice", `{"question": "Comment économiser ?"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"advice":"Épargnez 10% 🚀"}`, rr.Body.String())

	rr = do(t, h, http.MethodPost, "/api/advisor/advice", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	h, _ = newTestServer(t, advisor.NewWithModel(fakeModel{
		answer: `{"amount": 200, "description": "Café", "type": "expense", "category": "Alimentation"}`,
	}))
	rr = do(t, h, http.MethodPost, "/api/advisor/parse", `{"text": "café 200"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"amount":200,"description":"Café","type":"expense","category":"Alimentation"}`, rr.Body.String())

	h, _ = newTestServer(t, advisor.NewWithModel(fakeModel{answer: `pas du json`}))
	rr = do(t, h, http.MethodPost, "/api/advisor/parse", `{"text": "café 200"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
