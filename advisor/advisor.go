// Package advisor talks to a large language model to give financial advice
// and to turn free text into transaction drafts.
//
// Nothing the advisor returns is ever stored: drafts must be accepted
// explicitly by the caller.
package advisor

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/config"
	"github.com/etnz/nova/log"
	"golang.org/x/sync/semaphore"
	"google.golang.org/genai"
)

var (
	// ErrNoCredential is returned when no API key is configured. No request is made.
	ErrNoCredential = errors.New("advisor API key is missing")
	// ErrBusy is returned when another request of the same Advisor is in flight.
	ErrBusy = errors.New("advisor is busy with another request")
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("empty response from the model")
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

var prompts = template.Must(template.ParseFS(promptFiles, "prompts/*.tmpl"))

// messages are the fixed user facing strings, per language.
type messages struct {
	MissingKey string
	NoAdvice   string
	Apology    string
	Greeting   string
	Income     string // summary marker of income lines
	Expense    string // summary marker of expense lines
}

var catalog = map[nova.Lang]messages{
	nova.French: {
		MissingKey: "La clé API est manquante. Veuillez la configurer.",
		NoAdvice:   "Je n'ai pas pu générer de conseil pour le moment.",
		Apology:    "J'ai rencontré une erreur lors de l'analyse de vos finances. Veuillez réessayer plus tard.",
		Greeting:   "Bonjour ! Je suis Nova, votre architecte financier IA. J'ai accès à vos données. Interrogez-moi sur vos habitudes de dépenses, comment économiser, ou demandez une prévision financière ! Tapez 'bye' pour quitter.",
		Income:     "REVENU",
		Expense:    "DÉPENSE",
	},
	nova.English: {
		MissingKey: "The API key is missing. Please configure it.",
		NoAdvice:   "I could not generate any advice for now.",
		Apology:    "I ran into an error while analyzing your finances. Please try again later.",
		Greeting:   "Hello! I am Nova, your AI financial architect. I have access to your data. Ask me about your spending habits, how to save, or for a financial forecast! Type 'bye' to exit.",
		Income:     "INCOME",
		Expense:    "EXPENSE",
	},
}

// Advisor sends prompts built from the user's data to a Model.
//
// An Advisor runs at most one request at a time; concurrent calls fail with ErrBusy.
type Advisor struct {
	model    Model // nil without credential
	lang     nova.Lang
	currency string
	timeout  time.Duration
	now      func() time.Time
	sem      *semaphore.Weighted
	log      *log.Logger
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLang sets the language of prompts and messages, French by default.
func WithLang(l nova.Lang) Option { return func(a *Advisor) { a.lang = l } }

// WithCurrency sets the ISO code of the amounts, DZD by default.
func WithCurrency(code string) Option { return func(a *Advisor) { a.currency = code } }

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option { return func(a *Advisor) { a.timeout = d } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Advisor) { a.log = l.WithComponent(log.ComponentAdvisor) }
}

// WithClock sets the clock used for the current date in prompts.
func WithClock(now func() time.Time) Option { return func(a *Advisor) { a.now = now } }

// NewWithModel returns an Advisor using m. A nil m behaves as a missing credential.
func NewWithModel(m Model, opts ...Option) *Advisor {
	a := &Advisor{
		model:    m,
		lang:     nova.French,
		currency: "DZD",
		now:      time.Now,
		sem:      semaphore.NewWeighted(1),
		log:      log.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if _, ok := catalog[a.lang]; !ok {
		a.lang = nova.French
	}
	return a
}

// New returns an Advisor for cfg. Without an API key the Advisor is still
// usable but every request fails with ErrNoCredential.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Advisor, error) {
	lang, err := nova.ParseLang(cfg.Lang)
	if err != nil {
		return nil, err
	}
	base := []Option{WithLang(lang), WithCurrency(cfg.Currency), WithTimeout(cfg.AdvisorTimeout)}
	if !cfg.HasCredential() {
		return NewWithModel(nil, append(base, opts...)...), nil
	}
	m, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return NewWithModel(m, append(base, opts...)...), nil
}

// Available reports whether a credential is configured.
func (a *Advisor) Available() bool { return a.model != nil }

// Lang returns the language of the advisor.
func (a *Advisor) Lang() nova.Lang { return a.lang }

func (a *Advisor) messages() messages { return catalog[a.lang] }

// symbol returns how amounts are suffixed in prompts.
func (a *Advisor) symbol() string {
	if a.currency == "DZD" {
		return "DA"
	}
	return a.currency
}

// currencyName describes the currency in prompts.
func (a *Advisor) currencyName() string {
	if a.currency == "DZD" {
		if a.lang == nova.English {
			return "Algerian Dinars DA"
		}
		return "Dinars Algériens DA"
	}
	return a.currency
}

// begin takes the single request slot and applies the timeout.
// The returned function releases both.
func (a *Advisor) begin(ctx context.Context) (context.Context, func(), error) {
	if a.model == nil {
		return nil, nil, ErrNoCredential
	}
	if !a.sem.TryAcquire(1) {
		return nil, nil, ErrBusy
	}
	cancel := context.CancelFunc(func() {})
	if a.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
	}
	return ctx, func() { cancel(); a.sem.Release(1) }, nil
}

// Summary writes one line per transaction:
//
//	2025-03-01: REVENU - 60000 DA (Salaire) - Salaire Mensuel
func (a *Advisor) Summary(txs []nova.Transaction) string {
	msg := a.messages()
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		marker := msg.Expense
		if t.Kind == nova.Income {
			marker = msg.Income
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s %s (%s) - %s",
			t.Date.Format(time.DateOnly), marker, t.Amount.String(), a.symbol(), t.Category, t.Description))
	}
	return strings.Join(lines, "\n")
}

func (a *Advisor) prompt(name string, data any) (string, error) {
	var b bytes.Buffer
	if err := prompts.ExecuteTemplate(&b, name+"."+string(a.lang)+".tmpl", data); err != nil {
		return "", fmt.Errorf("rendering prompt %q: %w", name, err)
	}
	return b.String(), nil
}

// Ask sends the transactions and the question to the model and returns its answer.
func (a *Advisor) Ask(ctx context.Context, txs []nova.Transaction, question string) (string, error) {
	ctx, done, err := a.begin(ctx)
	if err != nil {
		return "", err
	}
	defer done()

	prompt, err := a.prompt("advice", struct{ Currency, Summary, Question string }{
		Currency: a.currencyName(),
		Summary:  a.Summary(txs),
		Question: question,
	})
	if err != nil {
		return "", err
	}

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("advice request failed: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Advice is like Ask but always returns a message for the user: the answer,
// or a fixed explanation when it could not be obtained.
func (a *Advisor) Advice(ctx context.Context, txs []nova.Transaction, question string) string {
	text, err := a.Ask(ctx, txs, question)
	msg := a.messages()
	switch {
	case err == nil:
		return text
	case errors.Is(err, ErrNoCredential):
		return msg.MissingKey
	case errors.Is(err, ErrEmptyResponse):
		return msg.NoAdvice
	default:
		a.log.Failure(ctx, "advisor error", err, log.FieldOperation, log.OpAdvice)
		return msg.Apology
	}
}

// StartAdvice runs Advice in the background.
func (a *Advisor) StartAdvice(ctx context.Context, txs []nova.Transaction, question string) *Task[string] {
	return Go(ctx, func(ctx context.Context) (string, error) {
		return a.Advice(ctx, txs, question), ctx.Err()
	})
}

// responseText returns the text of the first candidate, trimmed.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
