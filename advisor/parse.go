package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/nova"
	"github.com/etnz/nova/log"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// ErrInvalidDraft is returned when the model's answer does not describe a valid draft.
var ErrInvalidDraft = errors.New("model answer is not a valid transaction")

// draftSchema is the JSON object the model must answer with.
var draftSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"amount":      {Type: genai.TypeNumber},
		"description": {Type: genai.TypeString},
		"type":        {Type: genai.TypeString, Enum: []string{string(nova.Income), string(nova.Expense)}},
		"category":    {Type: genai.TypeString},
	},
	Required: []string{"amount", "description", "type", "category"},
}

// ParseDraft asks the model to read text as a transaction.
//
// The valid categories are taken from categories and now is given as the
// current date so that relative expressions can be understood.
func (a *Advisor) ParseDraft(ctx context.Context, text string, categories nova.Categories, now time.Time) (nova.Draft, error) {
	ctx, done, err := a.begin(ctx)
	if err != nil {
		return nova.Draft{}, err
	}
	defer done()

	prompt, err := a.prompt("parse", struct{ Now, Income, Expense, Input string }{
		Now:     now.Format(time.RFC3339),
		Income:  strings.Join(categories.Income, ", "),
		Expense: strings.Join(categories.Expense, ", "),
		Input:   text,
	})
	if err != nil {
		return nova.Draft{}, err
	}

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   draftSchema,
	})
	if err != nil {
		return nova.Draft{}, fmt.Errorf("parse request failed: %w", err)
	}
	answer := responseText(resp)
	if answer == "" {
		return nova.Draft{}, ErrEmptyResponse
	}
	return decodeDraft(answer)
}

// Parse is like ParseDraft but only reports whether a draft could be obtained.
// Failures are logged.
func (a *Advisor) Parse(ctx context.Context, text string, categories nova.Categories, now time.Time) (nova.Draft, bool) {
	d, err := a.ParseDraft(ctx, text, categories, now)
	if err != nil {
		if !errors.Is(err, ErrNoCredential) {
			a.log.Failure(ctx, "parser error", err, log.FieldOperation, log.OpParse)
		}
		return nova.Draft{}, false
	}
	return d, true
}

// StartParse runs ParseDraft in the background.
func (a *Advisor) StartParse(ctx context.Context, text string, categories nova.Categories, now time.Time) *Task[nova.Draft] {
	return Go(ctx, func(ctx context.Context) (nova.Draft, error) {
		return a.ParseDraft(ctx, text, categories, now)
	})
}

// stripFences removes markdown code fences the model sometimes wraps JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeDraft extracts and checks the draft fields of a JSON answer.
func decodeDraft(answer string) (nova.Draft, error) {
	var v any
	if err := json.Unmarshal([]byte(stripFences(answer)), &v); err != nil {
		return nova.Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	amount, err := jsonpath.Get("$.amount", v)
	if err != nil {
		return nova.Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	var d nova.Draft
	switch x := amount.(type) {
	case float64:
		d.Amount = decimal.NewFromFloat(x)
	case string:
		if d.Amount, err = decimal.NewFromString(x); err != nil {
			return nova.Draft{}, fmt.Errorf("%w: amount %q: %v", ErrInvalidDraft, x, err)
		}
	default:
		return nova.Draft{}, fmt.Errorf("%w: amount has type %T", ErrInvalidDraft, amount)
	}

	strs := map[string]*string{"$.description": &d.Description, "$.category": &d.Category}
	for path, dst := range strs {
		value, err := jsonpath.Get(path, v)
		if err != nil {
			return nova.Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
		}
		s, ok := value.(string)
		if !ok {
			return nova.Draft{}, fmt.Errorf("%w: %s has type %T", ErrInvalidDraft, path, value)
		}
		*dst = strings.TrimSpace(s)
	}

	kind, err := jsonpath.Get("$.type", v)
	if err != nil {
		return nova.Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	k, _ := kind.(string)
	d.Kind = nova.Kind(k)

	if err := d.Validate(); err != nil {
		return nova.Draft{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return d, nil
}
