package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/nova"
	"github.com/etnz/nova/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Library answers the function calls of a model.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a tool the model can call.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches calls to functions by name.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return &genai.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"error": fmt.Sprintf("unknown function %s", call.Name)},
		}
	}
}

// NewDeclaration lists the declarations of functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}

// Func implements a Function that answers with a JSON encoded value.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, args map[string]any) (any, error)
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }

func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: f.Decl.Name}
	v, err := f.Func(ctx, args)
	if err == nil {
		var out []byte
		if out, err = json.Marshal(v); err == nil {
			resp.Response = map[string]any{"output": string(out)}
			return resp
		}
	}
	resp.Response = map[string]any{"error": err.Error()}
	return resp
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// Tools returns the functions exposing the engine over state.
func Tools(state nova.State, lang nova.Lang, now time.Time) []*Func {
	txs := state.Transactions
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "report",
				Description: "Income, expense and balance per period, in chronological order. Periods without transactions are omitted.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"granularity": {
							Type: genai.TypeString,
							Enum: []string{"daily", "weekly", "monthly", "quarterly", "semesterly", "yearly"},
						},
					},
					Required: []string{"granularity"},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (any, error) {
				g, err := date.ParsePeriod(stringArg(args, "granularity"))
				if err != nil {
					return nil, err
				}
				points := nova.Aggregate(txs, g, lang)
				return struct {
					Points []nova.Point `json:"points"`
					Totals nova.Totals  `json:"totals"`
				}{points, nova.Sum(points)}, nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "breakdown",
				Description: "Total expense per category, largest first.",
			},
			Func: func(ctx context.Context, args map[string]any) (any, error) {
				return nova.Breakdown(txs), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "budgets",
				Description: "Spending of each category against its monthly budget limit. Percent is capped at 100.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {Type: genai.TypeString, Description: "Month as YYYY-MM, the current month by default."},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (any, error) {
				ref := now
				if m := stringArg(args, "month"); m != "" {
					t, err := time.ParseInLocation("2006-01", m, now.Location())
					if err != nil {
						return nil, fmt.Errorf("invalid month %q, want YYYY-MM", m)
					}
					ref = t
				}
				return nova.MonthlyBudgetProgress(txs, state.Budgets, ref), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "search",
				Description: "Transactions matching all the given criteria, most recent first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"text":     {Type: genai.TypeString, Description: "Case insensitive part of the description."},
						"type":     {Type: genai.TypeString, Enum: []string{"income", "expense"}},
						"category": {Type: genai.TypeString},
						"from":     {Type: genai.TypeString, Description: "First day, YYYY-MM-DD."},
						"to":       {Type: genai.TypeString, Description: "Last day, YYYY-MM-DD."},
						"min":      {Type: genai.TypeNumber},
						"max":      {Type: genai.TypeNumber},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (any, error) {
				f := nova.Filter{
					Search:   stringArg(args, "text"),
					Kind:     nova.Kind(stringArg(args, "type")),
					Category: stringArg(args, "category"),
				}
				for name, dst := range map[string]*time.Time{"from": &f.From, "to": &f.To} {
					if s := stringArg(args, name); s != "" {
						d, err := date.Parse(s)
						if err != nil {
							return nil, err
						}
						*dst = d.In(now.Location())
					}
				}
				for name, dst := range map[string]*decimal.Decimal{"min": &f.Min, "max": &f.Max} {
					if x, ok := args[name].(float64); ok {
						*dst = decimal.NewFromFloat(x)
					}
				}
				return f.Apply(txs), nil
			},
		},
	}
}
