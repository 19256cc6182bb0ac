package advisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/nova"
	"google.golang.org/genai"
)

// maxCalls bounds the function calls answered for a single question.
const maxCalls = 8

// Session is an interactive conversation about the user's finances.
type Session struct {
	a       *Advisor
	w       io.Writer
	r       *bufio.Reader
	chat    Chat
	library Library
	config  *genai.GenerateContentConfig

	// Render formats the answers before printing, they are markdown.
	Render func(string) string
}

// NewSession prepares a conversation over a snapshot of state.
// The chat is created on the first question.
func (a *Advisor) NewSession(w io.Writer, r io.Reader, state nova.State) (*Session, error) {
	if a.model == nil {
		return nil, ErrNoCredential
	}
	now := a.now()
	system, err := a.prompt("session", struct{ Today, Currency, Summary string }{
		Today:    now.Format(time.DateOnly),
		Currency: a.currencyName(),
		Summary:  a.Summary(state.Transactions),
	})
	if err != nil {
		return nil, err
	}
	tools := Tools(state, a.lang, now)
	return &Session{
		a:       a,
		w:       w,
		r:       bufio.NewReader(r),
		library: NewLibrary(tools),
		config: &genai.GenerateContentConfig{
			Tools:             []*genai.Tool{{FunctionDeclarations: NewDeclaration(tools)}},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
		Render: func(s string) string { return s },
	}, nil
}

// Ask sends one question and returns the answer, answering the model's
// function calls on the way.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	ctx, done, err := s.a.begin(ctx)
	if err != nil {
		return "", err
	}
	defer done()

	if s.chat == nil {
		if s.chat, err = s.a.model.NewChat(ctx, s.config); err != nil {
			return "", fmt.Errorf("failed to start chat: %w", err)
		}
	}

	parts := []*genai.Part{{Text: question}}
	for range maxCalls {
		resp, err := s.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", ErrEmptyResponse
		}
		parts = nil
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.FunctionCall != nil {
				parts = append(parts, &genai.Part{FunctionResponse: s.library(ctx, p.FunctionCall)})
			}
		}
		if len(parts) == 0 {
			text := responseText(resp)
			if text == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}
	}
	return "", fmt.Errorf("no answer after %d function calls", maxCalls)
}

const prompt = "nova> "

// Run reads questions until "bye" or the end of the input.
//
// prompts are asked first, as if typed by the user. Failed questions are
// reported and the session goes on, unless ctx is done.
func (s *Session) Run(ctx context.Context, prompts ...string) error {
	fmt.Fprintln(s.w, s.a.messages().Greeting)

	for {
		fmt.Fprint(s.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(s.w, input)
		} else {
			var err error
			input, err = s.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(input) == "") {
				if err == io.EOF {
					fmt.Fprintln(s.w)
					return nil // Ctrl+D
				}
				return err
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
		}

		if input == "bye" {
			return nil
		}

		answer, err := s.Ask(ctx, input)
		switch {
		case err == nil:
			fmt.Fprintln(s.w, s.Render(answer))
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, ErrEmptyResponse):
			fmt.Fprintln(s.w, s.a.messages().NoAdvice)
		default:
			s.a.log.Failure(ctx, "session error", err)
			fmt.Fprintln(s.w, s.a.messages().Apology)
		}
	}
}
