package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/nova"
)

// renderMarkdown formats md for the terminal. An empty theme lets glamour
// detect the terminal background.
var renderMarkdown = func(theme nova.Theme, md string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(100)}
	if theme == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(string(theme)))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// printMarkdown prints md, raw if it cannot be rendered.
func printMarkdown(theme nova.Theme, md string) {
	out, err := renderMarkdown(theme, md)
	if err != nil {
		out = md
	}
	fmt.Fprint(stdout, out)
}
