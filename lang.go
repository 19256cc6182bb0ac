package nova

import (
	"fmt"
	"strings"
	"time"
)

// Lang selects the language of the human readable labels.
type Lang string

const (
	French  Lang = "fr"
	English Lang = "en"
)

// ParseLang parses a language code such as "fr" or "en-US".
func ParseLang(s string) (Lang, error) {
	code, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")
	switch Lang(code) {
	case French:
		return French, nil
	case English:
		return English, nil
	default:
		return "", fmt.Errorf("unsupported language %q, want fr or en", s)
	}
}

var shortMonths = map[Lang][12]string{
	French:  {"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	English: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// ShortMonth returns the abbreviated month name, French by default.
func (l Lang) ShortMonth(m time.Month) string {
	names, ok := shortMonths[l]
	if !ok {
		names = shortMonths[French]
	}
	return names[m-1]
}

func (l Lang) week(n int) string {
	if l == English {
		return fmt.Sprintf("Week %d", n)
	}
	return fmt.Sprintf("Sem %d", n)
}

func (l Lang) quarter(q, year int) string {
	if l == English {
		return fmt.Sprintf("Q%d %d", q, year)
	}
	return fmt.Sprintf("T%d %d", q, year)
}

func (l Lang) semester(s, year int) string {
	if l == English {
		return fmt.Sprintf("H%d %d", s, year)
	}
	return fmt.Sprintf("S%d %d", s, year)
}
