// Package renderer formats nova reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/nova"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// Renderer turns engine results into markdown documents.
type Renderer struct {
	lang     nova.Lang
	currency *money.Currency
	format   *money.Formatter
	l        labels
}

// New returns a Renderer writing labels in lang and amounts in the ISO
// currency code. Unknown codes fall back to the Algerian dinar.
func New(lang nova.Lang, currency string) *Renderer {
	l, ok := catalog[lang]
	if !ok {
		lang, l = nova.French, catalog[nova.French]
	}
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		cur = money.GetCurrency(money.DZD)
	}
	format := cur.Formatter()
	if cur.Code == money.DZD {
		// local usage: "60 000,00 DA"
		format = money.NewFormatter(cur.Fraction, ",", " ", "DA", "1 $")
	}
	return &Renderer{lang: lang, currency: cur, format: format, l: l}
}

// Money formats an amount in the renderer's currency.
func (r *Renderer) Money(d decimal.Decimal) string {
	return r.format.Format(d.Shift(int32(r.currency.Fraction)).Round(0).IntPart())
}

// Signed formats an amount with an explicit sign.
func (r *Renderer) Signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + r.Money(d)
	}
	return r.Money(d)
}

// Percent formats a percentage with up to two decimals.
func Percent(d decimal.Decimal) string { return d.Round(2).String() + "%" }

var emojis = map[nova.Icon]string{
	nova.IconWallet:     "👛",
	nova.IconBriefcase:  "💼",
	nova.IconTrendingUp: "📈",
	nova.IconGift:       "🎁",
	nova.IconHome:       "🏠",
	nova.IconUtensils:   "🍽️",
	nova.IconCar:        "🚗",
	nova.IconMovie:      "🎬",
	nova.IconHealth:     "🩺",
	nova.IconShopping:   "🛍️",
	nova.IconReceipt:    "🧾",
	nova.IconUtility:    "⚡",
	nova.IconShield:     "🛡️",
	nova.IconEducation:  "🎓",
	nova.IconPlane:      "✈️",
	nova.IconCoffee:     "☕",
	nova.IconTech:       "📱",
	nova.IconMusic:      "🎵",
	nova.IconBook:       "📚",
	nova.IconMore:       "➕",
	nova.IconTag:        "🏷️",
}

// Icon returns the emoji of a category name.
func Icon(category string) string { return emojis[nova.Classify(category)] }

// kind returns the label of k.
func (r *Renderer) kind(k nova.Kind) string {
	if k == nova.Income {
		return r.l.Income
	}
	return r.l.Expense
}

// renderTemplate renders an embedded template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, funcs template.FuncMap, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
