// Package render turns recommendations into markdown and terminal output.
package render

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

//go:embed templates/*.md
var templates embed.FS

var tmpl = template.Must(template.ParseFS(templates, "templates/*.md"))

// Currency is the ISO code NAVs are quoted in.
const Currency = money.INR

// Title is the heading of a recommendation table.
func Title(rec *entities.Recommendation) string {
	return fmt.Sprintf("Top %d Recommended %s Funds for %s Risk and %s Goal",
		len(rec.Funds), rec.Profile.FundType, rec.Profile.Risk, rec.Profile.Goal)
}

// NAV formats a net asset value in rupees.
func NAV(v float64) string {
	cur := money.GetCurrency(Currency)
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount := decimal.NewFromFloat(v).Mul(factor).Round(0)
	return money.New(amount.IntPart(), Currency).Display()
}

type row struct {
	Rank       int
	Name       string
	Category   entities.Category
	NAV        string
	SixMonth   string
	OneYear    string
	ThreeYear  string
	Volatility string
	Score      string
}

type recommendationView struct {
	Title   string
	Message string
	Funds   []row
}

// Markdown renders a recommendation as a markdown document.
func Markdown(rec *entities.Recommendation) (string, error) {
	view := recommendationView{
		Title:   Title(rec),
		Message: rec.Outcome.Message(),
	}
	for _, f := range rec.Funds {
		r := row{
			Rank:     f.Rank,
			Name:     escapeCell(f.Name),
			Category: f.Category,
			NAV:      NAV(f.NAV),
			Score:    fixed(f.AdjustedScore),
		}
		if s := f.Signals; s != nil {
			r.SixMonth = fixed(s.SixMonth)
			r.OneYear = fixed(s.OneYear)
			r.ThreeYear = fixed(s.ThreeYear)
			r.Volatility = fixed(s.Volatility)
		}
		view.Funds = append(view.Funds, r)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "recommendation.md", view); err != nil {
		return "", fmt.Errorf("rendering recommendation: %w", err)
	}
	return b.String(), nil
}

// ExplainModel describes the scoring model in markdown.
func ExplainModel() string {
	weights := struct {
		ThreeYear, OneYear, SixMonth, OneMonth, OneWeek, OneDay, Volatility string
	}{
		ThreeYear:  weight(usecases.WeightThreeYear),
		OneYear:    weight(usecases.WeightOneYear),
		SixMonth:   weight(usecases.WeightSixMonth),
		OneMonth:   weight(usecases.WeightOneMonth),
		OneWeek:    weight(usecases.WeightOneWeek),
		OneDay:     weight(usecases.WeightOneDay),
		Volatility: weight(usecases.VolatilityWeight),
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "model.md", weights); err != nil {
		return fmt.Sprintf("error rendering model: %v", err)
	}
	return b.String()
}

// Terminal renders markdown for a terminal of the given width.
// An empty style selects glamour's automatic style.
func Terminal(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func weight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
