// Package report renders classification, equity and census results for the
// terminal and as CSV.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokerequity/equity"
	"github.com/lox/pokerequity/heatmap"
	"github.com/lox/pokerequity/internal/enumerate"
	"github.com/lox/pokerequity/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Printer writes styled, tab aligned tables.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) table() *tabwriter.Writer {
	return tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
}

// Classification prints a hand and its category.
func (p *Printer) Classification(cards []poker.Card, class poker.RankClass) {
	fmt.Fprintf(p.out, "%s  %s\n", handStyle.Render(FormatCards(cards)), categoryStyle.Render(class.String()))
}

// Board prints the board heading when there is one.
func (p *Printer) Board(board []poker.Card) {
	if len(board) == 0 {
		return
	}
	fmt.Fprintf(p.out, "%s\n%s\n\n", headerStyle.Render("board"), FormatCards(board))
}

// Matchup prints a two-sided result.
func (p *Printer) Matchup(hero, villain string, res equity.Result, elapsed time.Duration) {
	w := p.table()
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		handStyle.Render(hero),
		winStyle.Render(pct(res.HeroPct)),
		tieStyle.Render(pct(res.TiePct)),
		fmt.Sprintf("%.1f%%", res.Equity()*100))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		handStyle.Render(villain),
		winStyle.Render(pct(res.VillainPct)),
		tieStyle.Render(pct(res.TiePct)),
		fmt.Sprintf("%.1f%%", (1-res.Equity())*100))
	_ = w.Flush()

	lower, upper := res.ConfidenceInterval()
	p.footer(res.Trials, elapsed, lower, upper)
}

// Field prints a hand against a random opponent.
func (p *Printer) Field(hero string, res equity.FieldResult, elapsed time.Duration) {
	w := p.table()
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("lose"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		handStyle.Render(hero),
		winStyle.Render(pct(res.WinPct)),
		loseStyle.Render(pct(res.LosePct)),
		tieStyle.Render(pct(res.TiePct)),
		fmt.Sprintf("%.1f%%", res.Equity()*100))
	_ = w.Flush()

	lower, upper := res.ConfidenceInterval()
	p.footer(res.Trials, elapsed, lower, upper)
}

func (p *Printer) footer(trials int, elapsed time.Duration, lower, upper float64) {
	fmt.Fprintf(p.out, "\n%s\n", dimStyle.Render(fmt.Sprintf(
		"%d trials in %v, 95%% interval %.1f%%-%.1f%%",
		trials, elapsed.Truncate(time.Millisecond), lower*100, upper*100)))
}

// Census prints category counts strongest first.
func (p *Printer) Census(totals enumerate.Totals, elapsed time.Duration) {
	w := p.table()
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("category"),
		headerStyle.Render("count"),
		headerStyle.Render("percent"))
	classes := poker.RankClasses()
	for i := len(classes) - 1; i >= 0; i-- {
		rc := classes[i]
		fmt.Fprintf(w, "%s\t%d\t%s\n",
			categoryStyle.Render(rc.String()),
			totals.Count(rc),
			fmt.Sprintf("%.6f%%", totals.Percent(rc)))
	}
	_ = w.Flush()
	fmt.Fprintf(p.out, "\n%s\n", dimStyle.Render(fmt.Sprintf("%d hands in %v", totals.Hands, elapsed.Truncate(time.Millisecond))))
}

// Strength prints the illustrative grid with aces in the top left corner.
func (p *Printer) Strength(grid [heatmap.Size][heatmap.Size]float64) {
	w := p.table()
	for row := heatmap.Size - 1; row >= 0; row-- {
		cells := make([]string, 0, heatmap.Size)
		for col := heatmap.Size - 1; col >= 0; col-- {
			cells = append(cells, fmt.Sprintf("%.3f", grid[row][col]))
		}
		fmt.Fprintf(w, "%s\t%s\n", headerStyle.Render(poker.Rank(row).String()), strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

// Combos prints the combo chart.
func (p *Printer) Combos(grid [heatmap.Size][heatmap.Size]heatmap.Cell) {
	w := p.table()
	for _, row := range grid {
		cells := make([]string, 0, heatmap.Size)
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%s %d", cell.Label, cell.Combos))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

// FormatCards joins cards with spaces.
func FormatCards(cards []poker.Card) string {
	parts := make([]string, 0, len(cards))
	for _, card := range cards {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
