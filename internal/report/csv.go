package report

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/lox/pokerequity/internal/enumerate"
	"github.com/lox/pokerequity/poker"
)

// WriteTotalsCSV writes one row per category, most common first.
func WriteTotalsCSV(w io.Writer, totals enumerate.Totals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Count", "ProbabilityPercent"}); err != nil {
		return err
	}

	classes := poker.RankClasses()
	slices.SortStableFunc(classes, func(a, b poker.RankClass) int {
		return cmp.Compare(totals.Count(b), totals.Count(a))
	})
	for _, rc := range classes {
		row := []string{
			rc.String(),
			strconv.Itoa(totals.Count(rc)),
			fmt.Sprintf("%.6f", totals.Percent(rc)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HandWriter writes one CSV row per enumerated hand, tagged with its
// category's share of all hands.
type HandWriter struct {
	cw     *csv.Writer
	totals enumerate.Totals
	row    []string
}

// NewHandWriter writes the header and returns a writer whose Visit method can
// be passed to enumerate.Census. totals supplies the per-category percentages.
func NewHandWriter(w io.Writer, totals enumerate.Totals) (*HandWriter, error) {
	hw := &HandWriter{
		cw:     csv.NewWriter(w),
		totals: totals,
		row:    make([]string, 8),
	}
	header := []string{"Card1", "Card2", "Card3", "Card4", "Card5", "HandString", "Category", "CategoryProbabilityPercent"}
	if err := hw.cw.Write(header); err != nil {
		return nil, err
	}
	return hw, nil
}

// Visit writes one hand.
func (hw *HandWriter) Visit(hand [5]poker.Card, class poker.RankClass) error {
	for i, c := range hand {
		hw.row[i] = c.String()
	}
	hw.row[5] = FormatCards(hand[:])
	hw.row[6] = class.String()
	hw.row[7] = fmt.Sprintf("%.6f", hw.totals.Percent(class))
	return hw.cw.Write(hw.row)
}

// Flush flushes buffered rows and reports any write error.
func (hw *HandWriter) Flush() error {
	hw.cw.Flush()
	return hw.cw.Error()
}
