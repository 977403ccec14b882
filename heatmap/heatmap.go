// Package heatmap builds static 13x13 grids over the 169 starting hand classes.
//
// The strength grid is a rough illustration for display. It is not computed
// from simulations and says nothing about real equities.
package heatmap

import (
	"math"

	"github.com/lox/pokerequity/poker"
)

// Size is the number of rows and columns in a grid.
const Size = poker.NumRanks

// Strength returns an illustrative strength grid indexed by rank (0 is the
// deuce, 12 the ace). Cells above the diagonal are suited, cells below are
// offsuit and the diagonal holds pairs. Values are scaled to [0,1] and rounded
// to three decimals.
func Strength() [Size][Size]float64 {
	var raw [Size][Size]float64
	lo, hi := math.Inf(1), math.Inf(-1)
	for row := range Size {
		for col := range Size {
			v := rawStrength(row, col)
			raw[row][col] = v
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	var grid [Size][Size]float64
	for row := range Size {
		for col := range Size {
			grid[row][col] = round3((raw[row][col] - lo) / (hi - lo))
		}
	}
	return grid
}

// rawStrength scores a class by its top card, half its second card, a bonus
// for pairs and suitedness, and a penalty for gaps that hurt straights.
func rawStrength(row, col int) float64 {
	if row == col {
		return 2*float64(row) + 14
	}
	high, low := max(row, col), min(row, col)
	v := float64(high) + 0.6*float64(low)
	if row < col {
		v += 2
	}
	gap := high - low - 1
	return v - 0.5*float64(min(gap, 4))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Cell describes one starting hand class on the combo chart.
type Cell struct {
	Label   string  `json:"label"`
	Combos  int     `json:"combos"`
	Percent float64 `json:"percent"`
}

// Combos returns the classic combo chart with aces in the first row and
// column: above the diagonal suited, below it offsuit. Percent is the share
// of the 1326 holdings, rounded to three decimals.
func Combos() [Size][Size]Cell {
	var grid [Size][Size]Cell
	for row := range Size {
		for col := range Size {
			sh := ClassAt(row, col)
			grid[row][col] = Cell{
				Label:   sh.String(),
				Combos:  sh.Combos(),
				Percent: round3(float64(sh.Combos()) * 100 / poker.TotalHoldings),
			}
		}
	}
	return grid
}

// ClassAt returns the starting hand class for an ace-first chart position.
func ClassAt(row, col int) poker.StartingHand {
	r1, r2 := poker.Ace-poker.Rank(row), poker.Ace-poker.Rank(col)
	switch {
	case row == col:
		return poker.StartingHand{High: r1, Low: r1}
	case row < col:
		return poker.StartingHand{High: r1, Low: r2, Suited: true}
	default:
		return poker.StartingHand{High: r2, Low: r1}
	}
}
