package equity

import "math"

// Result is the tally of a two-sided simulation.
type Result struct {
	HeroWin    int `json:"hero_win"`
	VillainWin int `json:"villain_win"`
	Tie        int `json:"tie"`
	Trials     int `json:"trials"`

	HeroPct    float64 `json:"hero_pct"`
	VillainPct float64 `json:"villain_pct"`
	TiePct     float64 `json:"tie_pct"`
}

func newResult(t tally) Result {
	return Result{
		HeroWin:    t.win,
		VillainWin: t.lose,
		Tie:        t.tie,
		Trials:     t.trials(),
		HeroPct:    percent(t.win, t.trials()),
		VillainPct: percent(t.lose, t.trials()),
		TiePct:     percent(t.tie, t.trials()),
	}
}

// Equity returns the hero's share of the pot, counting ties as half.
func (r Result) Equity() float64 {
	return shareOf(r.HeroWin, r.Tie, r.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for the hero's equity.
func (r Result) ConfidenceInterval() (lower, upper float64) {
	return confidenceInterval(r.Equity(), r.Trials)
}

// FieldResult is the tally of a hand against one random opponent.
type FieldResult struct {
	Win    int `json:"win"`
	Lose   int `json:"lose"`
	Tie    int `json:"tie"`
	Trials int `json:"trials"`

	WinPct  float64 `json:"win_pct"`
	LosePct float64 `json:"lose_pct"`
	TiePct  float64 `json:"tie_pct"`
}

func newFieldResult(t tally) FieldResult {
	return FieldResult{
		Win:     t.win,
		Lose:    t.lose,
		Tie:     t.tie,
		Trials:  t.trials(),
		WinPct:  percent(t.win, t.trials()),
		LosePct: percent(t.lose, t.trials()),
		TiePct:  percent(t.tie, t.trials()),
	}
}

// Equity returns the hand's share of the pot, counting ties as half.
func (r FieldResult) Equity() float64 {
	return shareOf(r.Win, r.Tie, r.Trials)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (r FieldResult) ConfidenceInterval() (lower, upper float64) {
	return confidenceInterval(r.Equity(), r.Trials)
}

// tally is the per-worker counter set, summed once all workers finish.
type tally struct {
	win, lose, tie int
}

func (t tally) trials() int {
	return t.win + t.lose + t.tie
}

func (t *tally) merge(o tally) {
	t.win += o.win
	t.lose += o.lose
	t.tie += o.tie
}

func (t *tally) record(cmp int) {
	switch {
	case cmp > 0:
		t.win++
	case cmp < 0:
		t.lose++
	default:
		t.tie++
	}
}

// percent returns count/total as a percentage rounded to two decimals.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*100/float64(total)*100) / 100
}

func shareOf(wins, ties, trials int) float64 {
	if trials == 0 {
		return 0
	}
	return (float64(wins) + float64(ties)/2) / float64(trials)
}

func confidenceInterval(equity float64, trials int) (lower, upper float64) {
	n := float64(trials)
	if n == 0 {
		return 0.0, 0.0
	}

	// Standard error for binomial proportion
	se := math.Sqrt((equity * (1.0 - equity)) / n)
	margin := 1.96 * se

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}
