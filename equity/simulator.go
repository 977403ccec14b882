// Package equity estimates how often one holding beats another by Monte Carlo
// run-outs of the remaining deck.
package equity

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerequity/internal/randutil"
	"github.com/lox/pokerequity/poker"
)

// cancelCheckInterval is how many trials a worker runs between context checks.
const cancelCheckInterval = 256

// Simulator runs equity simulations. It is safe for concurrent use; each call
// forks its worker generators from the simulator's master generator.
type Simulator struct {
	classifier *poker.Classifier
	workers    int
	logger     *log.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClassifier sets the classifier used to score hands.
func WithClassifier(c *poker.Classifier) Option {
	return func(s *Simulator) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithSeed makes the simulator reproducible for a given seed and worker count.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = randutil.New(seed)
	}
}

// WithRand sets the master generator directly.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithWorkers sets how many goroutines split the trials. Values below one mean one.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		s.workers = max(n, 1)
	}
}

// WithLogger sets the logger for simulation summaries.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulator creates a simulator. Without options it uses the shared
// default classifier, a time seeded generator and a single worker.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		classifier: poker.DefaultClassifier(),
		workers:    1,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = randutil.New(randutil.NewSeed())
	}
	return s
}

// Workers reports the configured worker count.
func (s *Simulator) Workers() int {
	return s.workers
}

// HandVsHand estimates hero against villain, both fixed, completing the board
// with random cards on every trial.
func (s *Simulator) HandVsHand(ctx context.Context, hero, villain Holding, board []poker.Card, trials int) (Result, error) {
	if err := validateTrials(trials, board); err != nil {
		return Result{}, err
	}
	dead, err := poker.CheckDistinct(hero.Cards(), villain.Cards(), board)
	if err != nil {
		return Result{}, err
	}
	need := 5 - len(board)
	if err := checkDeck(dead, need); err != nil {
		return Result{}, err
	}

	deal := func(_ *rand.Rand, deck *poker.Deck, h *hands) error {
		deck.Reset(dead)
		deck.Shuffle()
		runout, err := deck.Deal(need)
		if err != nil {
			return err
		}
		h.fill(hero, villain[:], board, runout)
		return nil
	}

	t, err := s.run(ctx, trials, deal)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("hand vs hand finished", "hero", hero, "villain", villain, "trials", trials, "workers", s.workers)
	return newResult(t), nil
}

// HandVsField estimates hero against one opponent holding random cards. Each
// trial deals the run-out first and then the opponent's two cards.
func (s *Simulator) HandVsField(ctx context.Context, hero Holding, board []poker.Card, trials int) (FieldResult, error) {
	if err := validateTrials(trials, board); err != nil {
		return FieldResult{}, err
	}
	dead, err := poker.CheckDistinct(hero.Cards(), board)
	if err != nil {
		return FieldResult{}, err
	}
	need := 5 - len(board)
	if err := checkDeck(dead, need+2); err != nil {
		return FieldResult{}, err
	}

	deal := func(_ *rand.Rand, deck *poker.Deck, h *hands) error {
		deck.Reset(dead)
		deck.Shuffle()
		runout, err := deck.Deal(need)
		if err != nil {
			return err
		}
		opponent, err := deck.Deal(2)
		if err != nil {
			return err
		}
		h.fill(hero, opponent, board, runout)
		return nil
	}

	t, err := s.run(ctx, trials, deal)
	if err != nil {
		return FieldResult{}, err
	}
	s.logger.Debug("hand vs field finished", "hero", hero, "trials", trials, "workers", s.workers)
	return newFieldResult(t), nil
}

// RangeVsRange estimates one range against another. Every trial samples a
// holding from each range uniformly, resampling pairs that share a card.
// Holdings that collide with the board are dropped before simulating.
func (s *Simulator) RangeVsRange(ctx context.Context, heroRange, villainRange Range, board []poker.Card, trials int) (Result, error) {
	if err := validateTrials(trials, board); err != nil {
		return Result{}, err
	}
	if len(heroRange) == 0 || len(villainRange) == 0 {
		return Result{}, ErrEmptyRange
	}
	boardSet, err := poker.CheckDistinct(board)
	if err != nil {
		return Result{}, err
	}

	heroes, heroSets, err := liveHoldings(heroRange, boardSet)
	if err != nil {
		return Result{}, fmt.Errorf("hero range: %w", err)
	}
	villains, villainSets, err := liveHoldings(villainRange, boardSet)
	if err != nil {
		return Result{}, fmt.Errorf("villain range: %w", err)
	}
	if !anyDisjoint(heroSets, villainSets) {
		return Result{}, fmt.Errorf("every hero holding collides with every villain holding: %w", poker.ErrDuplicateCard)
	}
	need := 5 - len(board)
	if err := checkDeck(boardSet, need+4); err != nil {
		return Result{}, err
	}

	deal := func(rng *rand.Rand, deck *poker.Deck, h *hands) error {
		hi, vi := rng.IntN(len(heroes)), rng.IntN(len(villains))
		for heroSets[hi].Intersects(villainSets[vi]) {
			hi, vi = rng.IntN(len(heroes)), rng.IntN(len(villains))
		}
		deck.Reset(boardSet | heroSets[hi] | villainSets[vi])
		deck.Shuffle()
		runout, err := deck.Deal(need)
		if err != nil {
			return err
		}
		h.fill(heroes[hi], villains[vi][:], board, runout)
		return nil
	}

	t, err := s.run(ctx, trials, deal)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("range vs range finished",
		"hero_holdings", len(heroes), "villain_holdings", len(villains),
		"trials", trials, "workers", s.workers)
	return newResult(t), nil
}

// hands holds the two seven card hands for one trial, reused across trials.
type hands struct {
	hero, villain []poker.Card
}

func (h *hands) fill(hero Holding, villain, board, runout []poker.Card) {
	h.hero = append(append(append(h.hero[:0], hero[:]...), board...), runout...)
	h.villain = append(append(append(h.villain[:0], villain...), board...), runout...)
}

// dealer sets up one trial on a worker's deck.
type dealer func(rng *rand.Rand, deck *poker.Deck, h *hands) error

// run splits trials across workers, each with its own generator, deck and
// counters, and sums the counters once every worker is done.
func (s *Simulator) run(ctx context.Context, trials int, deal dealer) (tally, error) {
	workers := min(s.workers, trials)

	s.mu.Lock()
	rngs := randutil.Fork(s.rng, workers)
	s.mu.Unlock()

	tallies := make([]tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := trials / workers
		if w < trials%workers {
			n++
		}
		g.Go(func() error {
			rng := rngs[w]
			deck := poker.NewDeck(rng, 0)
			h := hands{
				hero:    make([]poker.Card, 0, 7),
				villain: make([]poker.Card, 0, 7),
			}
			var t tally
			for i := range n {
				if i%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if err := deal(rng, deck, &h); err != nil {
					return err
				}
				heroClass, err := s.classifier.BestOf(h.hero)
				if err != nil {
					return err
				}
				villainClass, err := s.classifier.BestOf(h.villain)
				if err != nil {
					return err
				}
				t.record(heroClass.Compare(villainClass))
			}
			tallies[w] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tally{}, err
	}

	var total tally
	for _, t := range tallies {
		total.merge(t)
	}
	return total, nil
}

func validateTrials(trials int, board []poker.Card) error {
	if trials <= 0 {
		return fmt.Errorf("%d trials: %w", trials, ErrInvalidTrials)
	}
	if len(board) > 5 {
		return fmt.Errorf("board has %d cards: %w", len(board), poker.ErrInvalidHandSize)
	}
	return nil
}

func checkDeck(dead poker.CardSet, need int) error {
	if left := poker.NumCards - dead.Len(); left < need {
		return fmt.Errorf("need %d cards, %d left: %w", need, left, poker.ErrDeckExhausted)
	}
	return nil
}

// liveHoldings validates a range and drops holdings that touch dead cards.
func liveHoldings(r Range, dead poker.CardSet) ([]Holding, []poker.CardSet, error) {
	for _, h := range r {
		if _, err := poker.CheckDistinct(h.Cards()); err != nil {
			return nil, nil, fmt.Errorf("holding %s: %w", h, err)
		}
	}
	live := r.Without(dead)
	if len(live) == 0 {
		return nil, nil, fmt.Errorf("no holding survives the board: %w", poker.ErrDuplicateCard)
	}
	sets := make([]poker.CardSet, len(live))
	for i, h := range live {
		sets[i] = h.Set()
	}
	return live, sets, nil
}

func anyDisjoint(a, b []poker.CardSet) bool {
	for _, x := range a {
		for _, y := range b {
			if !x.Intersects(y) {
				return true
			}
		}
	}
	return false
}
