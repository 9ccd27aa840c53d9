// Package solver computes expected values for blackjack hands against a
// fixed-rule dealer with an infinite deck.
//
// Two memoised recursions do the work: the dealer engine averages the
// player's payoff over every way the dealer can finish, and the decision
// engine picks the best of stand, double, split and hit, recursing into
// itself for hits and splits. Each state is computed once per Solver.
package solver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/rules"
)

// BlackjackPayout is paid on a player natural that the dealer does not match.
const BlackjackPayout = 1.5

// Stats counts memo usage.
type Stats struct {
	DealerStates int
	DealerHits   int
	PlayerStates int
	PlayerHits   int
}

// Solver owns one run's memo tables. It is not safe for concurrent use;
// give each goroutine its own Solver.
type Solver struct {
	rules  rules.Rules
	logger zerolog.Logger

	dealerMemo memo[float64]
	playerMemo memo[Result]

	dealerHits int
	playerHits int
}

// New validates r and allocates memo tables sized for it.
func New(r rules.Rules, logger zerolog.Logger) (*Solver, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	s := &Solver{
		rules:      r,
		logger:     logger.With().Str("component", "solver").Logger(),
		dealerMemo: newMemo[float64]("dealer", dealerMemoSize()),
		playerMemo: newMemo[Result]("player", playerMemoSize(r.MaxSplits)),
	}
	s.logger.Debug().
		Str("rules", r.String()).
		Int("dealer_slots", len(s.dealerMemo.done)).
		Int("player_slots", len(s.playerMemo.done)).
		Msg("allocated memo tables")
	return s, nil
}

// Rules returns the configuration the solver was built with.
func (s *Solver) Rules() rules.Rules {
	return s.rules
}

// InitialState returns the state of a freshly dealt two-card hand. Equal
// ranks may be split up to the configured budget.
func (s *Solver) InitialState(upcard, first, second cards.Rank) PlayerState {
	st := PlayerState{
		Upcard:        upcard,
		Hand:          HandOf(first, second),
		DoubleAllowed: true,
	}
	if first == second {
		st.SplitsRemaining = s.rules.MaxSplits
	}
	return st
}

// Stats reports how many states were computed and how many lookups were
// answered from the memo tables.
func (s *Solver) Stats() Stats {
	return Stats{
		DealerStates: s.dealerMemo.filled(),
		DealerHits:   s.dealerHits,
		PlayerStates: s.playerMemo.filled(),
		PlayerHits:   s.playerHits,
	}
}

// LogStats writes the memo statistics at debug level.
func (s *Solver) LogStats(msg string) {
	if s.logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	st := s.Stats()
	s.logger.Debug().
		Int("dealer_states", st.DealerStates).
		Int("dealer_hits", st.DealerHits).
		Int("player_states", st.PlayerStates).
		Int("player_hits", st.PlayerHits).
		Msg(msg)
}
