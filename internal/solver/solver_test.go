package solver

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/rules"
)

const tolerance = 1e-9

func newSolver(t *testing.T, r rules.Rules) *Solver {
	t.Helper()
	s, err := New(r, zerolog.New(zerolog.NewTestWriter(t)))
	require.NoError(t, err)
	return s
}

func peekRules() rules.Rules {
	r := rules.Standard()
	r.DealerPeeks = true
	return r
}

func TestNewRejectsInvalidRules(t *testing.T) {
	r := rules.Standard()
	r.MaxSplits = -1
	_, err := New(r, zerolog.Nop())
	assert.Error(t, err)
}

func TestDealerOutcomeTerminalStates(t *testing.T) {
	s := newSolver(t, rules.Standard())

	assert.Equal(t, 1.0, s.DealerOutcome(DealerState{Total: 22}, 12), "dealer bust")
	assert.Equal(t, -1.0, s.DealerOutcome(DealerState{Total: 19}, 18), "dealer higher")
	assert.Equal(t, 1.0, s.DealerOutcome(DealerState{Total: 18}, 19), "player higher")
	assert.Equal(t, 0.0, s.DealerOutcome(DealerState{Total: 18}, 18), "push above threshold")
	assert.Equal(t, -1.0, s.DealerOutcome(DealerState{Total: 17}, 12), "stiff loses")
	assert.Equal(t, 1.0, s.DealerOutcome(DealerState{Total: 17, Soft: true}, 18), "stands on soft 17")

	// a soft 22 is a softened 12, not a bust
	assert.Less(t, s.DealerOutcome(DealerState{Total: 22, Soft: true}, 18), 1.0)
}

func TestDealerWinsTiesAtOrBelowThreshold(t *testing.T) {
	r := rules.Standard()
	r.DealerWinsTiesAtOrBelow = 17
	s := newSolver(t, r)

	assert.Equal(t, -1.0, s.DealerOutcome(DealerState{Total: 17}, 17))
	assert.Equal(t, 0.0, s.DealerOutcome(DealerState{Total: 18}, 18))

	r.DealerWinsTiesAtOrBelow = 0
	s = newSolver(t, r)
	assert.Equal(t, 0.0, s.DealerOutcome(DealerState{Total: 17}, 17))
}

func TestDealerHitsSoft17(t *testing.T) {
	r := rules.Standard()
	r.DealerStandsSoft17 = false
	s := newSolver(t, r)

	got := s.DealerOutcome(DealerState{Total: 17, Soft: true}, 18)
	assert.Less(t, got, 1.0, "dealer draws to soft 17 and can beat 18")
	assert.Greater(t, got, -1.0)
}

func TestDealerOutcomeProbabilityConservation(t *testing.T) {
	s := newSolver(t, rules.Standard())

	var states []DealerState
	for total := 2; total <= 16; total++ {
		states = append(states, DealerState{Total: total})
	}
	for total := 12; total <= 16; total++ {
		states = append(states, DealerState{Total: total, Soft: true})
	}

	for _, player := range []int{12, 16, 17, 18, 19, 20, 21} {
		for _, d := range states {
			want := 0.0
			for _, r := range cards.Ranks {
				want += s.DealerOutcome(d.draw(r), player)
			}
			want /= cards.RankCount

			assert.InDelta(t, want, s.DealerOutcome(d, player), tolerance, "%s vs %d", d, player)
		}
	}
}

func TestDealerNaturalOnSecondCard(t *testing.T) {
	s := newSolver(t, rules.Standard())

	for _, up := range cards.Upcards {
		start := DealerStart(up)
		want := 0.0
		for _, r := range cards.Ranks {
			next := start.draw(r)
			if next.Total == 21 {
				want--
				continue
			}
			want += s.DealerOutcome(next, 20)
		}
		want /= cards.RankCount

		assert.InDelta(t, want, s.DealerOutcome(start, 20), tolerance, "upcard %s", up)
	}

	// a drawn 21 is not a natural: 21 vs 21 from three cards pushes
	assert.Equal(t, 0.0, s.DealerOutcome(DealerState{Total: 21}, 21))
}

func TestDealerPeekConditionsOnNoNatural(t *testing.T) {
	s := newSolver(t, peekRules())

	start := DealerStart(cards.Ten)
	want := 0.0
	for _, r := range cards.Ranks {
		if r.IsAce() {
			continue
		}
		want += s.DealerOutcome(start.draw(r), 19)
	}
	want /= cards.RankCount - 1

	assert.InDelta(t, want, s.DealerOutcome(start, 19), tolerance)
}

func TestNaturalProbability(t *testing.T) {
	s := newSolver(t, rules.Standard())

	assert.InDelta(t, 4.0/13, s.NaturalProbability(cards.Ace), tolerance)
	assert.InDelta(t, 1.0/13, s.NaturalProbability(cards.Ten), tolerance)
	assert.InDelta(t, 1.0/13, s.NaturalProbability(cards.King), tolerance)
	assert.Zero(t, s.NaturalProbability(cards.Six))
}

func TestDealerOutcomePanicsOnPlayerOutOfRange(t *testing.T) {
	s := newSolver(t, rules.Standard())

	err := capturePanic(func() { s.DealerOutcome(DealerStart(cards.Six), 22) })
	require.NotNil(t, err)
	assert.Equal(t, "player total in 0..21", err.Invariant)
}

func capturePanic(fn func()) (ie *InvariantError) {
	defer func() {
		if r := recover(); r != nil {
			ie, _ = r.(*InvariantError)
		}
	}()
	fn()
	return nil
}
