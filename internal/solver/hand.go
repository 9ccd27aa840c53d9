package solver

import (
	"fmt"

	"github.com/lox/basicstrategy/internal/cards"
)

// Hand is a running blackjack total. Total counts one ace as 11 when Soft
// is set. Stored hands never exceed 21; see Resolve.
type Hand struct {
	Total int  `json:"total"`
	Soft  bool `json:"soft"`
}

// Add returns the hand after drawing r. An ace counts as 11 on a hard hand
// and as 1 on a soft one, since only one ace can ever be counted high.
func (h Hand) Add(r cards.Rank) Hand {
	if r.IsAce() {
		if h.Soft {
			return Hand{Total: h.Total + 1, Soft: true}
		}
		return Hand{Total: h.Total + 11, Soft: true}
	}
	return Hand{Total: h.Total + r.Value(), Soft: h.Soft}
}

// Resolve softens a soft hand over 21. It returns false when the hand is bust.
func (h Hand) Resolve() (Hand, bool) {
	if h.Total > 21 && h.Soft {
		h = Hand{Total: h.Total - 10}
	}
	return h, h.Total <= 21
}

func (h Hand) String() string {
	if h.Soft {
		return fmt.Sprintf("soft %d", h.Total)
	}
	return fmt.Sprintf("hard %d", h.Total)
}

// HandOf builds a hand from the given cards.
func HandOf(rs ...cards.Rank) Hand {
	var h Hand
	for _, r := range rs {
		h, _ = h.Add(r).Resolve()
	}
	return h
}

// DealerState is the dealer's running hand. Revealing is set while the hole
// card is still to come, so that a two-card 21 can be told apart from a
// drawn one.
type DealerState struct {
	Total     int
	Soft      bool
	Revealing bool
}

// DealerStart returns the dealer state showing only upcard.
func DealerStart(upcard cards.Rank) DealerState {
	return DealerState{Total: upcard.Value(), Soft: upcard.IsAce(), Revealing: true}
}

// draw applies the same ace rule as Hand.Add. The result never reveals.
func (d DealerState) draw(r cards.Rank) DealerState {
	h := Hand{Total: d.Total, Soft: d.Soft}.Add(r)
	return DealerState{Total: h.Total, Soft: h.Soft}
}

func (d DealerState) String() string {
	return fmt.Sprintf("dealer{total=%d soft=%t revealing=%t}", d.Total, d.Soft, d.Revealing)
}

// PlayerState is everything the decision engine needs about one hand.
type PlayerState struct {
	Upcard cards.Rank
	Hand   Hand

	// DoubleAllowed is set only for a hand's first decision.
	DoubleAllowed bool

	// SplitsRemaining > 0 means the hand is a pair that may still be split.
	SplitsRemaining int

	// SplitAces marks a hand dealt to a split ace: one card, no hitting.
	SplitAces bool
}

func (s PlayerState) String() string {
	return fmt.Sprintf("player{upcard=%s %s double=%t splits=%d split_aces=%t}",
		s.Upcard, s.Hand, s.DoubleAllowed, s.SplitsRemaining, s.SplitAces)
}

// pairRank returns the rank being split. Ten-valued pairs are all treated
// as Ten: exactly one of the thirteen ranks re-pairs either way.
func (s PlayerState) pairRank() cards.Rank {
	if s.Hand.Soft {
		return cards.Ace
	}
	return cards.Rank(s.Hand.Total / 2)
}

func (s PlayerState) isPair() bool {
	if s.Hand.Soft {
		return s.Hand.Total == 12
	}
	return s.Hand.Total%2 == 0 && s.Hand.Total >= 4 && s.Hand.Total <= 20
}
