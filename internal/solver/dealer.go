package solver

import "github.com/lox/basicstrategy/internal/cards"

// DealerOutcome returns the player's expected payoff for standing on player
// against dealer state d. player must already be resolved to 0..21 and must
// not be a natural.
func (s *Solver) DealerOutcome(d DealerState, player int) float64 {
	if player < 0 || player > 21 {
		panic(invariantf("player total in 0..21", "player=%d %s", player, d))
	}
	return s.dealer(d, player)
}

// NaturalProbability is the chance the dealer turns a natural over upcard.
func (s *Solver) NaturalProbability(upcard cards.Rank) float64 {
	start := DealerStart(upcard)
	n := 0
	for _, r := range cards.Ranks {
		if start.draw(r).Total == 21 {
			n++
		}
	}
	return float64(n) * cards.DrawProbability
}

func (s *Solver) dealer(d DealerState, player int) float64 {
	if d.Total > 21 {
		if d.Soft {
			return s.dealer(DealerState{Total: d.Total - 10}, player)
		}
		return 1
	}

	if s.dealerStands(d) {
		return s.compare(d.Total, player)
	}

	idx := dealerIndex(d, player)
	if v, ok := s.dealerMemo.get(idx); ok {
		s.dealerHits++
		return v
	}

	sum := 0.0
	branches := 0
	for _, r := range cards.Ranks {
		next := d.draw(r)
		if d.Revealing && next.Total == 21 {
			// Natural. Under the hole-card rule the player never got here.
			if s.rules.DealerPeeks {
				continue
			}
			sum--
			branches++
			continue
		}
		sum += s.dealer(next, player)
		branches++
	}
	v := sum / float64(branches)

	s.dealerMemo.put(idx, v)
	return v
}

func (s *Solver) dealerStands(d DealerState) bool {
	if d.Total > 17 {
		return true
	}
	return d.Total == 17 && (!d.Soft || s.rules.DealerStandsSoft17)
}

func (s *Solver) compare(dealer, player int) float64 {
	switch {
	case dealer > player:
		return -1
	case player > dealer:
		return 1
	case player <= s.rules.DealerWinsTiesAtOrBelow:
		return -1
	default:
		return 0
	}
}
