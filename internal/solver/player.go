package solver

import "github.com/lox/basicstrategy/internal/cards"

// Decide returns the best action for st and its expected value. Values are
// conditioned on the dealer not holding a natural when the rules say the
// dealer peeks.
func (s *Solver) Decide(st PlayerState) Result {
	hand, ok := st.Hand.Resolve()
	if !ok {
		return Result{EV: -1, Action: Stand}
	}
	st.Hand = hand
	s.checkState(st)

	idx := playerIndex(st, s.rules.MaxSplits)
	if res, ok := s.playerMemo.get(idx); ok {
		s.playerHits++
		return res
	}

	res := s.evaluate(st).Best
	s.playerMemo.put(idx, res)
	return res
}

// Evaluate returns the value of every legal action for st. Child states go
// through the memo tables; st itself is cached if it was not already.
func (s *Solver) Evaluate(st PlayerState) Evaluation {
	hand, ok := st.Hand.Resolve()
	if !ok {
		ev := Evaluation{State: st, Best: Result{EV: -1, Action: Stand}}
		ev.Options[Stand] = Option{EV: -1, Legal: true}
		return ev
	}
	st.Hand = hand
	s.checkState(st)

	ev := s.evaluate(st)
	idx := playerIndex(st, s.rules.MaxSplits)
	if _, done := s.playerMemo.get(idx); !done {
		s.playerMemo.put(idx, ev.Best)
	}
	return ev
}

func (s *Solver) evaluate(st PlayerState) Evaluation {
	ev := Evaluation{State: st}

	stand := s.dealer(DealerStart(st.Upcard), st.Hand.Total)
	ev.Options[Stand] = Option{EV: stand, Legal: true}
	best := Result{EV: stand, Action: Stand}

	if st.DoubleAllowed && s.rules.CanDouble(st.Hand.Total) {
		v := s.doubleValue(st)
		ev.Options[Double] = Option{EV: v, Legal: true}
		if v > best.EV {
			best = Result{EV: v, Action: Double}
		}
	}

	if st.SplitsRemaining > 0 {
		v := s.splitValue(st)
		ev.Options[Split] = Option{EV: v, Legal: true}
		if v > best.EV {
			best = Result{EV: v, Action: Split}
		}
	}

	if !st.SplitAces {
		v := s.hitValue(st)
		ev.Options[Hit] = Option{EV: v, Legal: true}
		if v > best.EV {
			best = Result{EV: v, Action: Hit}
		}
	}

	ev.Best = best
	return ev
}

// doubleValue draws exactly one card at twice the stake.
func (s *Solver) doubleValue(st PlayerState) float64 {
	start := DealerStart(st.Upcard)
	sum := 0.0
	for _, r := range cards.Ranks {
		next, ok := st.Hand.Add(r).Resolve()
		if !ok {
			sum--
			continue
		}
		sum += s.dealer(start, next.Total)
	}
	return 2 * sum * cards.DrawProbability
}

// splitValue plays one of the two hands and counts it twice: both hands
// see independent, identically distributed continuations.
func (s *Solver) splitValue(st PlayerState) float64 {
	pair := st.pairRank()
	first := Hand{}.Add(pair)

	sum := 0.0
	for _, r := range cards.Ranks {
		child := PlayerState{
			Upcard:        st.Upcard,
			Hand:          first.Add(r),
			DoubleAllowed: s.rules.DoubleAfterSplit,
		}
		switch {
		case pair.IsAce():
			child.SplitAces = true
			child.DoubleAllowed = s.rules.DoubleAfterSplitAces()
			if r.IsAce() && s.rules.ResplitAces {
				child.SplitsRemaining = st.SplitsRemaining - 1
			}
		case r == pair:
			child.SplitsRemaining = st.SplitsRemaining - 1
		}
		sum += s.Decide(child).EV
	}
	return 2 * sum * cards.DrawProbability
}

// hitValue draws one card; the hand can never double or split afterwards.
func (s *Solver) hitValue(st PlayerState) float64 {
	sum := 0.0
	for _, r := range cards.Ranks {
		sum += s.Decide(PlayerState{Upcard: st.Upcard, Hand: st.Hand.Add(r)}).EV
	}
	return sum * cards.DrawProbability
}

func (s *Solver) checkState(st PlayerState) {
	switch {
	case !st.Upcard.Valid():
		panic(invariantf("upcard is a rank", "%s", st))
	case st.Hand.Total < 0 || st.Hand.Total > 21:
		panic(invariantf("hand total in 0..21", "%s", st))
	case st.SplitsRemaining < 0 || st.SplitsRemaining > s.rules.MaxSplits:
		panic(invariantf("splits remaining within budget", "%s max=%d", st, s.rules.MaxSplits))
	case st.SplitsRemaining > 0 && !st.isPair():
		panic(invariantf("only pairs may split", "%s", st))
	}
}
