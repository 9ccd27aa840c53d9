package solver

import "github.com/lox/basicstrategy/internal/cards"

// Totals 0..21 fit in this many slots.
const totalSlots = 22

// upcardSlots covers upcard values 2..11.
const upcardSlots = 10

// memo is a dense table keyed by a packed state index. Each slot is filled
// at most once.
type memo[T any] struct {
	name   string
	done   []bool
	values []T
}

func newMemo[T any](name string, size int) memo[T] {
	return memo[T]{
		name:   name,
		done:   make([]bool, size),
		values: make([]T, size),
	}
}

func (m *memo[T]) get(idx int) (T, bool) {
	m.check(idx)
	return m.values[idx], m.done[idx]
}

func (m *memo[T]) put(idx int, v T) {
	m.check(idx)
	if m.done[idx] {
		panic(invariantf("memo slot written once", "%s[%d]", m.name, idx))
	}
	m.done[idx] = true
	m.values[idx] = v
}

func (m *memo[T]) check(idx int) {
	if idx < 0 || idx >= len(m.done) {
		panic(invariantf("memo index in bounds", "%s[%d] of %d", m.name, idx, len(m.done)))
	}
}

func (m *memo[T]) filled() int {
	n := 0
	for _, d := range m.done {
		if d {
			n++
		}
	}
	return n
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func dealerMemoSize() int {
	return totalSlots * 2 * 2 * totalSlots
}

func dealerIndex(d DealerState, player int) int {
	return ((d.Total*2+bit(d.Soft))*2+bit(d.Revealing))*totalSlots + player
}

func playerMemoSize(maxSplits int) int {
	return upcardSlots * totalSlots * 2 * 2 * (maxSplits + 1) * 2
}

func playerIndex(s PlayerState, maxSplits int) int {
	up := s.Upcard.Canonical().Value() - cards.Two.Value()
	idx := up*totalSlots + s.Hand.Total
	idx = idx*2 + bit(s.Hand.Soft)
	idx = idx*2 + bit(s.DoubleAllowed)
	idx = idx*(maxSplits+1) + s.SplitsRemaining
	return idx*2 + bit(s.SplitAces)
}
