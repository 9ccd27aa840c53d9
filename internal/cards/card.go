// Package cards models the infinite-deck rank source: every draw is one of
// thirteen equiprobable ranks and tens, jacks, queens and kings share a value.
package cards

import (
	"fmt"
	"strings"
)

// Rank represents a card rank
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// RankCount is the number of equiprobable ranks per draw.
const RankCount = 13

// DrawProbability is the probability of any single rank on a draw.
const DrawProbability = 1.0 / RankCount

// Ranks lists every rank in draw order.
var Ranks = [RankCount]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Upcards lists the distinct dealer upcards in table order (2..T, A).
var Upcards = [10]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Ace}

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + r))
		}
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// IsAce returns true if the rank is an Ace
func (r Rank) IsAce() bool {
	return r == Ace
}

// Value returns the base value of the rank. Aces report their soft value 11;
// callers decide whether an ace counts as 1 instead.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Canonical folds the ten-valued ranks onto Ten.
func (r Rank) Canonical() Rank {
	if r > Ten {
		return Ten
	}
	return r
}

// ParseRank parses a single rank symbol such as "A", "7", "T" or "10".
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "1", "11":
		return Ace, nil
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}
