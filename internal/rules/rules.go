// Package rules describes the table rule configuration the solver plays
// under. A Rules value is fixed for a whole computation run.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DoublingPolicy restricts which two-card totals may be doubled.
type DoublingPolicy uint8

const (
	DoubleNone DoublingPolicy = iota
	DoubleAnyTwoCards
	DoubleNineToEleven
	DoubleTenToEleven
)

func (p DoublingPolicy) String() string {
	switch p {
	case DoubleNone:
		return "none"
	case DoubleAnyTwoCards:
		return "any-two-cards"
	case DoubleNineToEleven:
		return "totals-9-10-11"
	case DoubleTenToEleven:
		return "totals-10-11"
	default:
		return "unknown"
	}
}

// ParseDoublingPolicy maps a policy name back to its value.
func ParseDoublingPolicy(s string) (DoublingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "no":
		return DoubleNone, nil
	case "any-two-cards", "any":
		return DoubleAnyTwoCards, nil
	case "totals-9-10-11", "9-11":
		return DoubleNineToEleven, nil
	case "totals-10-11", "10-11":
		return DoubleTenToEleven, nil
	}
	return 0, fmt.Errorf("unknown doubling policy %q", s)
}

// Permits reports whether a hand with the given total may be doubled.
func (p DoublingPolicy) Permits(total int) bool {
	switch p {
	case DoubleNone:
		return false
	case DoubleAnyTwoCards:
		return true
	case DoubleNineToEleven:
		return total >= 9 && total <= 11
	case DoubleTenToEleven:
		return total == 10 || total == 11
	}
	panic(fmt.Sprintf("rules: doubling policy %d out of range", p))
}

// MaxSplitsLimit bounds MaxSplits so memo tables stay small.
const MaxSplitsLimit = 8

// Rules captures the table variant.
type Rules struct {
	// DealerStandsSoft17 makes the dealer stand on soft 17 instead of hitting.
	DealerStandsSoft17 bool `json:"dealer_stands_soft_17"`

	Doubling DoublingPolicy `json:"doubling"`

	// DoubleAfterSplit allows doubling the first decision of a split hand.
	DoubleAfterSplit bool `json:"double_after_split"`

	// MaxSplits is the split budget for a starting pair. Zero disables splitting.
	MaxSplits int `json:"max_splits"`

	// ResplitAces lets a split ace that draws another ace split again while
	// budget remains.
	ResplitAces bool `json:"resplit_aces"`

	// DoubleSplitAces lets a split ace double on its one card. Requires
	// DoubleAfterSplit as well.
	DoubleSplitAces bool `json:"double_split_aces"`

	// DealerWinsTiesAtOrBelow turns ties at or below this total into losses.
	DealerWinsTiesAtOrBelow int `json:"dealer_wins_ties_at_or_below"`

	// DealerPeeks checks the hole card for a natural before the player acts,
	// so a dealer natural only ever takes the original bet.
	DealerPeeks bool `json:"dealer_peeks"`
}

// Validate rejects configurations outside the documented ranges.
func (r Rules) Validate() error {
	if r.Doubling > DoubleTenToEleven {
		return fmt.Errorf("invalid doubling policy %d", r.Doubling)
	}
	if r.MaxSplits < 0 {
		return errors.New("max splits cannot be negative")
	}
	if r.MaxSplits > MaxSplitsLimit {
		return fmt.Errorf("max splits must be <= %d", MaxSplitsLimit)
	}
	if r.DealerWinsTiesAtOrBelow < 0 || r.DealerWinsTiesAtOrBelow > 21 {
		return errors.New("dealer tie threshold must be between 0 and 21")
	}
	return nil
}

// CanDouble reports whether a two-card total may be doubled.
func (r Rules) CanDouble(total int) bool {
	return r.Doubling.Permits(total)
}

// DoubleAfterSplitAces reports whether a split ace may double.
func (r Rules) DoubleAfterSplitAces() bool {
	return r.DoubleAfterSplit && r.DoubleSplitAces
}

func (r Rules) String() string {
	soft17 := "H17"
	if r.DealerStandsSoft17 {
		soft17 = "S17"
	}
	parts := []string{soft17, "double=" + r.Doubling.String()}
	if r.DoubleAfterSplit {
		parts = append(parts, "DAS")
	}
	parts = append(parts, fmt.Sprintf("splits=%d", r.MaxSplits))
	if r.ResplitAces {
		parts = append(parts, "RSA")
	}
	if r.DoubleSplitAces {
		parts = append(parts, "DSA")
	}
	parts = append(parts, fmt.Sprintf("ties<=%d", r.DealerWinsTiesAtOrBelow))
	if r.DealerPeeks {
		parts = append(parts, "peek")
	} else {
		parts = append(parts, "no-peek")
	}
	return strings.Join(parts, " ")
}

// Standard returns the reference configuration: dealer stands on soft 17,
// double any two cards, double after split, one split, no resplit aces,
// dealer wins ties at or below 16, no hole-card peek.
func Standard() Rules {
	return Rules{
		DealerStandsSoft17:      true,
		Doubling:                DoubleAnyTwoCards,
		DoubleAfterSplit:        true,
		MaxSplits:               1,
		ResplitAces:             false,
		DealerWinsTiesAtOrBelow: 16,
	}
}

var presets = map[string]func() Rules{
	"standard": Standard,
	"hole-card": func() Rules {
		r := Standard()
		r.MaxSplits = 3
		r.ResplitAces = true
		r.DealerPeeks = true
		return r
	},
	"european": func() Rules {
		r := Standard()
		r.Doubling = DoubleNineToEleven
		r.DoubleAfterSplit = false
		return r
	},
}

// Preset returns a named rule set.
func Preset(name string) (Rules, error) {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return Rules{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
