package rules

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// fileConfig is the on-disk shape of a rules file:
//
//	preset = "standard"
//
//	rules {
//	  dealer_stands_soft_17        = true
//	  doubling                     = "any-two-cards"
//	  double_after_split           = true
//	  max_splits                   = 1
//	  resplit_aces                 = false
//	  double_split_aces            = false
//	  dealer_wins_ties_at_or_below = 16
//	  dealer_peeks                 = false
//	}
type fileConfig struct {
	Preset string     `hcl:"preset,optional"`
	Rules  *ruleBlock `hcl:"rules,block"`
}

// Unset attributes keep the preset's value, hence the pointers.
type ruleBlock struct {
	DealerStandsSoft17      *bool   `hcl:"dealer_stands_soft_17,optional"`
	Doubling                *string `hcl:"doubling,optional"`
	DoubleAfterSplit        *bool   `hcl:"double_after_split,optional"`
	MaxSplits               *int    `hcl:"max_splits,optional"`
	ResplitAces             *bool   `hcl:"resplit_aces,optional"`
	DoubleSplitAces         *bool   `hcl:"double_split_aces,optional"`
	DealerWinsTiesAtOrBelow *int    `hcl:"dealer_wins_ties_at_or_below,optional"`
	DealerPeeks             *bool   `hcl:"dealer_peeks,optional"`
}

// LoadFile reads a rules file in HCL format.
func LoadFile(filename string) (Rules, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL rules, starting from the named preset (standard when
// omitted), and validates the result.
func Parse(src []byte, filename string) (Rules, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Preset == "" {
		cfg.Preset = "standard"
	}
	r, err := Preset(cfg.Preset)
	if err != nil {
		return Rules{}, err
	}

	if b := cfg.Rules; b != nil {
		if b.DealerStandsSoft17 != nil {
			r.DealerStandsSoft17 = *b.DealerStandsSoft17
		}
		if b.Doubling != nil {
			policy, err := ParseDoublingPolicy(*b.Doubling)
			if err != nil {
				return Rules{}, fmt.Errorf("%s: %w", filename, err)
			}
			r.Doubling = policy
		}
		if b.DoubleAfterSplit != nil {
			r.DoubleAfterSplit = *b.DoubleAfterSplit
		}
		if b.MaxSplits != nil {
			r.MaxSplits = *b.MaxSplits
		}
		if b.ResplitAces != nil {
			r.ResplitAces = *b.ResplitAces
		}
		if b.DoubleSplitAces != nil {
			r.DoubleSplitAces = *b.DoubleSplitAces
		}
		if b.DealerWinsTiesAtOrBelow != nil {
			r.DealerWinsTiesAtOrBelow = *b.DealerWinsTiesAtOrBelow
		}
		if b.DealerPeeks != nil {
			r.DealerPeeks = *b.DealerPeeks
		}
	}

	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("%s: %w", filename, err)
	}
	return r, nil
}
