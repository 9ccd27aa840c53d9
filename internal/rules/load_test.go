package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesPreset(t *testing.T) {
	src := []byte(`
preset = "standard"

rules {
  dealer_stands_soft_17        = false
  doubling                     = "totals-10-11"
  max_splits                   = 3
  dealer_wins_ties_at_or_below = 0
  dealer_peeks                 = true
}
`)
	r, err := Parse(src, "test.hcl")
	require.NoError(t, err)

	assert.False(t, r.DealerStandsSoft17)
	assert.Equal(t, DoubleTenToEleven, r.Doubling)
	assert.Equal(t, 3, r.MaxSplits)
	assert.Equal(t, 0, r.DealerWinsTiesAtOrBelow)
	assert.True(t, r.DealerPeeks)
	// untouched attributes keep the preset value
	assert.True(t, r.DoubleAfterSplit)
	assert.False(t, r.ResplitAces)
}

func TestParseEmptyFileIsStandard(t *testing.T) {
	r, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, Standard(), r)
}

func TestParsePresetOnly(t *testing.T) {
	r, err := Parse([]byte(`preset = "european"`), "eu.hcl")
	require.NoError(t, err)
	assert.Equal(t, DoubleNineToEleven, r.Doubling)
	assert.False(t, r.DoubleAfterSplit)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `rules {`},
		{"unknown attribute", "rules {\n  surrender = true\n}\n"},
		{"bad policy", "rules {\n  doubling = \"whenever\"\n}\n"},
		{"negative splits", "rules {\n  max_splits = -1\n}\n"},
		{"unknown preset", `preset = "moon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.hcl")
	require.NoError(t, os.WriteFile(path, []byte("rules {\n  resplit_aces = true\n}\n"), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, r.ResplitAces)

	_, err = LoadFile(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestShippedConfigs(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "configs", "*.hcl"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			_, err := LoadFile(file)
			require.NoError(t, err)
		})
	}

	r, err := LoadFile(filepath.Join("..", "..", "configs", "hole-card.hcl"))
	require.NoError(t, err)
	hole, err := Preset("hole-card")
	require.NoError(t, err)
	assert.Equal(t, hole, r)
}
