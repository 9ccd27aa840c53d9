// Package report persists a solved strategy chart so other tools can use
// it without re-solving.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/chart"
	"github.com/lox/basicstrategy/internal/fileutil"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/solver"
)

const reportFileVersion = 1

// Report is the on-disk form of a chart.
type Report struct {
	Version        int         `json:"version"`
	GeneratedAt    time.Time   `json:"generated_at"`
	Rules          rules.Rules `json:"rules"`
	Extended       bool        `json:"extended"`
	Rows           []Row       `json:"rows"`
	ExpectedReturn float64     `json:"expected_return"`
}

// Row is one chart row with its codes in upcard order.
type Row struct {
	Label string    `json:"label"`
	Block string    `json:"block"`
	Codes []string  `json:"codes"`
	EV    []float64 `json:"ev"`
}

// New captures c, stamped with the clock's current time.
func New(c *chart.Chart, extended bool, clock quartz.Clock) *Report {
	r := &Report{
		Version:        reportFileVersion,
		GeneratedAt:    clock.Now().UTC(),
		Rules:          c.Rules,
		Extended:       extended,
		ExpectedReturn: c.ExpectedReturn,
	}
	for _, row := range c.Rows {
		out := Row{Label: row.Label, Block: row.Block.String()}
		for _, cell := range row.Cells {
			out.Codes = append(out.Codes, cell.Code(extended))
			out.EV = append(out.EV, cell.EV)
		}
		r.Rows = append(r.Rows, out)
	}
	return r
}

// Save writes the report as indented JSON. The file is replaced atomically
// so readers never observe a partial report.
func (r *Report) Save(path string) error {
	if r == nil {
		return errors.New("nil report")
	}
	if path == "" {
		return errors.New("destination path is required")
	}

	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	})
}

// Load reads a report and checks that it can be trusted.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if r.Version != reportFileVersion {
		return nil, errors.New("unsupported report version")
	}
	if err := r.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("report rules invalid: %w", err)
	}
	return &r, nil
}

// Chart rebuilds a renderable chart from the stored codes. Plain reports
// do not record the no-double fallback, so a plain "D" comes back as
// double-else-hit.
func (r *Report) Chart() (*chart.Chart, error) {
	c := &chart.Chart{Rules: r.Rules, ExpectedReturn: r.ExpectedReturn}
	for _, row := range r.Rows {
		block, err := chart.ParseBlock(row.Block)
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row.Label, err)
		}
		if len(row.Codes) != len(cards.Upcards) || len(row.EV) != len(cards.Upcards) {
			return nil, fmt.Errorf("row %s: expected %d cells, got %d codes and %d values",
				row.Label, len(cards.Upcards), len(row.Codes), len(row.EV))
		}

		out := chart.Row{Label: row.Label, Block: block}
		for i, code := range row.Codes {
			cell, err := parseCell(code)
			if err != nil {
				return nil, fmt.Errorf("row %s column %s: %w", row.Label, cards.Upcards[i], err)
			}
			cell.Upcard = cards.Upcards[i]
			cell.EV = row.EV[i]
			out.Cells[i] = cell
		}
		c.Rows = append(c.Rows, out)
	}
	return c, nil
}

func parseCell(code string) (chart.Cell, error) {
	if code == "" || len(code) > 2 {
		return chart.Cell{}, fmt.Errorf("invalid code %q", code)
	}
	action, ok := solver.ParseCode(code[0])
	if !ok {
		return chart.Cell{}, fmt.Errorf("invalid code %q", code)
	}
	cell := chart.Cell{Action: action, Fallback: action}
	if action == solver.Double {
		cell.Fallback = solver.Hit
	}
	if len(code) == 2 && code[1] != ' ' {
		fallback, ok := solver.ParseCode(code[1])
		if !ok || action != solver.Double {
			return chart.Cell{}, fmt.Errorf("invalid code %q", code)
		}
		cell.Fallback = fallback
	}
	return cell, nil
}
