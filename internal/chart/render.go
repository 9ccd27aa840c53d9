package chart

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/solver"
)

// Style controls terminal colouring. The zero value renders plain ASCII.
type Style struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Actions map[solver.Action]lipgloss.Style
	// Extended selects the two-character cell codes.
	Extended bool
}

// ColorStyle returns the default coloured style.
func ColorStyle(extended bool) Style {
	return Style{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Actions: map[solver.Action]lipgloss.Style{
			solver.Stand:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			solver.Hit:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			solver.Double: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
			solver.Split:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		},
		Extended: extended,
	}
}

func (s Style) header(text string) string {
	if s.Actions == nil {
		return text
	}
	return s.Header.Render(text)
}

func (s Style) label(text string) string {
	if s.Actions == nil {
		return text
	}
	return s.Label.Render(text)
}

// code paints only the letters so column widths are unaffected.
func (s Style) code(c Cell) string {
	code := c.Code(s.Extended)
	st, ok := s.Actions[c.Action]
	if !ok {
		return code
	}
	letters := strings.TrimRight(code, " ")
	return st.Render(letters) + code[len(letters):]
}

// Render writes the table followed by the expected outcome line.
func Render(w io.Writer, c *Chart, style Style) error {
	bw := bufio.NewWriter(w)

	var head strings.Builder
	head.WriteString("    ")
	for _, up := range cards.Upcards {
		if up.IsAce() {
			head.WriteString("  A")
			continue
		}
		fmt.Fprintf(&head, "%3d", up.Value())
	}
	fmt.Fprintln(bw, style.header(head.String()))
	fmt.Fprintln(bw, strings.Repeat("-", 44))

	for i, row := range c.Rows {
		if i > 0 && row.Block != c.Rows[i-1].Block {
			fmt.Fprintln(bw)
		}
		fmt.Fprint(bw, style.label(fmt.Sprintf("%3s", row.Label)), ": ")
		for _, cell := range row.Cells {
			if style.Extended {
				fmt.Fprint(bw, " ", style.code(cell))
			} else {
				fmt.Fprint(bw, " ", style.code(cell), " ")
			}
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Expected outcome: %+.6f\n", c.ExpectedReturn)
	return bw.Flush()
}
