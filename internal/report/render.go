package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const sectionRuleWidth = 70

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	kindHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	guidanceStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Render writes the grouped human-readable report to w: one section per
// violation kind with its evidence table and remediation guidance.
func (r *Report) Render(w io.Writer) {
	if r.Count() == 0 {
		fmt.Fprintln(w, "No violations found.")
		return
	}

	fmt.Fprintln(w, titleStyle.Render("Validation Results:"))
	for _, kind := range r.Kinds() {
		violations := r.groups[kind]
		if len(violations) == 0 {
			continue
		}
		first := violations[0]

		fmt.Fprintln(w, strings.Repeat("─", sectionRuleWidth))
		fmt.Fprintf(w, "❌ %s\n", kindHeaderStyle.Render(first.Header()))

		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(tableBorderStyle).
			BorderRow(true).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeaderStyle
				}
				return tableCellStyle
			}).
			Headers(first.TableHeader()...)
		for i, v := range violations {
			tbl.Row(v.TableRow(i + 1)...)
		}
		fmt.Fprintln(w, tbl)

		fmt.Fprintf(w, "💡 %s\n%s\n", guidanceStyle.Render("Guidance:"), first.Guidance())
	}
}
