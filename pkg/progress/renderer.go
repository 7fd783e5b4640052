package progress

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RowRenderer renders one row per task from an ordered column list. Cells in
// the same column are padded to a common width, measured ANSI-aware so styled
// cells line up.
//
// Immutable
type RowRenderer struct {
	columns []Column
}

// NewRowRenderer creates a renderer over the given columns.
func NewRowRenderer(cols ...Column) *RowRenderer {
	return &RowRenderer{columns: cols}
}

func (r *RowRenderer) Render(tasks []Task) (string, error) {
	if len(tasks) == 0 {
		return "", nil
	}

	widths := make([]int, len(r.columns))
	cells := make([][]string, len(tasks))
	for i, t := range tasks {
		row := make([]string, len(r.columns))
		for j, col := range r.columns {
			cell := col.RenderCell(t)
			row[j] = cell
			if w := lipgloss.Width(cell); w > widths[j] {
				widths[j] = w
			}
		}
		cells[i] = row
	}

	var sb strings.Builder
	for _, row := range cells {
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell)
			if pad := widths[j] - lipgloss.Width(cell); pad > 0 && j < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
