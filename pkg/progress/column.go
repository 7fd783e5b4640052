package progress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TextColumn is the literal-template column variant. The format string may
// reference {description}, {completed}, {total}, {percentage} and any task
// metadata via {field:KEY}. Unknown fields render empty; an undefined total
// or percentage renders "?".
type TextColumn struct {
	format string
}

// NewTextColumn creates a column from a format string.
func NewTextColumn(format string) TextColumn {
	return TextColumn{format: format}
}

var fieldPattern = regexp.MustCompile(`\{field:([^}]+)\}`)

func (c TextColumn) RenderCell(t Task) string {
	total := "?"
	if t.HasTotal {
		total = formatNumber(t.Total)
	}
	pct := "?"
	if t.HasPercentage {
		pct = fmt.Sprintf("%.0f", t.Percentage)
	}

	s := strings.NewReplacer(
		"{description}", t.Description,
		"{completed}", formatNumber(t.Completed),
		"{total}", total,
		"{percentage}", pct,
	).Replace(c.format)

	if !strings.Contains(s, "{field:") {
		return s
	}
	return fieldPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := m[len("{field:") : len(m)-1]
		if v, ok := t.Fields[key]; ok {
			return v.String()
		}
		return ""
	})
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DefaultColumns is the column set used when a session is configured without
// one: label, counters and percentage as plain text. Styled widgets live in
// the columns package.
func DefaultColumns() []Column {
	return []Column{
		NewTextColumn("{description}"),
		NewTextColumn("{completed}/{total}"),
		NewTextColumn("{percentage}%"),
	}
}
