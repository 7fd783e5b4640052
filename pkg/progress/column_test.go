package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextColumn(t *testing.T) {
	task := Task{
		Description:   "copy",
		Completed:     25,
		Total:         50,
		HasTotal:      true,
		Percentage:    50,
		HasPercentage: true,
		Fields: map[string]Value{
			"unit": Text("rows"),
			"rate": Number(12.5),
		},
	}

	tests := []struct {
		format string
		want   string
	}{
		{"{description}", "copy"},
		{"{completed}/{total}", "25/50"},
		{"{percentage}%", "50%"},
		{"{completed} {field:unit}", "25 rows"},
		{"{field:rate}", "12.5"},
		{"{field:missing}", ""},
		{"plain text", "plain text"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			col := NewTextColumn(tc.format)
			assert.Equal(t, tc.want, col.RenderCell(task))
		})
	}
}

func TestTextColumnUndefinedTotal(t *testing.T) {
	col := NewTextColumn("{completed}/{total} {percentage}")
	cell := col.RenderCell(Task{Description: "x", Completed: 3})
	assert.Equal(t, "3/? ?", cell)
}

func TestRowRendererAlignsColumns(t *testing.T) {
	r := NewRowRenderer(NewTextColumn("{description}"), NewTextColumn("{completed}"))

	frame, err := r.Render([]Task{
		{Description: "short", Completed: 1},
		{Description: "a much longer label", Completed: 22},
	})
	require.NoError(t, err)
	assert.Equal(t, "short               1\na much longer label 22\n", frame)
}

func TestRowRendererEmpty(t *testing.T) {
	r := NewRowRenderer(NewTextColumn("{description}"))
	frame, err := r.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, frame)
}

func TestRowRendererPure(t *testing.T) {
	r := NewRowRenderer(DefaultColumns()...)
	tasks := []Task{{Description: "x", Completed: 5, Total: 10, HasTotal: true, Percentage: 50, HasPercentage: true}}

	a, err := r.Render(tasks)
	require.NoError(t, err)
	b, err := r.Render(tasks)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
