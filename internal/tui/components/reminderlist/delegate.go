package reminderlist

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/fitlife/internal/swipe"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 0, 0, 2)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 0, 0, 2)

	selectedTitleStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("205")).
				Foreground(lipgloss.Color("205")).
				Padding(0, 0, 0, 1)

	selectedDescStyle = selectedTitleStyle.
				Foreground(lipgloss.Color("168"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(0, 0, 0, 2)

	deletePanelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("231")).
				Background(lipgloss.Color("160")).
				Bold(true).
				Align(lipgloss.Center, lipgloss.Center)

	editPanelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(1, 2)
)

type delegate struct {
	rows RowSource
}

func newDelegate(rows RowSource) delegate {
	return delegate{rows: rows}
}

func (d delegate) Height() int                             { return 2 }
func (d delegate) Spacing() int                            { return 1 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}

	var row *swipe.Row
	if d.rows != nil {
		row = d.rows(it.Reminder.ID)
	}

	title, desc := it.Title(), it.Description()
	titleSt, descSt := titleStyle, descStyle
	if index == m.Index() {
		titleSt, descSt = selectedTitleStyle, selectedDescStyle
	}
	if row != nil && row.Disabled() {
		desc = fmt.Sprintf("awaiting %s confirmation", row.Pending())
		descSt = pendingStyle
	}

	fmt.Fprint(w, renderRow(title, desc, titleSt, descSt, row, m.Width()))
}

// renderRow shifts the row content by the drag offset and fills the uncovered
// space with the matching action panel.
func renderRow(title, desc string, titleSt, descSt lipgloss.Style, row *swipe.Row, width int) string {
	offset := 0.0
	if row != nil {
		offset = row.Offset()
	}
	shift := int(math.Round(math.Abs(offset) * float64(width)))
	if shift > width {
		shift = width
	}

	contentWidth := width - shift
	if contentWidth < 0 {
		contentWidth = 0
	}
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleSt.MaxWidth(contentWidth).Render(title),
		descSt.MaxWidth(contentWidth).Render(desc),
	)
	if shift == 0 {
		return content
	}

	switch {
	case offset < 0:
		panel := deletePanelStyle.Width(shift).Height(2).Render(panelLabel("Delete", shift))
		return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(contentWidth).Render(content), panel)
	default:
		panel := editPanelStyle.Width(shift).Height(2).Render(panelLabel("Edit", shift))
		return lipgloss.JoinHorizontal(lipgloss.Top, panel, content)
	}
}

func panelLabel(label string, width int) string {
	if width < len(label)+2 {
		return ""
	}
	return label
}
