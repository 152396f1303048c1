package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldlens/fieldlens/pkg/engine"
	"github.com/fieldlens/fieldlens/pkg/model"
)

// filterRows keeps the rows whose key contains the filter substring,
// case-insensitively. An empty filter keeps everything.
func filterRows[T any](rows []T, filter string, key func(T) string) []T {
	if filter == "" {
		return rows
	}
	needle := strings.ToLower(filter)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(key(r)), needle) {
			out = append(out, r)
		}
	}
	return out
}

// clipboardText builds the plain-text summary copied with "y".
func clipboardText(v engine.View) string {
	var b strings.Builder
	switch v.Mode {
	case engine.ModeForward:
		if v.Forward == nil {
			break
		}
		fmt.Fprintf(&b, "computable indicators (%d):\n", len(v.Forward.Computable))
		for _, ind := range v.Forward.Computable {
			fmt.Fprintf(&b, "  %s [%s]\n", ind.ID, ind.Usecase)
		}
	case engine.ModeReverse:
		if v.Reverse == nil {
			break
		}
		fmt.Fprintf(&b, "required fields (%d):\n", len(v.Reverse.RequiredFields))
		for _, fc := range v.Reverse.RequiredFields {
			fmt.Fprintf(&b, "  %s x%d\n", fc.Field, fc.Count)
		}
	}
	return b.String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPicker(), m.renderResultsPane())
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	idx := m.session.Index()
	mode := m.theme.Header.Render(m.view.Mode.String())
	sortLabel := fmt.Sprintf("sort:%s%s", m.view.Sort.Key, m.view.Sort.Direction.Indicator())
	info := m.theme.SubtleText.Render(fmt.Sprintf(
		"%s  %d fields / %d indicators  %s", m.sourceName, idx.FieldCount(), idx.TotalIndicators(), sortLabel))
	return lipgloss.NewStyle().Padding(0, 1).Render(mode + "  " + info)
}

func (m Model) renderPicker() string {
	var b strings.Builder

	switch m.view.Mode {
	case engine.ModeForward:
		b.WriteString(m.theme.PaneTitle.Render("fields"))
		b.WriteByte('\n')
		rows := m.visibleFields()
		for i, row := range rows {
			b.WriteString(m.renderFieldRow(row, i == m.cursor && m.focus == focusPicker))
			b.WriteByte('\n')
		}
		if len(rows) == 0 {
			b.WriteString(m.theme.MutedText.Render("no fields match"))
		}
	case engine.ModeReverse:
		b.WriteString(m.theme.PaneTitle.Render("indicators"))
		b.WriteByte('\n')
		rows := m.visibleIndicators()
		for i, row := range rows {
			b.WriteString(m.renderIndicatorRow(row, i == m.cursor && m.focus == focusPicker))
			b.WriteByte('\n')
		}
		if len(rows) == 0 {
			b.WriteString(m.theme.MutedText.Render("no indicators match"))
		}
	}

	if m.filtering || m.filter.Value() != "" {
		b.WriteByte('\n')
		b.WriteString(m.filter.View())
	}

	style := PanelStyle
	if m.focus == focusPicker {
		style = PanelFocusStyle
	}
	return style.Width(m.pickerWidth()).Height(m.bodyHeight()).Render(b.String())
}

func (m Model) renderFieldRow(row engine.FieldRow, underCursor bool) string {
	cursor := "  "
	if underCursor {
		cursor = m.theme.Cursor.Render("> ")
	}
	check := "[ ]"
	label := string(row.ID)
	line := fmt.Sprintf("%s %s (%d)", check, truncate(label, m.pickerWidth()-12), row.IndicatorCount)
	if row.Selected {
		line = fmt.Sprintf("[x] %s (%d)", truncate(label, m.pickerWidth()-12), row.IndicatorCount)
		return cursor + m.theme.SelectedRow.Render(line)
	}
	return cursor + line
}

func (m Model) renderIndicatorRow(row engine.IndicatorRow, underCursor bool) string {
	cursor := "  "
	if underCursor {
		cursor = m.theme.Cursor.Render("> ")
	}
	label := truncate(string(row.ID), m.pickerWidth()-12)
	if row.Selected {
		return cursor + m.theme.SelectedRow.Render(fmt.Sprintf("[x] %s", label))
	}
	return cursor + fmt.Sprintf("[ ] %s", label)
}

func (m Model) renderResultsPane() string {
	style := PanelStyle
	if m.focus == focusResults {
		style = PanelFocusStyle
	}
	return style.Width(m.resultsWidth()).Height(m.bodyHeight()).Render(m.results.View())
}

// renderResults builds the scrollable right-pane content.
func (m Model) renderResults() string {
	var b strings.Builder
	switch m.view.Mode {
	case engine.ModeForward:
		if m.view.Forward == nil {
			break
		}
		b.WriteString(m.theme.PaneTitle.Render("computable"))
		b.WriteByte('\n')
		if len(m.view.Forward.Computable) == 0 {
			b.WriteString(m.theme.MutedText.Render("select fields to derive indicators"))
			b.WriteByte('\n')
		}
		for _, ind := range m.view.Forward.Computable {
			b.WriteString(m.theme.OKText.Render("✓ "))
			fmt.Fprintf(&b, "%s %s\n", ind.ID, m.theme.MutedText.Render("["+string(ind.Usecase)+"]"))
		}

		b.WriteByte('\n')
		b.WriteString(m.theme.PaneTitle.Render("incomplete"))
		b.WriteByte('\n')
		for _, ind := range m.view.Forward.Incomplete {
			b.WriteString(m.theme.WarnText.Render("○ "))
			fmt.Fprintf(&b, "%s %s %d/%d", ind.ID, miniBar(ind.Ratio, miniBarWidth),
				len(ind.Satisfied), len(ind.Satisfied)+len(ind.Missing))
			if len(ind.Missing) > 0 {
				b.WriteString(m.theme.MutedText.Render("  missing: " + joinFields(ind.Missing, 3)))
			}
			b.WriteByte('\n')
		}
	case engine.ModeReverse:
		if m.view.Reverse == nil {
			break
		}
		b.WriteString(m.theme.PaneTitle.Render("required fields"))
		b.WriteByte('\n')
		if len(m.view.Reverse.RequiredFields) == 0 {
			b.WriteString(m.theme.MutedText.Render("select indicators to see their fields"))
			b.WriteByte('\n')
		}
		for _, fc := range m.view.Reverse.RequiredFields {
			fmt.Fprintf(&b, "%s %s\n", padRight(string(fc.Field), 28), m.theme.SubtleText.Render(fmt.Sprintf("x%d", fc.Count)))
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := StatusBarStyle
		if m.statusIsError {
			style = m.theme.ErrorText
		}
		return lipgloss.NewStyle().Padding(0, 1).Render(style.Render(m.statusMsg))
	}
	hints := "space toggle · m mode · c/n sort · / filter · r reset · y copy · ? help · q quit"
	return lipgloss.NewStyle().Padding(0, 1).Render(StatusBarStyle.Render(hints))
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"space/enter", "toggle the item under the cursor"},
		{"tab", "switch between picker and results"},
		{"j/k, arrows", "move cursor / scroll results"},
		{"g/G", "jump to top / bottom"},
		{"m", "switch forward/reverse mode"},
		{"c", "sort fields by indicator count"},
		{"n", "sort fields by name"},
		{"/", "filter the picker"},
		{"r", "clear the selection"},
		{"y", "copy results to clipboard"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("fieldlens keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", m.theme.Cursor.Render(padRight(r[0], 14)), r[1])
	}
	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("press ? to close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

const miniBarWidth = 6

// miniBar renders a completion ratio as a fixed-width block bar.
func miniBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// joinFields renders up to limit field ids, eliding the rest with a count.
func joinFields(fields []model.FieldID, limit int) string {
	if len(fields) <= limit {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = string(f)
		}
		return strings.Join(parts, ", ")
	}
	parts := make([]string, limit, limit+1)
	for i := 0; i < limit; i++ {
		parts[i] = string(fields[i])
	}
	parts = append(parts, fmt.Sprintf("+%d more", len(fields)-limit))
	return strings.Join(parts, ", ")
}
