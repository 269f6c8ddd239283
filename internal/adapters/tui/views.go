package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/success-cli/success/internal/core"
)

// View renders the full screen for the current mode.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDim))

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(m.app.FormatDayLabel()) + "\n\n")
	b.WriteString(m.viewList())

	switch mode := m.app.Mode().(type) {
	case core.ModePickGoal:
		b.WriteString("\n" + m.viewGoalPicker(mode))
	case core.ModeGoalForm:
		b.WriteString("\n" + m.viewGoalForm(mode))
	case core.ModePickDuration:
		b.WriteString("\n" + m.viewDurationPicker(mode))
	case core.ModeQuantityPrompt:
		b.WriteString("\n" + m.viewQuantityPrompt())
	}

	b.WriteString("\n" + m.viewNotes())
	if m.err != nil {
		b.WriteString("\n  " + dimStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	}
	b.WriteString("\n  " + dimStyle.Render(m.helpLine()) + "\n")
	return b.String()
}

// viewList renders the day's session rows, the running timer and the
// add row. The selection highlight is suppressed while a dialog owns
// the input.
func (m Model) viewList() string {
	workStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorWork))
	rewardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorReward))
	timerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTimer)).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorSelected)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDim))

	width := m.width
	if width <= 0 {
		width = 80
	}
	labelWidth := width - 6
	if labelWidth < 16 {
		labelWidth = 16
	}

	items := m.app.BuildView(labelWidth)
	selected := m.app.Selected()
	dialog := core.DialogOpen(m.app.Mode())

	var b strings.Builder
	for i, item := range items {
		style := workStyle
		switch {
		case item.Kind == core.ViewItemRunningTimer:
			style = timerStyle
		case item.Kind == core.ViewItemAddSession, item.Kind == core.ViewItemAddReward:
			style = dimStyle
		case item.IsReward:
			style = rewardStyle
		}
		marker := "  "
		if i == selected && !dialog {
			marker = "> "
			style = selectedStyle
		}

		if item.Kind == core.ViewItemRunningTimer {
			// First label line is the countdown info; the bar is
			// rendered by the gradient progress widget instead of the
			// plain text one.
			info, _, _ := strings.Cut(item.Label, "\n")
			b.WriteString("  " + marker + style.Render(info) + "\n")
			b.WriteString("    " + m.progress.ViewAs(m.app.TimerPercent()) + "\n")
			continue
		}
		for j, line := range core.WrapText(item.Label, labelWidth) {
			prefix := marker
			if j > 0 {
				prefix = "  "
			}
			b.WriteString("  " + prefix + style.Render(line) + "\n")
		}
	}
	return b.String()
}

// viewGoalPicker renders the fuzzy search dialog with the synthetic
// create row pinned at the bottom.
func (m Model) viewGoalPicker(mode core.ModePickGoal) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorSelected)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDim))

	title := "Pick a goal"
	if mode.IsReward {
		title = "Pick a reward"
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	b.WriteString("  > " + renderInput(m.app.SearchInput()) + "\n")

	selected := m.app.SearchSelected()
	for i, r := range m.app.SearchResults() {
		marker := "  "
		style := dimStyle
		if r.Goal != nil {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorWork))
			if mode.IsReward {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorReward))
			}
		}
		if i == selected {
			marker = "> "
			style = selectedStyle
		}
		b.WriteString("  " + marker + style.Render(r.Label) + "\n")
	}
	return b.String()
}

// viewGoalForm renders the three-field creation dialog with the
// focused field marked.
func (m Model) viewGoalForm(mode core.ModeGoalForm) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDim))

	form := mode.Form
	title := "New goal"
	if form.IsReward {
		title = "New reward"
	}

	fields := []struct {
		field core.FormField
		name  string
		buf   *core.TextBuffer
	}{
		{core.FieldGoalName, "Name", &form.Name},
		{core.FieldQuantityUnit, "Unit", &form.Unit},
		{core.FieldCommands, "Commands", &form.Commands},
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	for _, f := range fields {
		marker := "  "
		value := f.buf.Value
		if f.field == form.Field {
			marker = "> "
			value = renderInput(f.buf)
		}
		b.WriteString(fmt.Sprintf("  %s%s: %s\n", marker, dimStyle.Render(f.name), value))
	}
	return b.String()
}

func (m Model) viewDurationPicker(mode core.ModePickDuration) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))

	b := "  " + titleStyle.Render(fmt.Sprintf("Duration for %s", mode.GoalName)) + "\n"
	return b + "  > " + renderInput(m.app.DurationInput()) + "\n"
}

func (m Model) viewQuantityPrompt() string {
	return "  > " + renderInput(m.app.QuantityInput()) + "\n"
}

// viewNotes renders the notes pane for the selected goal. In edit mode
// the cursor position comes from the core buffer.
func (m Model) viewNotes() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDim))
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	if m.app.SelectedGoalID() == "" {
		return ""
	}

	_, editing := m.app.Mode().(core.ModeEditNotes)
	notes := m.app.Notes()
	if notes == "" && !editing {
		return ""
	}

	width := m.width - 4
	if width < 20 {
		width = 76
	}

	var b strings.Builder
	b.WriteString("  " + dimStyle.Render(strings.Repeat("─", width)) + "\n")

	lines := strings.Split(notes, "\n")
	curLine, curCol := m.app.NotesLineCol()
	for i, line := range lines {
		if editing && i == curLine {
			runes := []rune(line)
			col := curCol
			if col > len(runes) {
				col = len(runes)
			}
			before := string(runes[:col])
			under := " "
			after := ""
			if col < len(runes) {
				under = string(runes[col])
				after = string(runes[col+1:])
			}
			b.WriteString("  " + before + cursorStyle.Render(under) + after + "\n")
			continue
		}
		for _, wrapped := range core.WrapText(line, width) {
			b.WriteString("  " + dimStyle.Render(wrapped) + "\n")
		}
	}
	return b.String()
}

// renderInput shows a single-line buffer with a block cursor.
func renderInput(buf *core.TextBuffer) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	runes := []rune(buf.Value)
	col := buf.Cursor
	if col > len(runes) {
		col = len(runes)
	}
	under := " "
	after := ""
	if col < len(runes) {
		under = string(runes[col])
		after = string(runes[col+1:])
	}
	return string(runes[:col]) + cursorStyle.Render(under) + after
}

func (m Model) helpLine() string {
	switch m.app.Mode().(type) {
	case core.ModeView:
		return "enter add · e notes · E editor · o archive · h/l day · q quit"
	case core.ModeRunningTimer:
		return "e notes · E editor · o archive · q quit"
	case core.ModeEditNotes:
		return "esc back · enter newline"
	case core.ModePickGoal:
		return "enter pick · esc cancel"
	case core.ModeGoalForm:
		return "tab next field · enter create · esc cancel"
	case core.ModePickDuration:
		return "enter start · esc cancel"
	case core.ModeQuantityPrompt:
		return "enter record · esc skip"
	default:
		return ""
	}
}
