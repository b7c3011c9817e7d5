package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	appmodel "farmbot/model"
)

const (
	minSideWidth  = 34
	inputHeight   = 3
	footerHeight  = 1
	chartMinRows  = 9
	sideChromeGap = 2
)

// layout splits the screen into the chat column and the side column
func (a AppView) layout() (chatWidth, sideWidth int) {
	sideWidth = max(a.width*2/5, minSideWidth)
	if sideWidth > a.width-20 {
		sideWidth = max(a.width-20, 0)
	}
	chatWidth = a.width - sideWidth - sideChromeGap
	return chatWidth, sideWidth
}

func (a *AppView) resize() {
	chatWidth, _ := a.layout()
	a.viewport.Width = max(chatWidth, 10)
	a.viewport.Height = max(a.height-inputHeight-footerHeight-1, 3)
	a.input.Width = max(chatWidth-4, 10)
	a.landSize.Width = 8
}

func (a *AppView) updateViewportContent(gotoBottom bool) {
	entries := a.ctrl.Chat.Entries()
	if len(entries) == 0 {
		a.viewport.SetContent(DimStyle.Render("Ask FarmBot about crops, soil and seasons, or set filters and press Apply."))
		return
	}

	width := max(a.viewport.Width-2, 10)
	var content strings.Builder

	for _, e := range entries {
		timestamp := DimStyle.Render(e.Timestamp.Format("[15:04]"))

		switch e.Kind {
		case appmodel.EntryUser:
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), e.Text, width))
		case appmodel.EntryTyping:
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, BotStyle.Render("FarmBot"),
				a.typingSpinner.View()+DimStyle.Render(" typing...")))
		case appmodel.EntryBot:
			body := renderBotEntry(e, a.cfg.Renderer, width)
			body = lipgloss.NewStyle().Width(width).Render(body)
			content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, BotStyle.Render("FarmBot"), body))
		}
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// formatUserMessage draws a user entry with a vertical bar down its left edge
func formatUserMessage(timestamp, role, text string, width int) string {
	wrapped := lipgloss.NewStyle().Width(max(width-2, 8)).Render(text)

	var lines []string
	for _, line := range strings.Split(wrapped, "\n") {
		lines = append(lines, UserStyle.Render("│ ")+line)
	}
	return fmt.Sprintf("%s %s\n%s\n\n", timestamp, role, strings.Join(lines, "\n"))
}

func (a AppView) renderMain() string {
	chatWidth, sideWidth := a.layout()

	inputBorder := dimColor
	if a.focused() == appmodel.ControlUserInput {
		inputBorder = accentColor
	}
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Width(max(chatWidth-2, 10)).
		Render(a.input.View())

	chat := lipgloss.JoinVertical(lipgloss.Left, a.viewport.View(), inputBox)

	side := a.renderSide(sideWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(chatWidth).Render(chat),
		strings.Repeat(" ", sideChromeGap),
		side,
	)

	return lipgloss.JoinVertical(lipgloss.Left, body, a.renderFooter())
}

func (a AppView) renderSide(width int) string {
	filters := a.renderFilterPanel(width)
	if a.selector.active {
		filters = a.renderSelectorFilter(width)
	}

	usedRows := lipgloss.Height(filters)
	tips := a.renderTips(width)
	chartRows := max(a.height-usedRows-lipgloss.Height(tips)-footerHeight-2, chartMinRows)

	chart := PanelStyle.Width(max(width-4, 10)).Render(a.canvas.View(max(width-6, 10), chartRows))

	return lipgloss.JoinVertical(lipgloss.Left, filters, chart, tips)
}

func (a AppView) renderFilterPanel(width int) string {
	labelWidth := 18
	var lines []string

	lines = append(lines, TitleStyle.Render("Filters"))

	row := func(id appmodel.ControlID, label, value string) string {
		marker := "  "
		style := lipgloss.NewStyle()
		if a.focused() == id {
			marker = "▶ "
			style = SelectedStyle
		}
		return style.Render(marker+fitLabel(label, labelWidth)) + " " + value
	}

	for _, spec := range appmodel.FilterSelectors {
		if spec.ID == appmodel.ControlClimate {
			lines = append(lines, row(appmodel.ControlLandSize, "Land Size (acres)", a.landSize.View()))
		}
		if !a.form.Has(spec.ID) {
			continue
		}
		value, _ := a.form.Value(spec.ID)
		display := value
		if display == "" {
			display = DimStyle.Render(spec.Sentinel)
		}
		if a.focused() == spec.ID {
			display = "‹ " + display + " ›"
		}
		lines = append(lines, row(spec.ID, spec.Label, display))
	}

	applyStyle, resetStyle := ButtonStyle, ButtonStyle
	if a.focused() == appmodel.ControlApply {
		applyStyle = FocusedButtonStyle
	}
	if a.focused() == appmodel.ControlReset {
		resetStyle = FocusedButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		applyStyle.Render("Apply Filters"),
		" ",
		resetStyle.Render("Reset"),
	)
	lines = append(lines, buttons)

	if err := a.ctrl.Recs.LastError(); err != nil {
		lines = append(lines, DimStyle.Render("Chart not updated"))
	}

	return PanelStyle.Width(max(width-4, 10)).Render(strings.Join(lines, "\n"))
}

func (a AppView) renderTips(width int) string {
	tips := a.ctrl.Tips
	if tips == nil {
		return ""
	}
	tip, ok := tips.Current()
	if !ok {
		return ""
	}

	var dots []string
	for i := 0; i < tips.Len(); i++ {
		if i == tips.Index() {
			dots = append(dots, HighlightStyle.Render("●"))
		} else {
			dots = append(dots, DimStyle.Render("○"))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Farming Tips")+"  "+strings.Join(dots, " "),
		BotStyle.Render(tip.Title),
		tip.Body,
	)
	return PanelStyle.Width(max(width-4, 10)).Render(content)
}

func (a AppView) renderFooter() string {
	kb := a.cfg.Keybindings

	if a.status != "" {
		return StatusStyle.Render(a.status)
	}

	var parts []string
	switch {
	case a.selector.active:
		parts = []string{"Enter", "Choose", "↑/↓", "Move", "Esc", "Cancel"}
	case a.focused() == appmodel.ControlUserInput:
		parts = []string{"Enter", "Send"}
	case a.focused() == appmodel.ControlApply, a.focused() == appmodel.ControlReset:
		parts = []string{"Enter", "Press"}
	case a.focused() == appmodel.ControlLandSize:
		parts = []string{"0-9", "Edit"}
	default:
		parts = []string{"←/→", "Change", kb.DisplayActionKey("selector_filter"), "Search"}
	}

	parts = append(parts,
		kb.DisplayActionKey("focus_next"), "Next",
		kb.DisplayActionKey("apply_filters"), "Apply",
		kb.DisplayActionKey("reset_filters"), "Reset",
		kb.DisplayActionKey("help"), "Help",
	)

	return FormatFooter(parts...)
}
