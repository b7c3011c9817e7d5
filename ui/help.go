package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.cfg.Keybindings

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("FarmBot - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		fmt.Sprintf("• %-13s Apply filters", kb.DisplayActionKey("apply_filters")),
		fmt.Sprintf("• %-13s Reset filters", kb.DisplayActionKey("reset_filters")),
		fmt.Sprintf("• %-13s Bar / radar chart", kb.DisplayActionKey("toggle_chart")),
		fmt.Sprintf("• %-13s Next field", kb.DisplayActionKey("focus_next")),
		fmt.Sprintf("• %-13s Previous field", kb.DisplayActionKey("focus_prev")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s About FarmBot", kb.DisplayActionKey("about")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	filters := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Filters"),
		fmt.Sprintf("• %-13s Next option", kb.DisplayActionKey("selector_next")),
		fmt.Sprintf("• %-13s Previous option", kb.DisplayActionKey("selector_prev")),
		fmt.Sprintf("• %-13s Search options", kb.DisplayActionKey("selector_filter")),
		"• Backspace     Back to \"Any\"",
	)

	chatNavigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Navigation"),
		fmt.Sprintf("• %-13s Scroll down 1 line", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Scroll up 1 line", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Full page down", kb.DisplayActionKey("page_down")),
		fmt.Sprintf("• %-13s Full page up", kb.DisplayActionKey("page_up")),
		fmt.Sprintf("• %-13s Jump to top", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Jump to bottom", kb.DisplayActionKey("scroll_to_bottom")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send message",
		fmt.Sprintf("• %-13s Copy last reply", kb.DisplayActionKey("yank_last_response")),
		fmt.Sprintf("• %-13s Clear input", kb.DisplayActionKey("clear_input")),
	)

	tipActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Farming Tips"),
		fmt.Sprintf("• %-13s Next tip", kb.DisplayActionKey("tips_next")),
		fmt.Sprintf("• %-13s Previous tip", kb.DisplayActionKey("tips_prev")),
		fmt.Sprintf("• %-13s Pause / resume", kb.DisplayActionKey("tips_pause")),
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		globalActions,
		"",
		filters,
	)

	column2 := lipgloss.JoinVertical(
		lipgloss.Left,
		chatNavigation,
		"",
		chatActions,
		"",
		tipActions,
	)

	columnStyle := lipgloss.NewStyle().Width(40).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"  ",
		columnStyle.Render(column2),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(min(90, max(width-4, 40)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
