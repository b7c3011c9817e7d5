package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	appmodel "farmbot/model"
)

// selectorState is the type-to-filter popup over a dropdown
type selectorState struct {
	active      bool
	target      appmodel.ControlID
	filterInput textinput.Model
	matches     []string
	selectedIdx int
}

func newSelectorState() selectorState {
	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.CharLimit = 64
	return selectorState{filterInput: fi}
}

// choices returns a selector's values with the sentinel's "" first
func (a AppView) choices(id appmodel.ControlID) []string {
	opts, ok := a.form.Options(id)
	if !ok {
		return nil
	}
	return append([]string{""}, opts...)
}

// cycleSelector steps a dropdown through its choices, wrapping at both ends
func (a *AppView) cycleSelector(id appmodel.ControlID, delta int) {
	choices := a.choices(id)
	if len(choices) == 0 {
		return
	}
	current, _ := a.form.Value(id)
	idx := slices.Index(choices, current)
	if idx < 0 {
		idx = 0
	}
	idx = ((idx+delta)%len(choices) + len(choices)) % len(choices)
	a.form.SetValue(id, choices[idx])
}

func (a *AppView) openSelectorFilter(id appmodel.ControlID) tea.Cmd {
	opts, ok := a.form.Options(id)
	if !ok || len(opts) == 0 {
		return nil
	}
	a.selector.active = true
	a.selector.target = id
	a.selector.filterInput.SetValue("")
	a.selector.matches = opts
	a.selector.selectedIdx = 0
	return a.selector.filterInput.Focus()
}

func (a *AppView) closeSelectorFilter() {
	a.selector.active = false
	a.selector.filterInput.Blur()
	a.selector.matches = nil
}

// filterChoices narrows a selector's options by fuzzy match, best first
func filterChoices(query string, options []string) []string {
	if query == "" {
		return options
	}
	matches := fuzzy.Find(query, options)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = options[m.Index]
	}
	return out
}

func (a AppView) handleSelectorFilterKey(msg tea.KeyMsg) (AppView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeSelectorFilter()
		return a, nil
	case "enter":
		if len(a.selector.matches) > 0 {
			a.form.SetValue(a.selector.target, a.selector.matches[a.selector.selectedIdx])
		}
		a.closeSelectorFilter()
		return a, nil
	case "up", "ctrl+p":
		if a.selector.selectedIdx > 0 {
			a.selector.selectedIdx--
		}
		return a, nil
	case "down", "ctrl+n":
		if a.selector.selectedIdx < len(a.selector.matches)-1 {
			a.selector.selectedIdx++
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.selector.filterInput, cmd = a.selector.filterInput.Update(msg)

	opts, _ := a.form.Options(a.selector.target)
	a.selector.matches = filterChoices(a.selector.filterInput.Value(), opts)
	if a.selector.selectedIdx >= len(a.selector.matches) {
		a.selector.selectedIdx = max(len(a.selector.matches)-1, 0)
	}

	return a, cmd
}

func (a AppView) renderSelectorFilter(width int) string {
	spec, _ := appmodel.SelectorFor(a.selector.target)

	lines := []string{
		TitleStyle.Render("Select " + spec.Label),
		a.selector.filterInput.View(),
	}

	maxLines := 8
	if len(a.selector.matches) == 0 {
		lines = append(lines, DimStyle.Italic(true).Render("No matches found"))
	}
	start := 0
	if a.selector.selectedIdx >= maxLines {
		start = a.selector.selectedIdx - maxLines + 1
	}
	for i := start; i < len(a.selector.matches) && i < start+maxLines; i++ {
		indicator := "  "
		style := lipgloss.NewStyle()
		if i == a.selector.selectedIdx {
			indicator = "▶ "
			style = SelectedStyle
		}
		lines = append(lines, style.Render(indicator+a.selector.matches[i]))
	}

	opts, _ := a.form.Options(a.selector.target)
	lines = append(lines, DimStyle.Render(fmt.Sprintf("%d of %d", len(a.selector.matches), len(opts))))

	return PanelStyle.Width(max(width-4, 10)).Render(strings.Join(lines, "\n"))
}
