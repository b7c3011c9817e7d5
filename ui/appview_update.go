package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"farmbot/config"
	appmodel "farmbot/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		// The spinner only runs while a reply is outstanding
		if !a.ctrl.Chat.Typing() {
			return a, nil
		}
		var cmd tea.Cmd
		a.typingSpinner, cmd = a.typingSpinner.Update(msg)
		a.updateViewportContent(false)
		return a, cmd

	case appmodel.ChatResponseMsg:
		cmd := a.ctrl.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case appmodel.OptionsLoadedMsg, appmodel.RecommendationsMsg, appmodel.TipTickMsg:
		return a, a.ctrl.Update(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blink and other widget messages
	var cmd tea.Cmd
	switch a.focused() {
	case appmodel.ControlUserInput:
		a.input, cmd = a.input.Update(msg)
	case appmodel.ControlLandSize:
		a.landSize, cmd = a.landSize.Update(msg)
	}
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.cfg.Keybindings
	pressed := msg.String()
	a.status = ""

	if pressed == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showHelp {
		if pressed == "esc" || kb.Matches(pressed, "help") {
			a.showHelp = false
		}
		return a, nil
	}

	if a.showAbout {
		if pressed == "esc" || kb.Matches(pressed, "about") {
			a.showAbout = false
		}
		return a, nil
	}

	if a.selector.active {
		return a.handleSelectorFilterKey(msg)
	}

	switch {
	case kb.Matches(pressed, "quit"):
		return a, tea.Quit

	case kb.Matches(pressed, "help"):
		a.showHelp = true
		return a, nil

	case kb.Matches(pressed, "about"):
		a.showAbout = true
		return a, nil

	case kb.Matches(pressed, "apply_filters"):
		return a.applyFilters()

	case kb.Matches(pressed, "reset_filters"):
		return a.resetFilters()

	case kb.Matches(pressed, "toggle_chart"):
		kind := a.ctrl.ToggleChart()
		a.status = "Chart: " + string(kind)
		return a, nil

	case kb.Matches(pressed, "tips_next"), kb.Matches(pressed, "tips_prev"), kb.Matches(pressed, "tips_pause"):
		return a.stepTips(pressed)

	case kb.Matches(pressed, "yank_last_response"):
		return a.yankLastReply()

	case kb.Matches(pressed, "clear_input"):
		a.input.SetValue("")
		return a, nil

	case kb.Matches(pressed, "focus_next"):
		return a, a.setFocus(a.focus + 1)

	case kb.Matches(pressed, "focus_prev"):
		return a, a.setFocus(a.focus - 1)

	case kb.Matches(pressed, "scroll_down"):
		a.viewport.SetYOffset(a.viewport.YOffset + 1)
		return a, nil

	case kb.Matches(pressed, "scroll_up"):
		a.viewport.SetYOffset(a.viewport.YOffset - 1)
		return a, nil

	case kb.Matches(pressed, "page_down"):
		a.viewport.PageDown()
		return a, nil

	case kb.Matches(pressed, "page_up"):
		a.viewport.PageUp()
		return a, nil

	case kb.Matches(pressed, "scroll_to_top"):
		a.viewport.GotoTop()
		return a, nil

	case kb.Matches(pressed, "scroll_to_bottom"):
		a.viewport.GotoBottom()
		return a, nil
	}

	return a.handleFocusedKey(msg)
}

// handleFocusedKey delivers a key to whichever control has focus
func (a AppView) handleFocusedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.cfg.Keybindings
	pressed := msg.String()
	id := a.focused()

	switch id {
	case appmodel.ControlUserInput:
		if pressed == "enter" {
			return a.submitChat()
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case appmodel.ControlLandSize:
		if pressed == "enter" {
			return a, a.setFocus(a.focus + 1)
		}
		var cmd tea.Cmd
		a.landSize, cmd = a.landSize.Update(msg)
		a.form.SetValue(appmodel.ControlLandSize, a.landSize.Value())
		return a, cmd

	case appmodel.ControlApply:
		if pressed == "enter" || pressed == " " {
			return a.applyFilters()
		}

	case appmodel.ControlReset:
		if pressed == "enter" || pressed == " " {
			return a.resetFilters()
		}

	default:
		// Dropdowns
		switch {
		case kb.Matches(pressed, "selector_next"), pressed == "down":
			a.cycleSelector(id, 1)
		case kb.Matches(pressed, "selector_prev"), pressed == "up":
			a.cycleSelector(id, -1)
		case kb.Matches(pressed, "selector_filter"), pressed == "enter":
			return a, a.openSelectorFilter(id)
		case pressed == "backspace", pressed == "delete":
			a.form.SetValue(id, "")
		}
	}

	return a, nil
}

func (a AppView) submitChat() (tea.Model, tea.Cmd) {
	a.form.SetValue(appmodel.ControlUserInput, a.input.Value())
	cmd := a.ctrl.SubmitInput()
	if cmd == nil {
		return a, nil
	}
	a.syncInputs()
	a.updateViewportContent(true)
	return a, tea.Batch(cmd, a.typingSpinner.Tick)
}

func (a AppView) applyFilters() (tea.Model, tea.Cmd) {
	cmd := a.ctrl.ApplyFilters()
	a.updateViewportContent(true)
	return a, tea.Batch(cmd, a.typingSpinner.Tick)
}

func (a AppView) resetFilters() (tea.Model, tea.Cmd) {
	cmd := a.ctrl.ResetFilters()
	a.syncInputs()
	a.status = "Filters reset"
	return a, cmd
}

func (a AppView) yankLastReply() (tea.Model, tea.Cmd) {
	reply, ok := a.ctrl.Chat.LastReply()
	if !ok {
		a.status = "Nothing to copy yet"
		return a, nil
	}
	if err := clipboard.WriteAll(reply.Text); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[AppView] clipboard write failed: %v", err)
		}
		a.status = "Clipboard unavailable"
		return a, nil
	}
	a.status = "Copied last reply"
	return a, nil
}

// stepTips moves or pauses the tips carousel. Manual steps leave the
// paused state alone.
func (a AppView) stepTips(pressed string) (tea.Model, tea.Cmd) {
	tips := a.ctrl.Tips
	if tips == nil {
		return a, nil
	}
	kb := a.cfg.Keybindings
	switch {
	case kb.Matches(pressed, "tips_next"):
		tips.Next()
	case kb.Matches(pressed, "tips_prev"):
		tips.Prev()
	case kb.Matches(pressed, "tips_pause"):
		tips.SetPaused(!tips.Paused())
		if tips.Paused() {
			a.status = "Tips paused"
		} else {
			a.status = "Tips resumed"
		}
	}
	return a, nil
}
