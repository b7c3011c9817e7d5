package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"farmbot/config"
	appmodel "farmbot/model"
)

// focusOrder is the Tab order of the page's interactive controls
var focusOrder = []appmodel.ControlID{
	appmodel.ControlUserInput,
	appmodel.ControlSoilType,
	appmodel.ControlMonth,
	appmodel.ControlSeason,
	appmodel.ControlLandType,
	appmodel.ControlLandSize,
	appmodel.ControlClimate,
	appmodel.ControlApply,
	appmodel.ControlReset,
}

type AppView struct {
	cfg    *config.Config
	ctrl   *appmodel.Controller
	form   *appmodel.MemoryForm
	canvas *TerminalCanvas

	// UI Components
	viewport      viewport.Model
	input         textinput.Model
	landSize      textinput.Model
	typingSpinner spinner.Model
	selector      selectorState

	// Window state
	width  int
	height int
	ready  bool

	focus     int
	showHelp  bool
	showAbout bool
	status    string
	version   string
}

func NewAppView(cfg *config.Config, backend appmodel.Backend) AppView {
	form := appmodel.NewFilterForm()
	ctrl := appmodel.NewController(backend, form, appmodel.ControllerOptions{
		Timeout:      cfg.RequestTimeout,
		ChartKind:    appmodel.ChartKind(cfg.ChartKind),
		TipsInterval: cfg.TipsInterval,
	})

	canvas := NewTerminalCanvas()
	ctrl.Renderer.Attach(appmodel.ControlCropChart, canvas)

	input := textinput.New()
	input.Placeholder = "Ask about crops, soil, or farming practices..."
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	landSize := textinput.New()
	landSize.Prompt = ""
	landSize.CharLimit = 12
	landSize.SetValue(appmodel.DefaultLandSize)
	landSize.CursorEnd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = BotStyle

	return AppView{
		cfg:           cfg,
		ctrl:          ctrl,
		form:          form,
		canvas:        canvas,
		viewport:      viewport.New(0, 0),
		input:         input,
		landSize:      landSize,
		typingSpinner: s,
		selector:      newSelectorState(),
		version:       "dev",
	}
}

// WithVersion sets the version shown on the about screen
func (a AppView) WithVersion(version string) AppView {
	a.version = version
	return a
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.ctrl.Init(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading FarmBot..."
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.showAbout {
		return a.renderAboutModal(a.width, a.height)
	}

	return a.renderMain()
}

// Controller exposes the controller driving this view
func (a AppView) Controller() *appmodel.Controller {
	return a.ctrl
}

func (a AppView) focused() appmodel.ControlID {
	return focusOrder[a.focus]
}

// setFocus moves focus and keeps text input cursors in step
func (a *AppView) setFocus(i int) tea.Cmd {
	n := len(focusOrder)
	a.focus = ((i % n) + n) % n

	a.input.Blur()
	a.landSize.Blur()

	switch a.focused() {
	case appmodel.ControlUserInput:
		return a.input.Focus()
	case appmodel.ControlLandSize:
		return a.landSize.Focus()
	}
	return nil
}

// syncInputs copies control values the controller may have changed back
// into the text widgets
func (a *AppView) syncInputs() {
	if v, ok := a.form.Value(appmodel.ControlUserInput); ok && v != a.input.Value() {
		a.input.SetValue(v)
	}
	if v, ok := a.form.Value(appmodel.ControlLandSize); ok && v != a.landSize.Value() {
		a.landSize.SetValue(v)
		a.landSize.CursorEnd()
	}
}
