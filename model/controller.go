package model

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"farmbot/config"
)

// ApplyFiltersMessage is posted to the chat when filters are applied
const ApplyFiltersMessage = "Please recommend crops based on the selected filters"

// Controller sequences user actions against the chat log, the filter
// controls and the chart. It never blocks: every request comes back as a
// tea.Cmd whose message is routed through Update.
type Controller struct {
	Form     Form
	Chat     *ChatSession
	Options  *OptionsLoader
	Recs     *RecommendationView
	Renderer *ChartRenderer
	Tips     *Carousel
}

// ControllerOptions tunes NewController
type ControllerOptions struct {
	Timeout      time.Duration
	ChartKind    ChartKind
	TipsInterval time.Duration
}

func NewController(backend Backend, form Form, opts ControllerOptions) *Controller {
	renderer := NewChartRenderer(opts.ChartKind)
	return &Controller{
		Form:     form,
		Chat:     NewChatSession(backend, opts.Timeout),
		Options:  NewOptionsLoader(backend, form, opts.Timeout),
		Recs:     NewRecommendationView(backend, renderer, opts.Timeout),
		Renderer: renderer,
		Tips:     NewCarousel(FarmingTips, opts.TipsInterval),
	}
}

// Init draws the placeholder chart and starts the startup requests: one
// options load per field and an unfiltered chart refresh.
func (c *Controller) Init() tea.Cmd {
	c.Renderer.Render(ControlCropChart, nil)

	cmds := []tea.Cmd{
		c.Options.LoadAll(),
		c.Recs.Refresh(Filters{}),
	}
	if c.Tips != nil {
		cmds = append(cmds, c.Tips.Tick())
	}
	return tea.Batch(cmds...)
}

// CurrentFilters snapshots the six filter controls. Missing or empty
// controls read as "" and a land size of 1.
func (c *Controller) CurrentFilters() Filters {
	read := func(id ControlID) string {
		v, _ := c.Form.Value(id)
		return v
	}

	return Filters{
		Soil:             read(ControlSoilType),
		Month:            read(ControlMonth),
		Season:           read(ControlSeason),
		LandType:         read(ControlLandType),
		LandSize:         ParseLandSize(read(ControlLandSize)),
		ClimateCondition: read(ControlClimate),
	}
}

// SubmitInput submits whatever is in the chat input
func (c *Controller) SubmitInput() tea.Cmd {
	text, _ := c.Form.Value(ControlUserInput)
	return c.SubmitChat(text)
}

// SubmitChat posts a user question. Blank text is ignored: nothing is added
// to the log and no request is made.
func (c *Controller) SubmitChat(text string) tea.Cmd {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil
	}

	c.Chat.AppendUser(message)
	c.Form.SetValue(ControlUserInput, "")
	c.Chat.ShowTyping()

	return c.Chat.Send(message, c.CurrentFilters())
}

// ApplyFilters asks the bot for recommendations and redraws the chart, both
// with the current filters
func (c *Controller) ApplyFilters() tea.Cmd {
	c.Chat.AppendUser(ApplyFiltersMessage)
	c.Chat.ShowTyping()

	filters := c.CurrentFilters()
	return tea.Batch(
		c.Chat.Send(ApplyFiltersMessage, filters),
		c.Recs.Refresh(filters),
	)
}

// ResetFilters clears every filter control and redraws the chart with no
// filters at all. The refresh deliberately ignores the post-reset land size.
func (c *Controller) ResetFilters() tea.Cmd {
	for _, id := range []ControlID{ControlSoilType, ControlMonth, ControlSeason, ControlLandType, ControlClimate} {
		c.Form.SetValue(id, "")
	}
	c.Form.SetValue(ControlLandSize, DefaultLandSize)

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Controller] filters reset")
	}
	return c.Recs.Refresh(Filters{})
}

// ToggleChart switches between bar and radar charts
func (c *Controller) ToggleChart() ChartKind {
	return c.Renderer.ToggleKind()
}

// Update routes request completions and timer ticks. It returns a follow-up
// command when one is needed.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChatResponseMsg:
		c.Chat.HandleResponse(msg)
	case OptionsLoadedMsg:
		c.Options.Handle(msg)
	case RecommendationsMsg:
		c.Recs.Handle(msg)
	case TipTickMsg:
		if c.Tips != nil {
			return c.Tips.Handle(msg)
		}
	}
	return nil
}
