package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultTipsInterval = 5 * time.Second

type Tip struct {
	Title string
	Body  string
}

var FarmingTips = []Tip{
	{
		Title: "Drought Adaptation",
		Body:  "Mulching helps reduce water evaporation from soil and keeps roots cooler during hot weather.",
	},
	{
		Title: "Pest Management",
		Body:  "Companion planting can deter pests naturally - try marigolds near tomatoes to repel nematodes.",
	},
	{
		Title: "Soil Health",
		Body:  "Rotate crops yearly to prevent soil nutrient depletion and reduce pest buildup.",
	},
}

// Carousel cycles through farming tips on a fixed interval
type Carousel struct {
	tips     []Tip
	index    int
	interval time.Duration
	paused   bool
}

func NewCarousel(tips []Tip, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultTipsInterval
	}
	return &Carousel{tips: tips, interval: interval}
}

func (c *Carousel) Current() (Tip, bool) {
	if len(c.tips) == 0 {
		return Tip{}, false
	}
	return c.tips[c.index], true
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return len(c.tips)
}

func (c *Carousel) Next() {
	if len(c.tips) > 0 {
		c.index = (c.index + 1) % len(c.tips)
	}
}

func (c *Carousel) Prev() {
	if len(c.tips) > 0 {
		c.index = (c.index - 1 + len(c.tips)) % len(c.tips)
	}
}

// SetPaused stops automatic advancing. Ticks keep arriving so resuming needs
// no new command.
func (c *Carousel) SetPaused(paused bool) {
	c.paused = paused
}

func (c *Carousel) Paused() bool {
	return c.paused
}

// Tick schedules the next TipTickMsg
func (c *Carousel) Tick() tea.Cmd {
	if len(c.tips) < 2 {
		return nil
	}
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return TipTickMsg{}
	})
}

// Handle advances on a tick and schedules the following one
func (c *Carousel) Handle(TipTickMsg) tea.Cmd {
	if !c.paused {
		c.Next()
	}
	return c.Tick()
}
