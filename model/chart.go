package model

import (
	"fmt"
	"maps"
	"slices"

	"farmbot/config"
)

// ChartDataset holds one suitability score per crop, aligned by index
type ChartDataset struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Validate checks that labels and values line up
func (d *ChartDataset) Validate() error {
	if len(d.Labels) != len(d.Values) {
		return fmt.Errorf("chart data has %d labels but %d values", len(d.Labels), len(d.Values))
	}
	return nil
}

// FallbackDataset is drawn until the server supplies real scores
func FallbackDataset() ChartDataset {
	return ChartDataset{
		Labels: []string{"Rice", "Wheat", "Maize", "Cotton", "Sugarcane"},
		Values: []float64{90, 75, 85, 60, 70},
	}
}

type ChartKind string

const (
	ChartBar   ChartKind = "bar"
	ChartRadar ChartKind = "radar"
)

// ChartSpec is everything a canvas needs to build a chart
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	Dataset ChartDataset
}

// Chart is a live chart instance on a canvas
type Chart interface {
	Destroy()
}

// Canvas creates chart instances for one drawing target
type Canvas interface {
	NewChart(spec ChartSpec) Chart
}

// ChartRenderer keeps at most one live chart per canvas. Every render
// destroys the previous instance and builds a new one; there is no in-place
// update.
type ChartRenderer struct {
	kind     ChartKind
	canvases map[ControlID]Canvas
	live     map[ControlID]Chart
	last     map[ControlID]ChartDataset
}

func NewChartRenderer(kind ChartKind) *ChartRenderer {
	if kind == "" {
		kind = ChartBar
	}
	return &ChartRenderer{
		kind:     kind,
		canvases: make(map[ControlID]Canvas),
		live:     make(map[ControlID]Chart),
		last:     make(map[ControlID]ChartDataset),
	}
}

// Attach registers the canvas drawn for target
func (r *ChartRenderer) Attach(target ControlID, canvas Canvas) {
	r.canvases[target] = canvas
}

// Render replaces target's chart with one built from ds, or from the
// fallback data when ds is nil. Without a canvas it does nothing.
func (r *ChartRenderer) Render(target ControlID, ds *ChartDataset) {
	canvas, ok := r.canvases[target]
	if !ok {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Chart] no canvas for %q, skipping render", target)
		}
		return
	}

	data := FallbackDataset()
	if ds != nil {
		data = ChartDataset{
			Labels: slices.Clone(ds.Labels),
			Values: slices.Clone(ds.Values),
		}
	}

	r.Destroy(target)
	r.live[target] = canvas.NewChart(ChartSpec{
		Kind:    r.kind,
		Title:   "Crop Suitability Score",
		Dataset: data,
	})
	r.last[target] = data
}

// Destroy tears down target's live chart, if any
func (r *ChartRenderer) Destroy(target ControlID) {
	if chart, ok := r.live[target]; ok {
		chart.Destroy()
		delete(r.live, target)
	}
}

// Current returns target's live chart
func (r *ChartRenderer) Current(target ControlID) (Chart, bool) {
	chart, ok := r.live[target]
	return chart, ok
}

func (r *ChartRenderer) Kind() ChartKind {
	return r.kind
}

// SetKind switches chart style and redraws every live chart with its last
// data
func (r *ChartRenderer) SetKind(kind ChartKind) {
	if kind == r.kind {
		return
	}
	r.kind = kind
	// Render rewrites r.live, so redraw from a snapshot of the targets
	for _, target := range slices.Collect(maps.Keys(r.live)) {
		data := r.last[target]
		r.Render(target, &data)
	}
}

// ToggleKind flips between bar and radar
func (r *ChartRenderer) ToggleKind() ChartKind {
	if r.kind == ChartBar {
		r.SetKind(ChartRadar)
	} else {
		r.SetKind(ChartBar)
	}
	return r.kind
}
