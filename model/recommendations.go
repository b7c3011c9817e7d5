package model

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"farmbot/config"
)

// RecommendationView turns a filter snapshot into chart data and hands it to
// the renderer
type RecommendationView struct {
	backend  Backend
	renderer *ChartRenderer
	target   ControlID
	timeout  time.Duration

	lastErr error
}

func NewRecommendationView(backend Backend, renderer *ChartRenderer, timeout time.Duration) *RecommendationView {
	return &RecommendationView{
		backend:  backend,
		renderer: renderer,
		target:   ControlCropChart,
		timeout:  timeout,
	}
}

// Refresh queries scores for filters. Only non-empty fields reach the
// server; an empty Filters{} sends no query parameters at all.
func (v *RecommendationView) Refresh(filters Filters) tea.Cmd {
	token := uuid.NewString()
	backend := v.backend
	timeout := v.timeout

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Recommendations] request %s: %s", token, filters.Query().Encode())
		}

		ds, err := backend.Recommendations(ctx, filters)
		if err == nil && ds != nil {
			err = ds.Validate()
		}
		if err != nil {
			ds = nil
		}
		return RecommendationsMsg{Token: token, Filters: filters, Dataset: ds, Err: err}
	}
}

// Handle redraws the chart on success, with the fallback scores when the
// server had no data. On failure the current chart stays on screen and the
// error only goes to the debug log.
func (v *RecommendationView) Handle(msg RecommendationsMsg) bool {
	if msg.Err != nil {
		v.lastErr = msg.Err
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Recommendations] request %s failed: %v", msg.Token, msg.Err)
		}
		return false
	}

	v.lastErr = nil
	v.renderer.Render(v.target, msg.Dataset)
	return true
}

// LastError returns the most recent refresh failure, cleared by a success
func (v *RecommendationView) LastError() error {
	return v.lastErr
}
