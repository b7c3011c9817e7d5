package testutil

import (
	"context"
	"sync"

	"farmbot/model"
)

// ChatCall records one MockBackend.Chat invocation
type ChatCall struct {
	Message string
	Filters model.Filters
}

// MockBackend implements model.Backend for testing
type MockBackend struct {
	// Configurable responses
	OptionsFunc         func(ctx context.Context, field model.OptionField) ([]string, error)
	ChatFunc            func(ctx context.Context, message string, filters model.Filters) (string, error)
	RecommendationsFunc func(ctx context.Context, filters model.Filters) (*model.ChartDataset, error)

	mu              sync.Mutex
	optionCalls     []model.OptionField
	chatCalls       []ChatCall
	recommendations []model.Filters
}

// NewMockBackend creates a mock backend with default implementations
func NewMockBackend() *MockBackend {
	mock := &MockBackend{}
	mock.OptionsFunc = mock.defaultOptions
	mock.ChatFunc = mock.defaultChat
	mock.RecommendationsFunc = mock.defaultRecommendations
	return mock
}

func (m *MockBackend) defaultOptions(ctx context.Context, field model.OptionField) ([]string, error) {
	return TestOptions()[field], nil
}

func (m *MockBackend) defaultChat(ctx context.Context, message string, filters model.Filters) (string, error) {
	return "Mock reply", nil
}

func (m *MockBackend) defaultRecommendations(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
	ds := TestDataset()
	return &ds, nil
}

func (m *MockBackend) Options(ctx context.Context, field model.OptionField) ([]string, error) {
	m.mu.Lock()
	m.optionCalls = append(m.optionCalls, field)
	m.mu.Unlock()
	return m.OptionsFunc(ctx, field)
}

func (m *MockBackend) Chat(ctx context.Context, message string, filters model.Filters) (string, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, ChatCall{Message: message, Filters: filters})
	m.mu.Unlock()
	return m.ChatFunc(ctx, message, filters)
}

func (m *MockBackend) Recommendations(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
	m.mu.Lock()
	m.recommendations = append(m.recommendations, filters)
	m.mu.Unlock()
	return m.RecommendationsFunc(ctx, filters)
}

func (m *MockBackend) OptionCalls() []model.OptionField {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.OptionField(nil), m.optionCalls...)
}

func (m *MockBackend) ChatCalls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatCall(nil), m.chatCalls...)
}

func (m *MockBackend) RecommendationCalls() []model.Filters {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Filters(nil), m.recommendations...)
}

// FakeCanvas implements model.Canvas and counts chart lifecycles
type FakeCanvas struct {
	Created   []model.ChartSpec
	Destroyed int
	charts    []*FakeChart
}

func (c *FakeCanvas) NewChart(spec model.ChartSpec) model.Chart {
	c.Created = append(c.Created, spec)
	chart := &FakeChart{canvas: c, Spec: spec}
	c.charts = append(c.charts, chart)
	return chart
}

// Live returns the charts not yet destroyed
func (c *FakeCanvas) Live() []*FakeChart {
	var live []*FakeChart
	for _, ch := range c.charts {
		if !ch.destroyed {
			live = append(live, ch)
		}
	}
	return live
}

// Last returns the spec of the most recently created chart
func (c *FakeCanvas) Last() (model.ChartSpec, bool) {
	if len(c.Created) == 0 {
		return model.ChartSpec{}, false
	}
	return c.Created[len(c.Created)-1], true
}

type FakeChart struct {
	Spec      model.ChartSpec
	canvas    *FakeCanvas
	destroyed bool
}

func (ch *FakeChart) Destroy() {
	if ch.destroyed {
		return
	}
	ch.destroyed = true
	ch.canvas.Destroyed++
}

func (ch *FakeChart) Destroyed() bool {
	return ch.destroyed
}
