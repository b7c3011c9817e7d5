package model_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"farmbot/model"
	"farmbot/model/testutil"
)

func TestInitLoadsOptionsAndChart(t *testing.T) {
	backend := testutil.NewMockBackend()
	form := model.NewFilterForm()
	ctrl := model.NewController(backend, form, model.ControllerOptions{})
	ctrl.Tips = nil
	canvas := &testutil.FakeCanvas{}
	ctrl.Renderer.Attach(model.ControlCropChart, canvas)

	ctrl.Settle(ctrl.Init())

	for field, want := range testutil.TestOptions() {
		got, _ := form.Options(field.Control())
		if !slices.Equal(got, want) {
			t.Errorf("%s options = %v, want %v", field, got, want)
		}
		if !ctrl.Options.Loaded(field) {
			t.Errorf("%s not marked loaded", field)
		}
	}

	calls := backend.RecommendationCalls()
	if len(calls) != 1 || calls[0] != (model.Filters{}) {
		t.Fatalf("recommendation calls = %+v, want one unfiltered call", calls)
	}

	// Placeholder chart, then the server's
	if len(canvas.Created) != 2 || canvas.Destroyed != 1 || len(canvas.Live()) != 1 {
		t.Fatalf("created=%d destroyed=%d live=%d", len(canvas.Created), canvas.Destroyed, len(canvas.Live()))
	}
	if got := canvas.Created[0].Dataset; !slices.Equal(got.Labels, model.FallbackDataset().Labels) {
		t.Errorf("first chart labels = %v, want fallback", got.Labels)
	}
	last, _ := canvas.Last()
	if !slices.Equal(last.Dataset.Labels, testutil.TestDataset().Labels) {
		t.Errorf("live chart labels = %v", last.Dataset.Labels)
	}
}

func TestOptionsFailureIsolated(t *testing.T) {
	backend := testutil.NewMockBackend()
	backend.OptionsFunc = func(ctx context.Context, field model.OptionField) ([]string, error) {
		if field == model.FieldMonth {
			return nil, errors.New("server error")
		}
		return testutil.TestOptions()[field], nil
	}
	form := model.NewFilterForm()
	form.ReplaceOptions(model.ControlMonth, []string{"Existing"})
	ctrl := model.NewController(backend, form, model.ControllerOptions{})

	ctrl.Settle(ctrl.Options.LoadAll())

	if got, _ := form.Options(model.ControlMonth); !slices.Equal(got, []string{"Existing"}) {
		t.Errorf("month options = %v, want untouched", got)
	}
	if ctrl.Options.Loaded(model.FieldMonth) {
		t.Error("failed field marked loaded")
	}

	for _, field := range []model.OptionField{model.FieldSoilType, model.FieldSeason, model.FieldLandType} {
		got, _ := form.Options(field.Control())
		if !slices.Equal(got, testutil.TestOptions()[field]) {
			t.Errorf("%s options = %v", field, got)
		}
	}

	if n := len(backend.OptionCalls()); n != 4 {
		t.Errorf("got %d option requests, want 4", n)
	}
}

func TestOptionsMissingSelector(t *testing.T) {
	backend := testutil.NewMockBackend()
	form := model.NewFilterForm()
	form.Remove(model.ControlSeason)
	ctrl := model.NewController(backend, form, model.ControllerOptions{})

	ctrl.Settle(ctrl.Options.LoadAll())

	if ctrl.Options.Loaded(model.FieldSeason) {
		t.Error("season loaded without a selector")
	}
	if !ctrl.Options.Loaded(model.FieldSoilType) {
		t.Error("soil type not loaded")
	}
}

func TestApplyFilters(t *testing.T) {
	backend := testutil.NewMockBackend()
	ctrl, form := newTestController(backend)
	canvas := &testutil.FakeCanvas{}
	ctrl.Renderer.Attach(model.ControlCropChart, canvas)

	form.SetValue(model.ControlSoilType, "Clay")
	form.SetValue(model.ControlSeason, "Rabi")
	form.SetValue(model.ControlLandSize, "3")
	form.SetValue(model.ControlClimate, "Drought")

	cmd := ctrl.ApplyFilters()

	entries := ctrl.Chat.Entries()
	if len(entries) != 2 || entries[0].Text != model.ApplyFiltersMessage || entries[1].Kind != model.EntryTyping {
		t.Fatalf("entries before reply = %+v", entries)
	}

	ctrl.Settle(cmd)

	want := model.Filters{Soil: "Clay", Season: "Rabi", LandSize: 3, ClimateCondition: "Drought"}

	chats := backend.ChatCalls()
	if len(chats) != 1 || chats[0].Message != model.ApplyFiltersMessage || chats[0].Filters != want {
		t.Errorf("chat calls = %+v", chats)
	}
	recs := backend.RecommendationCalls()
	if len(recs) != 1 || recs[0] != want {
		t.Errorf("recommendation calls = %+v", recs)
	}
	if len(canvas.Live()) != 1 {
		t.Errorf("live charts = %d, want 1", len(canvas.Live()))
	}
	if ctrl.Chat.Typing() {
		t.Error("typing indicator left behind")
	}
}

func TestResetFilters(t *testing.T) {
	backend := testutil.NewMockBackend()
	ctrl, form := newTestController(backend)
	canvas := &testutil.FakeCanvas{}
	ctrl.Renderer.Attach(model.ControlCropChart, canvas)
	ctrl.Renderer.Render(model.ControlCropChart, nil)

	form.SetValue(model.ControlSoilType, "Black")
	form.SetValue(model.ControlMonth, "June")
	form.SetValue(model.ControlSeason, "Kharif")
	form.SetValue(model.ControlLandType, "Upland")
	form.SetValue(model.ControlLandSize, "7")
	form.SetValue(model.ControlClimate, "Flood")

	ctrl.Settle(ctrl.ResetFilters())

	for _, id := range []model.ControlID{model.ControlSoilType, model.ControlMonth, model.ControlSeason, model.ControlLandType, model.ControlClimate} {
		if v, _ := form.Value(id); v != "" {
			t.Errorf("%s = %q after reset", id, v)
		}
	}
	if v, _ := form.Value(model.ControlLandSize); v != model.DefaultLandSize {
		t.Errorf("land-size = %q after reset", v)
	}

	// The refresh ignores the reset land size of 1
	recs := backend.RecommendationCalls()
	if len(recs) != 1 || recs[0] != (model.Filters{}) {
		t.Fatalf("recommendation calls = %+v", recs)
	}
	if recs[0].Query().Encode() != "" {
		t.Errorf("reset query = %q, want empty", recs[0].Query().Encode())
	}

	if canvas.Destroyed != 1 || len(canvas.Live()) != 1 {
		t.Errorf("destroyed=%d live=%d, want 1 and 1", canvas.Destroyed, len(canvas.Live()))
	}
	if len(backend.ChatCalls()) != 0 {
		t.Error("reset should not talk to the chat endpoint")
	}
}

func TestRefreshFailureKeepsChart(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ctx context.Context, filters model.Filters) (*model.ChartDataset, error)
	}{
		{
			name: "request error",
			fn: func(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
				return nil, errors.New("status 500")
			},
		},
		{
			name: "misaligned data",
			fn: func(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
				return &model.ChartDataset{Labels: []string{"Rice", "Wheat"}, Values: []float64{1}}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewMockBackend()
			backend.RecommendationsFunc = tt.fn
			ctrl, _ := newTestController(backend)
			canvas := &testutil.FakeCanvas{}
			ctrl.Renderer.Attach(model.ControlCropChart, canvas)
			ctrl.Renderer.Render(model.ControlCropChart, nil)

			ctrl.Settle(ctrl.Recs.Refresh(model.Filters{Soil: "Clay"}))

			if canvas.Destroyed != 0 || len(canvas.Created) != 1 {
				t.Errorf("chart changed: created=%d destroyed=%d", len(canvas.Created), canvas.Destroyed)
			}
			if ctrl.Recs.LastError() == nil {
				t.Error("LastError not set")
			}
		})
	}
}

func TestRefreshWithoutDataDrawsFallback(t *testing.T) {
	backend := testutil.NewMockBackend()
	ctrl, _ := newTestController(backend)
	canvas := &testutil.FakeCanvas{}
	ctrl.Renderer.Attach(model.ControlCropChart, canvas)

	ctrl.Settle(ctrl.Recs.Refresh(model.Filters{}))
	if spec, _ := canvas.Last(); !slices.Equal(spec.Dataset.Labels, testutil.TestDataset().Labels) {
		t.Fatalf("first chart labels = %v", spec.Dataset.Labels)
	}

	backend.RecommendationsFunc = func(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
		return nil, nil
	}
	ctrl.Settle(ctrl.Recs.Refresh(model.Filters{Soil: "Clay"}))

	spec, ok := canvas.Last()
	want := model.FallbackDataset()
	if !ok || !slices.Equal(spec.Dataset.Labels, want.Labels) || !slices.Equal(spec.Dataset.Values, want.Values) {
		t.Errorf("chart = %+v, want fallback %+v", spec.Dataset, want)
	}
	if len(canvas.Live()) != 1 || canvas.Destroyed != 1 {
		t.Errorf("live=%d destroyed=%d, want 1 and 1", len(canvas.Live()), canvas.Destroyed)
	}
	if err := ctrl.Recs.LastError(); err != nil {
		t.Errorf("LastError = %v", err)
	}
}

func TestCurrentFiltersWithAbsentControls(t *testing.T) {
	backend := testutil.NewMockBackend()
	ctrl := model.NewController(backend, model.NewMemoryForm(), model.ControllerOptions{})

	if got := ctrl.CurrentFilters(); got != model.DefaultFilters() {
		t.Errorf("CurrentFilters() = %+v, want defaults", got)
	}

	// Writes to missing controls are ignored
	ctrl.Settle(ctrl.ResetFilters())
	ctrl.Settle(ctrl.SubmitChat("still works"))
	if n := len(ctrl.Chat.Entries()); n != 2 {
		t.Errorf("got %d entries, want 2", n)
	}
}

func TestCurrentFiltersUnparseableLandSize(t *testing.T) {
	backend := testutil.NewMockBackend()
	ctrl, form := newTestController(backend)
	form.SetValue(model.ControlLandSize, "lots")

	got := ctrl.CurrentFilters()
	if got.LandSize != 0 {
		t.Errorf("LandSize = %v, want 0", got.LandSize)
	}
	if _, ok := got.Query()["land_size"]; ok {
		t.Error("unparseable land size should be omitted")
	}
}
