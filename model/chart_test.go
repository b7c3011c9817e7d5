package model_test

import (
	"slices"
	"testing"

	"farmbot/model"
	"farmbot/model/testutil"
)

func TestRenderWithoutCanvas(t *testing.T) {
	r := model.NewChartRenderer(model.ChartBar)

	r.Render(model.ControlCropChart, nil)

	if _, ok := r.Current(model.ControlCropChart); ok {
		t.Error("chart created without a canvas")
	}
}

func TestRenderDestroysBeforeReplace(t *testing.T) {
	r := model.NewChartRenderer("")
	canvas := &testutil.FakeCanvas{}
	r.Attach(model.ControlCropChart, canvas)

	if r.Kind() != model.ChartBar {
		t.Errorf("default kind = %q", r.Kind())
	}

	r.Render(model.ControlCropChart, nil)
	first, _ := r.Current(model.ControlCropChart)

	ds := testutil.TestDataset()
	r.Render(model.ControlCropChart, &ds)

	if !first.(*testutil.FakeChart).Destroyed() {
		t.Error("previous chart not destroyed")
	}
	if canvas.Destroyed != 1 || len(canvas.Live()) != 1 {
		t.Errorf("destroyed=%d live=%d", canvas.Destroyed, len(canvas.Live()))
	}

	spec, _ := canvas.Last()
	if spec.Title != "Crop Suitability Score" || spec.Kind != model.ChartBar {
		t.Errorf("spec = %+v", spec)
	}

	// The renderer keeps its own copy
	ds.Values[0] = -1
	if spec.Dataset.Values[0] == -1 {
		t.Error("dataset aliased caller's slice")
	}
}

func TestRenderFallback(t *testing.T) {
	r := model.NewChartRenderer(model.ChartBar)
	canvas := &testutil.FakeCanvas{}
	r.Attach(model.ControlCropChart, canvas)

	r.Render(model.ControlCropChart, nil)

	spec, _ := canvas.Last()
	want := model.FallbackDataset()
	if !slices.Equal(spec.Dataset.Labels, want.Labels) || !slices.Equal(spec.Dataset.Values, want.Values) {
		t.Errorf("dataset = %+v, want fallback", spec.Dataset)
	}
}

func TestToggleKindRedraws(t *testing.T) {
	r := model.NewChartRenderer(model.ChartBar)
	canvas := &testutil.FakeCanvas{}
	r.Attach(model.ControlCropChart, canvas)
	ds := testutil.TestDataset()
	r.Render(model.ControlCropChart, &ds)

	if got := r.ToggleKind(); got != model.ChartRadar {
		t.Fatalf("ToggleKind() = %q", got)
	}

	spec, _ := canvas.Last()
	if spec.Kind != model.ChartRadar || !slices.Equal(spec.Dataset.Labels, ds.Labels) {
		t.Errorf("spec after toggle = %+v", spec)
	}
	if canvas.Destroyed != 1 || len(canvas.Live()) != 1 {
		t.Errorf("destroyed=%d live=%d", canvas.Destroyed, len(canvas.Live()))
	}

	r.ToggleKind()
	if r.Kind() != model.ChartBar {
		t.Errorf("kind = %q after second toggle", r.Kind())
	}
}

func TestToggleKindRedrawsEveryChartOnce(t *testing.T) {
	r := model.NewChartRenderer(model.ChartBar)
	targets := []model.ControlID{model.ControlCropChart, "yield-chart", "water-chart"}
	canvases := make(map[model.ControlID]*testutil.FakeCanvas)
	for _, id := range targets {
		canvases[id] = &testutil.FakeCanvas{}
		r.Attach(id, canvases[id])
		r.Render(id, nil)
	}

	r.ToggleKind()

	for id, canvas := range canvases {
		if len(canvas.Created) != 2 || canvas.Destroyed != 1 || len(canvas.Live()) != 1 {
			t.Errorf("%s: created=%d destroyed=%d live=%d, want 2, 1, 1",
				id, len(canvas.Created), canvas.Destroyed, len(canvas.Live()))
		}
		if spec, _ := canvas.Last(); spec.Kind != model.ChartRadar {
			t.Errorf("%s: kind = %q", id, spec.Kind)
		}
	}
}

func TestDatasetValidate(t *testing.T) {
	ok := testutil.TestDataset()
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	bad := model.ChartDataset{Labels: []string{"a"}}
	if err := bad.Validate(); err == nil {
		t.Error("misaligned dataset passed validation")
	}
}
