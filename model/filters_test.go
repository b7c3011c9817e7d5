package model

import (
	"slices"
	"testing"
)

func TestParseLandSize(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"", 1},
		{"   ", 1},
		{"1", 1},
		{"2.5", 2.5},
		{" 3 ", 3},
		{"2.5 acres", 2.5},
		{"1e2", 100},
		{"1e", 1},
		{"-1", -1},
		{".5", 0.5},
		{"0", 0},
		{"abc", 0},
		{".", 0},
	}

	for _, tt := range tests {
		if got := ParseLandSize(tt.value); got != tt.want {
			t.Errorf("ParseLandSize(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFiltersQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{
			name:    "empty filters send nothing",
			filters: Filters{},
			want:    "",
		},
		{
			name:    "zero land size is omitted",
			filters: Filters{Soil: "Clay", LandSize: 0},
			want:    "soil=Clay",
		},
		{
			name:    "climate condition is never sent",
			filters: Filters{ClimateCondition: "Drought"},
			want:    "",
		},
		{
			name:    "defaults send land size only",
			filters: DefaultFilters(),
			want:    "land_size=1",
		},
		{
			name: "all fields",
			filters: Filters{
				Soil:     "Black",
				Month:    "June",
				Season:   "Kharif",
				LandType: "Rainfed",
				LandSize: 2.5,
			},
			want: "land_size=2.5&land_type=Rainfed&month=June&season=Kharif&soil=Black",
		},
		{
			name:    "values with spaces are escaped",
			filters: Filters{LandType: "Dry Land"},
			want:    "land_type=Dry+Land",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filters.Query().Encode(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFiltersIsEmpty(t *testing.T) {
	if !(Filters{}).IsEmpty() {
		t.Error("zero Filters should be empty")
	}
	if DefaultFilters().IsEmpty() {
		t.Error("default Filters carry a land size")
	}
	if (Filters{ClimateCondition: "Flood"}).IsEmpty() {
		t.Error("climate condition alone should count as a constraint")
	}
}

func TestMemoryFormSelectors(t *testing.T) {
	form := NewFilterForm()

	if v, ok := form.Value(ControlLandSize); !ok || v != DefaultLandSize {
		t.Errorf("land-size = %q, %v; want %q, true", v, ok, DefaultLandSize)
	}

	opts, ok := form.Options(ControlClimate)
	if !ok || !slices.Equal(opts, []string{"Drought", "Flood"}) {
		t.Errorf("climate options = %v, %v", opts, ok)
	}

	if form.SetValue(ControlSoilType, "Clay") {
		t.Error("selector accepted a value before options were loaded")
	}

	form.ReplaceOptions(ControlSoilType, []string{"Clay", "Sandy"})
	if !form.SetValue(ControlSoilType, "Clay") {
		t.Fatal("selector rejected a loaded option")
	}

	// Reloading without the selected value falls back to the sentinel
	form.ReplaceOptions(ControlSoilType, []string{"Sandy"})
	if v, _ := form.Value(ControlSoilType); v != "" {
		t.Errorf("soil-type = %q after its option disappeared, want empty", v)
	}

	if got := form.Sentinel(ControlSoilType); got != "Any Soil Type" {
		t.Errorf("Sentinel = %q", got)
	}
}

func TestMemoryFormAbsentControls(t *testing.T) {
	form := NewFilterForm()
	form.Remove(ControlMonth)

	if _, ok := form.Value(ControlMonth); ok {
		t.Error("removed control still reports a value")
	}
	if form.SetValue(ControlMonth, "June") {
		t.Error("write to removed control succeeded")
	}
	if form.ReplaceOptions(ControlMonth, []string{"June"}) {
		t.Error("option replace on removed control succeeded")
	}
	if form.ReplaceOptions(ControlLandSize, []string{"1"}) {
		t.Error("text control accepted options")
	}
}
