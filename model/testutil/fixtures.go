package testutil

import "farmbot/model"

// TestOptions returns option lists shaped like the server's
func TestOptions() map[model.OptionField][]string {
	return map[model.OptionField][]string{
		model.FieldSoilType: {"Alluvial", "Black", "Clay", "Loamy", "Red", "Sandy"},
		model.FieldMonth:    {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		model.FieldSeason:   {"Kharif", "Rabi", "Zaid"},
		model.FieldLandType: {"Irrigated", "Rainfed", "Upland"},
	}
}

// TestDataset returns a server-style score set that differs from the
// fallback
func TestDataset() model.ChartDataset {
	return model.ChartDataset{
		Labels: []string{"Paddy", "Groundnut", "Millet"},
		Values: []float64{88, 64.5, 71},
	}
}

// LoadedForm returns a filter form with every server-backed selector
// populated from TestOptions
func LoadedForm() *model.MemoryForm {
	form := model.NewFilterForm()
	for field, opts := range TestOptions() {
		form.ReplaceOptions(field.Control(), opts)
	}
	return form
}
