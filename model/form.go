package model

import "slices"

// Form is the set of named controls the controller reads and writes. A
// front-end may lay out only some of them; absent controls report ok=false
// and writes to them are ignored.
type Form interface {
	Value(id ControlID) (string, bool)
	SetValue(id ControlID, value string) bool
	ReplaceOptions(id ControlID, options []string) bool
}

// SelectorSpec describes a dropdown filter control
type SelectorSpec struct {
	ID       ControlID
	Label    string
	Sentinel string      // label of the leading "no constraint" choice
	Field    OptionField // empty when the options are fixed
	Fixed    []string
}

// FilterSelectors lists the dropdowns in display order
var FilterSelectors = []SelectorSpec{
	{ID: ControlSoilType, Label: "Soil Type", Sentinel: "Any Soil Type", Field: FieldSoilType},
	{ID: ControlMonth, Label: "Month", Sentinel: "Any Month", Field: FieldMonth},
	{ID: ControlSeason, Label: "Season", Sentinel: "Any Season", Field: FieldSeason},
	{ID: ControlLandType, Label: "Land Type", Sentinel: "Any Land Type", Field: FieldLandType},
	{ID: ControlClimate, Label: "Climate Condition", Sentinel: "Any Condition", Fixed: []string{"Drought", "Flood"}},
}

// SelectorFor returns the spec of a dropdown control
func SelectorFor(id ControlID) (SelectorSpec, bool) {
	for _, s := range FilterSelectors {
		if s.ID == id {
			return s, true
		}
	}
	return SelectorSpec{}, false
}

// Control is one entry of a MemoryForm
type Control struct {
	Value    string
	Selector bool
	Sentinel string
	Options  []string // selectable values after the sentinel
}

// MemoryForm is a map-backed Form. Selector controls only hold "" or one of
// their current options.
type MemoryForm struct {
	controls map[ControlID]*Control
}

func NewMemoryForm() *MemoryForm {
	return &MemoryForm{controls: make(map[ControlID]*Control)}
}

// NewFilterForm declares the chat input and all six filter controls with
// their startup values.
func NewFilterForm() *MemoryForm {
	f := NewMemoryForm()
	f.DeclareText(ControlUserInput, "")
	for _, s := range FilterSelectors {
		f.DeclareSelector(s.ID, s.Sentinel, s.Fixed)
	}
	f.DeclareText(ControlLandSize, DefaultLandSize)
	return f
}

func (f *MemoryForm) DeclareText(id ControlID, value string) {
	f.controls[id] = &Control{Value: value}
}

func (f *MemoryForm) DeclareSelector(id ControlID, sentinel string, options []string) {
	f.controls[id] = &Control{
		Selector: true,
		Sentinel: sentinel,
		Options:  slices.Clone(options),
	}
}

// Remove drops a control, as if the page never rendered it
func (f *MemoryForm) Remove(id ControlID) {
	delete(f.controls, id)
}

func (f *MemoryForm) Has(id ControlID) bool {
	_, ok := f.controls[id]
	return ok
}

func (f *MemoryForm) Value(id ControlID) (string, bool) {
	c, ok := f.controls[id]
	if !ok {
		return "", false
	}
	return c.Value, true
}

func (f *MemoryForm) SetValue(id ControlID, value string) bool {
	c, ok := f.controls[id]
	if !ok {
		return false
	}
	if c.Selector && value != "" && !slices.Contains(c.Options, value) {
		return false
	}
	c.Value = value
	return true
}

// ReplaceOptions swaps a selector's choices, keeping its sentinel first. A
// selected value that is no longer offered falls back to the sentinel.
func (f *MemoryForm) ReplaceOptions(id ControlID, options []string) bool {
	c, ok := f.controls[id]
	if !ok || !c.Selector {
		return false
	}
	c.Options = slices.Clone(options)
	if c.Value != "" && !slices.Contains(c.Options, c.Value) {
		c.Value = ""
	}
	return true
}

// Options returns a selector's choices, sentinel excluded
func (f *MemoryForm) Options(id ControlID) ([]string, bool) {
	c, ok := f.controls[id]
	if !ok || !c.Selector {
		return nil, false
	}
	return slices.Clone(c.Options), true
}

// Sentinel returns the label of a selector's leading "any" choice
func (f *MemoryForm) Sentinel(id ControlID) string {
	if c, ok := f.controls[id]; ok {
		return c.Sentinel
	}
	return ""
}
