package model

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ControlID names a control on the page. The values are the element IDs the
// web template uses, kept so both front-ends share one vocabulary.
type ControlID string

const (
	ControlChatForm     ControlID = "chat-form"
	ControlUserInput    ControlID = "user-input"
	ControlChatMessages ControlID = "chat-messages"
	ControlApply        ControlID = "apply-filters"
	ControlReset        ControlID = "reset-filters"
	ControlSoilType     ControlID = "soil-type"
	ControlMonth        ControlID = "month"
	ControlSeason       ControlID = "season"
	ControlLandType     ControlID = "land-type"
	ControlLandSize     ControlID = "land-size"
	ControlClimate      ControlID = "climate-condition"
	ControlCropChart    ControlID = "cropChart"
	ControlTips         ControlID = "tips-carousel"
)

// DefaultLandSize is the land-size control's value after a reset, in acres
const DefaultLandSize = "1"

// Filters is a snapshot of the six filter controls. Empty strings and a zero
// land size mean "no constraint".
type Filters struct {
	Soil             string  `json:"soil"`
	Month            string  `json:"month"`
	Season           string  `json:"season"`
	LandType         string  `json:"land_type"`
	LandSize         float64 `json:"land_size"`
	ClimateCondition string  `json:"climate_condition"`
}

func DefaultFilters() Filters {
	return Filters{LandSize: 1}
}

// Query encodes the fields the recommendations endpoint understands. Falsy
// fields are left out entirely; climate condition is never sent.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Soil != "" {
		q.Set("soil", f.Soil)
	}
	if f.Month != "" {
		q.Set("month", f.Month)
	}
	if f.Season != "" {
		q.Set("season", f.Season)
	}
	if f.LandType != "" {
		q.Set("land_type", f.LandType)
	}
	if f.LandSize != 0 && !math.IsNaN(f.LandSize) {
		q.Set("land_size", strconv.FormatFloat(f.LandSize, 'f', -1, 64))
	}
	return q
}

// IsEmpty reports whether no field constrains the result
func (f Filters) IsEmpty() bool {
	return len(f.Query()) == 0 && f.ClimateCondition == ""
}

// ParseLandSize reads a land-size control value the way a browser number
// field is read: empty means the default of 1 acre, a leading number is taken
// ("2.5 acres" is 2.5), and anything unparseable becomes 0.
func ParseLandSize(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		value = DefaultLandSize
	}

	end := numericPrefix(value)
	for end > 0 {
		if v, err := strconv.ParseFloat(value[:end], 64); err == nil {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return 0
			}
			return v
		}
		end--
	}
	return 0
}

// numericPrefix returns the length of the longest prefix made of characters
// that can appear in a decimal float literal
func numericPrefix(s string) int {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c == '.':
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		case (c == 'e' || c == 'E') && i > 0:
		default:
			return i
		}
		i++
	}
	return i
}
