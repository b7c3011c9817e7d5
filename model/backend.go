package model

import "context"

// OptionField identifies an enumerated filter field on the server
type OptionField string

const (
	FieldSoilType OptionField = "SOIL TYPE"
	FieldMonth    OptionField = "MONTH"
	FieldSeason   OptionField = "SEASON"
	FieldLandType OptionField = "LAND TYPE"
)

// OptionFields lists the fields loaded at startup
var OptionFields = []OptionField{FieldSoilType, FieldMonth, FieldSeason, FieldLandType}

// Control returns the selector populated from this field
func (f OptionField) Control() ControlID {
	switch f {
	case FieldSoilType:
		return ControlSoilType
	case FieldMonth:
		return ControlMonth
	case FieldSeason:
		return ControlSeason
	case FieldLandType:
		return ControlLandType
	}
	return ""
}

// Backend is the crop recommendation server.
//
// Defined here rather than in the backend package so the HTTP client can use
// model types without an import cycle.
type Backend interface {
	// Options returns the valid values of an enumerated filter field, in order.
	Options(ctx context.Context, field OptionField) ([]string, error)

	// Chat sends a free-text question along with the current filters and
	// returns the bot's reply.
	Chat(ctx context.Context, message string, filters Filters) (string, error)

	// Recommendations returns suitability scores for the given filters. A nil
	// dataset with a nil error means the server had no data.
	Recommendations(ctx context.Context, filters Filters) (*ChartDataset, error)
}
