package model

import "time"

type ChatResponseMsg struct {
	Token   string
	Reply   string
	Err     error
	Elapsed time.Duration
}

type OptionsLoadedMsg struct {
	Field   OptionField
	Options []string
	Err     error
}

type RecommendationsMsg struct {
	Token   string
	Filters Filters
	Dataset *ChartDataset
	Err     error
}

type TipTickMsg struct{}
