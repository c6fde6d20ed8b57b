package model

// Calibration run statuses.
const (
	CalibrationOK               = "ok"
	CalibrationInsufficientData = "insufficient_data"
)

// Distribution is the percentile summary of one metric's sample.
type Distribution struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CalibrationSuggestion is the data-derived scale and weight proposal for one
// metric. Adoption is up to the caller; nothing is written back to profiles.
type CalibrationSuggestion struct {
	Metric          string       `json:"metric"`
	DataSource      string       `json:"data_source"`
	LowerIsBetter   bool         `json:"lower_is_better"`
	SampleSize      int          `json:"sample_size"`
	Distribution    Distribution `json:"distribution"`
	SuggestedScale  []ScaleRule  `json:"suggested_scale"`
	SuggestedWeight float64      `json:"suggested_weight"`
}

// CalibrationResult is the outcome of a calibration run. When Status is
// insufficient_data, Count carries the observed action count and Suggestions
// is empty; partial calibration is never attempted.
type CalibrationResult struct {
	Status       string                  `json:"status"`
	Message      string                  `json:"message,omitempty"`
	Count        int                     `json:"count"`
	ActionType   string                  `json:"action_type,omitempty"`
	LookbackDays int                     `json:"lookback_days"`
	Suggestions  []CalibrationSuggestion `json:"suggestions"`
}
