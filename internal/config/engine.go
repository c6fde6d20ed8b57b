package config

import (
	"os"
	"strconv"
)

// EngineConfig bounds the scoring and analytics runs so one request can
// never scan an unbounded history.
type EngineConfig struct {
	// MaxBatchSize caps how many actions one batch scoring call accepts.
	MaxBatchSize int `json:"maxBatchSize"`

	// CalibrationLookbackDays is the default history window for calibration.
	CalibrationLookbackDays int `json:"calibrationLookbackDays"`

	// CalibrationMaxActions caps the sample fetched for one calibration run.
	CalibrationMaxActions int `json:"calibrationMaxActions"`

	// VelocityLookbackDays is the default episode window for velocity runs.
	VelocityLookbackDays int `json:"velocityLookbackDays"`

	// BackfillLookbackDays is how far back episode backfill scans actions.
	BackfillLookbackDays int `json:"backfillLookbackDays"`

	// BackfillMaxActions caps the actions one backfill run converts.
	BackfillMaxActions int `json:"backfillMaxActions"`
}

// DefaultEngineConfig returns the default engine limits
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxBatchSize:            getEnvIntOrDefault("ENGINE_MAX_BATCH", 100),
		CalibrationLookbackDays: getEnvIntOrDefault("ENGINE_CALIBRATION_LOOKBACK_DAYS", 30),
		CalibrationMaxActions:   getEnvIntOrDefault("ENGINE_CALIBRATION_MAX_ACTIONS", 5000),
		VelocityLookbackDays:    getEnvIntOrDefault("ENGINE_VELOCITY_LOOKBACK_DAYS", 30),
		BackfillLookbackDays:    getEnvIntOrDefault("ENGINE_BACKFILL_LOOKBACK_DAYS", 14),
		BackfillMaxActions:      getEnvIntOrDefault("ENGINE_BACKFILL_MAX_ACTIONS", 2000),
	}
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
