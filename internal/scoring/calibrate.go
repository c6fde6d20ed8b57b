package scoring

import (
	"fmt"
	"math"
	"sort"

	"agentops/internal/model"
)

// minCalibrationActions is the floor under which calibration refuses to run
// at all; minMetricSamples is the per-metric floor under which a metric is
// silently left out of the suggestions.
const (
	minCalibrationActions = 10
	minMetricSamples      = 5
)

// CalibrationMetrics is the default metric set: the five canonical telemetry
// sources. Metadata and custom-expression sources are deliberately not
// calibratable - their value spaces are operator-defined.
var CalibrationMetrics = []string{
	model.SourceDurationMS,
	model.SourceCostEstimate,
	model.SourceTokensTotal,
	model.SourceRiskScore,
	model.SourceConfidence,
}

var defaultWeights = map[string]float64{
	model.SourceDurationMS:   0.2,
	model.SourceCostEstimate: 0.2,
	model.SourceTokensTotal:  0.1,
	model.SourceRiskScore:    0.3,
	model.SourceConfidence:   0.2,
}

const fallbackWeight = 0.15

// Calibrate derives suggested scales and weights from the distribution of
// historical actions. With fewer than 10 actions it returns an
// insufficient_data result carrying the observed count - partial calibration
// over a thin sample would only encode noise.
func Calibrate(actions []*model.ActionRecord, metrics []string, lookbackDays int) *model.CalibrationResult {
	if len(metrics) == 0 {
		metrics = CalibrationMetrics
	}

	if len(actions) < minCalibrationActions {
		return &model.CalibrationResult{
			Status:       model.CalibrationInsufficientData,
			Message:      fmt.Sprintf("need at least %d actions, found %d", minCalibrationActions, len(actions)),
			Count:        len(actions),
			LookbackDays: lookbackDays,
			Suggestions:  []model.CalibrationSuggestion{},
		}
	}

	suggestions := make([]model.CalibrationSuggestion, 0, len(metrics))
	for _, metric := range metrics {
		values := metricValues(actions, metric)
		if len(values) < minMetricSamples {
			continue
		}
		sort.Float64s(values)

		dist := model.Distribution{
			P10: Percentile(values, 10),
			P25: Percentile(values, 25),
			P50: Percentile(values, 50),
			P75: Percentile(values, 75),
			P90: Percentile(values, 90),
			Min: values[0],
			Max: values[len(values)-1],
		}

		lowerIsBetter := metric != model.SourceConfidence
		suggestions = append(suggestions, model.CalibrationSuggestion{
			Metric:          metric,
			DataSource:      metric,
			LowerIsBetter:   lowerIsBetter,
			SampleSize:      len(values),
			Distribution:    dist,
			SuggestedScale:  suggestedScale(dist, lowerIsBetter),
			SuggestedWeight: defaultWeight(metric),
		})
	}

	return &model.CalibrationResult{
		Status:       model.CalibrationOK,
		Count:        len(actions),
		LookbackDays: lookbackDays,
		Suggestions:  suggestions,
	}
}

// metricValues extracts one metric across the history, dropping missing and
// non-finite samples.
func metricValues(actions []*model.ActionRecord, metric string) []float64 {
	values := make([]float64, 0, len(actions))
	for _, a := range actions {
		var v *float64
		switch metric {
		case model.SourceDurationMS:
			v = a.DurationMS
		case model.SourceCostEstimate:
			v = a.CostEstimate
		case model.SourceTokensTotal:
			if a.PromptTokens != nil || a.CompletionTokens != nil {
				sum := 0.0
				if a.PromptTokens != nil {
					sum += *a.PromptTokens
				}
				if a.CompletionTokens != nil {
					sum += *a.CompletionTokens
				}
				v = &sum
			}
		case model.SourceRiskScore:
			v = a.RiskScore
		case model.SourceConfidence:
			v = a.Confidence
		}
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		values = append(values, *v)
	}
	return values
}

// Percentile computes pct over an ascending-sorted sample with linear
// interpolation: index = pct/100 * (n-1), interpolated between neighbors.
func Percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := pct / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(idx-float64(lo))
}

// suggestedScale anchors four tiers at p25/p50/p75 with fixed scores,
// oriented by the metric's direction of goodness.
func suggestedScale(d model.Distribution, lowerIsBetter bool) []model.ScaleRule {
	p25 := round2(d.P25)
	p50 := round2(d.P50)
	p75 := round2(d.P75)

	if lowerIsBetter {
		return []model.ScaleRule{
			{Label: "excellent", Operator: model.OpLTE, Value: p25, Score: 100},
			{Label: "good", Operator: model.OpLTE, Value: p50, Score: 75},
			{Label: "acceptable", Operator: model.OpLTE, Value: p75, Score: 50},
			{Label: "poor", Operator: model.OpGT, Value: p75, Score: 20},
		}
	}
	return []model.ScaleRule{
		{Label: "excellent", Operator: model.OpGTE, Value: p75, Score: 100},
		{Label: "good", Operator: model.OpGTE, Value: p50, Score: 75},
		{Label: "acceptable", Operator: model.OpGTE, Value: p25, Score: 50},
		{Label: "poor", Operator: model.OpLT, Value: p25, Score: 20},
	}
}

func defaultWeight(metric string) float64 {
	if w, ok := defaultWeights[metric]; ok {
		return w
	}
	return fallbackWeight
}
