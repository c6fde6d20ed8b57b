package scoring

import (
	"testing"

	"agentops/internal/model"
)

func fp(v float64) *float64 { return &v }

func dims(pairs ...[2]float64) []model.DimensionResult {
	out := make([]model.DimensionResult, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, model.DimensionResult{
			DimensionID: string(rune('a' + i)),
			Weight:      p[0],
			Score:       fp(p[1]),
		})
	}
	return out
}

func TestCompositeWeightedAverageEvenWeights(t *testing.T) {
	got := Composite(dims([2]float64{2, 100}, [2]float64{2, 0}), model.MethodWeightedAverage)
	if got == nil || *got != 50.0 {
		t.Errorf("expected even-weight midpoint 50.0, got %v", got)
	}
}

func TestCompositeWeightedAverage(t *testing.T) {
	got := Composite(dims([2]float64{1, 100}, [2]float64{1, 20}), model.MethodWeightedAverage)
	if got == nil || *got != 60.0 {
		t.Errorf("expected 60.0, got %v", got)
	}

	got = Composite(dims([2]float64{3, 100}, [2]float64{1, 0}), model.MethodWeightedAverage)
	if got == nil || *got != 75.0 {
		t.Errorf("expected 75.0 for 3:1 weights, got %v", got)
	}
}

func TestCompositeMissingDimensionRenormalizes(t *testing.T) {
	results := []model.DimensionResult{
		{DimensionID: "a", Weight: 1, Score: fp(80)},
		{DimensionID: "b", Weight: 5, Score: nil},
		{DimensionID: "c", Weight: 1, Score: fp(40)},
	}
	got := Composite(results, model.MethodWeightedAverage)
	want := Composite(dims([2]float64{1, 80}, [2]float64{1, 40}), model.MethodWeightedAverage)
	if got == nil || want == nil || *got != *want {
		t.Errorf("missing dimension diluted the composite: got %v, want %v", got, want)
	}
}

func TestCompositeAllMissing(t *testing.T) {
	results := []model.DimensionResult{
		{DimensionID: "a", Weight: 1, Score: nil},
		{DimensionID: "b", Weight: 1, Score: nil},
	}
	if got := Composite(results, model.MethodWeightedAverage); got != nil {
		t.Errorf("expected nil composite when nothing scored, got %v", *got)
	}
}

func TestCompositeMinimum(t *testing.T) {
	got := Composite(dims([2]float64{1, 90}, [2]float64{10, 35}, [2]float64{1, 60}), model.MethodMinimum)
	if got == nil || *got != 35 {
		t.Errorf("expected minimum 35, got %v", got)
	}
	// Minimum never exceeds any scored dimension.
	for _, d := range dims([2]float64{1, 90}, [2]float64{10, 35}, [2]float64{1, 60}) {
		if *got > *d.Score {
			t.Errorf("minimum composite %v exceeds dimension score %v", *got, *d.Score)
		}
	}
}

func TestCompositeGeometricMeanZeroCollapse(t *testing.T) {
	got := Composite(dims([2]float64{1, 100}, [2]float64{1, 0}, [2]float64{1, 95}), model.MethodGeometricMean)
	if got == nil || *got != 0 {
		t.Errorf("expected geometric mean to collapse to 0, got %v", got)
	}
}

func TestCompositeGeometricMeanEqualScores(t *testing.T) {
	got := Composite(dims([2]float64{1, 80}, [2]float64{3, 80}), model.MethodGeometricMean)
	if got == nil || *got != 80.0 {
		t.Errorf("expected geometric mean of equal scores to be 80, got %v", got)
	}
}

func TestCompositeZeroWeightExcludedFromAverage(t *testing.T) {
	got := Composite(dims([2]float64{0, 10}, [2]float64{1, 90}), model.MethodWeightedAverage)
	if got == nil || *got != 90.0 {
		t.Errorf("expected zero-weight dimension to contribute nothing, got %v", got)
	}
}

func TestCompositeUnknownMethod(t *testing.T) {
	if got := Composite(dims([2]float64{1, 50}), "median"); got != nil {
		t.Errorf("expected nil for unknown method, got %v", *got)
	}
}
