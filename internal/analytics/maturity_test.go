package analytics

import "testing"

func TestClassifyMaturityMaster(t *testing.T) {
	level, score := ClassifyMaturity(1000, 0.95, 90)
	if level != "master" {
		t.Errorf("expected master, got %q", level)
	}
	// 30 (volume capped) + 38 (rate) + 27 (quality) = 95
	if score != 95 {
		t.Errorf("expected maturity score 95, got %v", score)
	}
}

func TestClassifyMaturityEpisodeCountGates(t *testing.T) {
	// Excellent quality, thin history: volume gates advancement at developing
	// (40 episodes clears 10 but not competent's 50).
	level, score := ClassifyMaturity(40, 0.95, 90)
	if level != "developing" {
		t.Errorf("expected developing regardless of quality, got %q", level)
	}
	// The continuous score is a separate signal and stays high.
	if score <= 50 {
		t.Errorf("expected continuous score well above 50, got %v", score)
	}
}

func TestClassifyMaturityNovice(t *testing.T) {
	level, score := ClassifyMaturity(0, 0, 0)
	if level != "novice" {
		t.Errorf("expected novice, got %q", level)
	}
	if score != 0 {
		t.Errorf("expected score 0, got %v", score)
	}
}

func TestClassifyMaturityNoPartialCredit(t *testing.T) {
	// 600 episodes and expert-grade volume, but the success rate only clears
	// the competent bar.
	level, _ := ClassifyMaturity(600, 0.65, 90)
	if level != "competent" {
		t.Errorf("expected competent when success rate caps the tier, got %q", level)
	}
}

func TestClassifyMaturityBoundary(t *testing.T) {
	// Exactly on every threshold of a tier counts as holding it.
	level, _ := ClassifyMaturity(50, 0.6, 55)
	if level != "competent" {
		t.Errorf("expected competent at exact thresholds, got %q", level)
	}
}

func TestMaturityLevelsTable(t *testing.T) {
	levels := MaturityLevels()
	if len(levels) != 6 {
		t.Fatalf("expected 6 tiers, got %d", len(levels))
	}
	if levels[0].Level != "novice" || levels[5].Level != "master" {
		t.Errorf("expected novice..master ordering, got %q..%q", levels[0].Level, levels[5].Level)
	}
	for i := 1; i < len(levels); i++ {
		prev, cur := levels[i-1], levels[i]
		if cur.MinEpisodes <= prev.MinEpisodes ||
			cur.MinSuccessRate <= prev.MinSuccessRate ||
			cur.MinAvgScore <= prev.MinAvgScore {
			t.Errorf("thresholds not strictly increasing between %q and %q", prev.Level, cur.Level)
		}
	}

	// The returned slice is a copy; mutating it must not touch the table.
	levels[0].Level = "mutated"
	if MaturityLevels()[0].Level != "novice" {
		t.Error("MaturityLevels exposed internal state")
	}
}
