package scoring

import (
	"testing"

	"agentops/internal/model"
)

func testAction() *model.ActionRecord {
	risk := 80.0
	dur := 500.0
	return &model.ActionRecord{
		ID:         "ar_1",
		AgentID:    "agent-1",
		ActionType: "delete",
		RiskScore:  &risk,
		DurationMS: &dur,
		Metadata: map[string]interface{}{
			"environment": "production",
			"irreversible": true,
			"result": map[string]interface{}{
				"latency": 120.5,
			},
			"note": "Touched Billing Tables",
		},
	}
}

func TestParseConditionOperators(t *testing.T) {
	cases := []struct {
		cond string
		op   string
	}{
		{"a == b", CondEQ},
		{"a != b", CondNE},
		{"a >= 1", CondGTE},
		{"a <= 1", CondLTE},
		{"a > 1", CondGT},
		{"a < 1", CondLT},
		{"a contains b", CondContains},
	}
	for _, c := range cases {
		parsed, err := ParseCondition(c.cond)
		if err != nil {
			t.Errorf("ParseCondition(%q) returned error: %v", c.cond, err)
			continue
		}
		if parsed.Op != c.op {
			t.Errorf("ParseCondition(%q) op = %q, want %q", c.cond, parsed.Op, c.op)
		}
	}
}

func TestParseConditionLiteralCoercion(t *testing.T) {
	cases := []struct {
		cond string
		want interface{}
	}{
		{"x == true", true},
		{"x == false", false},
		{"x == null", nil},
		{"x == 42", 42.0},
		{"x == 'delete'", "delete"},
		{`x == "delete"`, "delete"},
		{"x == bare", "bare"},
	}
	for _, c := range cases {
		parsed, err := ParseCondition(c.cond)
		if err != nil {
			t.Errorf("ParseCondition(%q) returned error: %v", c.cond, err)
			continue
		}
		if parsed.Value != c.want {
			t.Errorf("ParseCondition(%q) value = %#v, want %#v", c.cond, parsed.Value, c.want)
		}
	}
}

func TestParseConditionMalformed(t *testing.T) {
	for _, cond := range []string{"", "   ", "no operator here", "== value", "field =="} {
		if _, err := ParseCondition(cond); err == nil {
			t.Errorf("ParseCondition(%q) expected error, got nil", cond)
		}
	}
}

func TestEvalEquality(t *testing.T) {
	action := testAction()

	cond, _ := ParseCondition("action_type == 'delete'")
	if !cond.Eval(action) {
		t.Error("expected action_type == 'delete' to match")
	}

	cond, _ = ParseCondition("action_type != 'delete'")
	if cond.Eval(action) {
		t.Error("expected action_type != 'delete' not to match")
	}
}

func TestEvalMetadataPath(t *testing.T) {
	action := testAction()

	cond, _ := ParseCondition("metadata.environment == 'production'")
	if !cond.Eval(action) {
		t.Error("expected metadata.environment match")
	}

	cond, _ = ParseCondition("metadata.irreversible == true")
	if !cond.Eval(action) {
		t.Error("expected boolean metadata match")
	}

	cond, _ = ParseCondition("metadata.result.latency > 100")
	if !cond.Eval(action) {
		t.Error("expected nested numeric comparison to match")
	}

	cond, _ = ParseCondition("metadata.missing == 'x'")
	if cond.Eval(action) {
		t.Error("expected unresolvable path not to match")
	}
}

func TestEvalNumericComparisons(t *testing.T) {
	action := testAction()
	cases := []struct {
		cond string
		want bool
	}{
		{"risk_score > 50", true},
		{"risk_score >= 80", true},
		{"risk_score < 80", false},
		{"risk_score <= 80", true},
		{"duration_ms < 1000", true},
	}
	for _, c := range cases {
		cond, err := ParseCondition(c.cond)
		if err != nil {
			t.Fatalf("ParseCondition(%q) error: %v", c.cond, err)
		}
		if got := cond.Eval(action); got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.cond, got, c.want)
		}
	}
}

func TestEvalContainsCaseInsensitive(t *testing.T) {
	action := testAction()
	cond, err := ParseCondition("metadata.note contains 'billing'")
	if err != nil {
		t.Fatalf("ParseCondition error: %v", err)
	}
	if !cond.Eval(action) {
		t.Error("expected case-insensitive contains to match")
	}
}

func TestEvalNonNumericFieldInNumericComparison(t *testing.T) {
	action := testAction()
	cond, _ := ParseCondition("metadata.environment > 10")
	if cond.Eval(action) {
		t.Error("expected non-numeric field to fail numeric comparison")
	}
}
