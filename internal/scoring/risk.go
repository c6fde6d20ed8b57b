package scoring

import (
	"log"

	"agentops/internal/model"
)

// ComputeAutoRisk derives a 0-100 risk figure for an action from the given
// templates. Returns nil when no active template applies - "no automatic
// risk" is not the same as "risk is zero", and callers must keep the two
// apart. Among matching templates an exact action-type match beats a
// wildcard one.
//
// Rules with malformed conditions are skipped, not fatal: the condition
// grammar is operator-facing and a typo in one rule should not take down
// every risk evaluation that touches the template. Skips are logged for
// diagnosis.
func ComputeAutoRisk(action *model.ActionRecord, templates []*model.RiskTemplate) *float64 {
	var wildcard, exact *model.RiskTemplate
	for _, t := range templates {
		if t.Status != model.StatusActive {
			continue
		}
		if t.ActionType == nil {
			if wildcard == nil {
				wildcard = t
			}
			continue
		}
		if *t.ActionType == action.ActionType && exact == nil {
			exact = t
		}
	}

	template := exact
	if template == nil {
		template = wildcard
	}
	if template == nil {
		return nil
	}

	risk := template.BaseRisk
	for _, rule := range template.Rules {
		cond, err := ParseCondition(rule.Condition)
		if err != nil {
			log.Printf("risk template %s: skipping malformed condition %q", template.ID, rule.Condition)
			continue
		}
		if cond.Eval(action) {
			risk += rule.Add
		}
	}

	if risk < 0 {
		risk = 0
	}
	if risk > 100 {
		risk = 100
	}
	return &risk
}
