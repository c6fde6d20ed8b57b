package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"agentops/internal/model"
)

// Condition operators, in the order the parser tries them. Two-character
// operators come before their one-character prefixes so ">=" is never read
// as ">".
const (
	CondEQ       = "=="
	CondNE       = "!="
	CondGTE      = ">="
	CondLTE      = "<="
	CondGT       = ">"
	CondLT       = "<"
	CondContains = "contains"
)

var condOps = []string{CondEQ, CondNE, CondGTE, CondLTE, CondGT, CondLT}

// ErrBadCondition reports a condition string that does not fit the
// "field op value" grammar. Rule evaluation treats it as a non-match.
var ErrBadCondition = errors.New("malformed condition")

// Condition is the parsed form of a "field op value" rule condition. Value
// holds the coerced literal: bool, float64, string, or nil.
type Condition struct {
	Field string
	Op    string
	Value interface{}
}

// ParseCondition parses the seven supported operator forms. Literals follow
// the original grammar: true/false/null coerce to their typed values, numeric
// strings to float64, everything else is a string with surrounding quotes
// trimmed. Anything unparseable returns ErrBadCondition so callers can fail
// open.
func ParseCondition(s string) (*Condition, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrBadCondition
	}

	for _, op := range condOps {
		if idx := strings.Index(s, op); idx > 0 {
			field := strings.TrimSpace(s[:idx])
			lit := strings.TrimSpace(s[idx+len(op):])
			if field == "" || lit == "" {
				return nil, ErrBadCondition
			}
			return &Condition{Field: field, Op: op, Value: parseLiteral(lit)}, nil
		}
	}

	// Word-form "field contains value", case-insensitive keyword.
	lower := strings.ToLower(s)
	if idx := strings.Index(lower, " contains "); idx > 0 {
		field := strings.TrimSpace(s[:idx])
		lit := strings.TrimSpace(s[idx+len(" contains "):])
		if field == "" || lit == "" {
			return nil, ErrBadCondition
		}
		return &Condition{Field: field, Op: CondContains, Value: parseLiteral(lit)}, nil
	}

	return nil, ErrBadCondition
}

// parseLiteral strips surrounding quotes first, then coerces: true/false/null
// to typed values, numeric-looking text to float64, the rest stays a string.
func parseLiteral(lit string) interface{} {
	trimmed := strings.Trim(lit, `'"`)
	switch trimmed {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if trimmed != "" {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n
		}
	}
	return trimmed
}

// Eval resolves the condition's field path against the action and applies
// the operator. A field that does not resolve compares as nil.
func (c *Condition) Eval(action *model.ActionRecord) bool {
	fieldVal, _ := action.Field(c.Field)

	switch c.Op {
	case CondEQ:
		return literalString(fieldVal) == literalString(c.Value)
	case CondNE:
		return literalString(fieldVal) != literalString(c.Value)
	case CondGT, CondGTE, CondLT, CondLTE:
		a, aok := toNumber(fieldVal)
		b, bok := toNumber(c.Value)
		if !aok || !bok {
			return false
		}
		switch c.Op {
		case CondGT:
			return a > b
		case CondGTE:
			return a >= b
		case CondLT:
			return a < b
		default:
			return a <= b
		}
	case CondContains:
		return strings.Contains(
			strings.ToLower(literalString(fieldVal)),
			strings.ToLower(literalString(c.Value)),
		)
	}
	return false
}

// literalString renders a value the way the condition grammar compares it.
func literalString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(t, 64)
		return n, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
