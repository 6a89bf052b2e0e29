package validation

import (
	"fmt"
	"regexp"

	"github.com/teranos/tokenfield/errors"
	"github.com/teranos/tokenfield/query"
)

// ReasonPattern is the violation reason reported by the pattern rule.
const ReasonPattern = "pattern"

type patternRule struct {
	baseRule
	key      string
	pattern  *regexp.Regexp
	strategy Strategy
	message  string
}

// NewPatternRule requires values of the keyed field to match pattern.
// A failing token is marked invalid; under StrategyReject a failing
// token the user is actively editing is deleted instead — an untouched
// token is never silently deleted.
func NewPatternRule(key string, pattern *regexp.Regexp, strategy Strategy, opts ...Option) Rule {
	o := applyOptions("pattern", opts)
	return patternRule{
		baseRule: baseRule{id: o.id, priority: o.priority},
		key:      key,
		pattern:  pattern,
		strategy: strategy,
		message:  fmt.Sprintf("%q value must match %s", key, pattern.String()),
	}
}

// CompilePatternRule compiles expr and builds a pattern rule from it.
func CompilePatternRule(key, expr string, strategy Strategy, opts ...Option) (Rule, error) {
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPattern, "%s: %v", expr, err)
	}
	return NewPatternRule(key, pattern, strategy, opts...), nil
}

func (r patternRule) Validate(ctx *Context) []Violation {
	if ctx.constraintDisabled(r.key, ConstraintPattern) {
		return nil
	}
	var out []Violation
	for _, tok := range ctx.Tokens {
		if !tok.IsFilter() || tok.Key != r.key || tok.UnderConstruction() {
			continue
		}
		if r.pattern.MatchString(tok.Value) {
			continue
		}
		out = append(out, Violation{
			RuleID:  r.id,
			Reason:  ReasonPattern,
			Message: r.message,
			Action:  perTokenAction(ctx, tok, r.strategy),
			Targets: []TargetRef{targetOf(tok)},
		})
	}
	return out
}

// perTokenAction implements the shared per-token policy of the pattern
// and enum rules: mark by default; under reject, delete only a token
// the user is actively editing.
func perTokenAction(ctx *Context, tok query.Token, strategy Strategy) Action {
	if strategy == StrategyReject && ctx.IsEditing(tok) {
		return ActionDelete
	}
	return ActionMark
}
