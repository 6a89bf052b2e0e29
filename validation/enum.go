package validation

import (
	"fmt"
	"strings"

	"github.com/teranos/tokenfield/fields"
)

// ReasonEnum is the violation reason reported by the enum rule.
const ReasonEnum = "enum"

// EnumResolver decides whether a value belongs to an option set.
type EnumResolver func(value string, options []fields.EnumOption) bool

// DefaultEnumResolver matches case-insensitively against each option's
// underlying value or label.
func DefaultEnumResolver(value string, options []fields.EnumOption) bool {
	for _, opt := range options {
		if strings.EqualFold(opt.Value, value) {
			return true
		}
		if opt.Label != "" && strings.EqualFold(opt.Label, value) {
			return true
		}
	}
	return false
}

type enumRule struct {
	baseRule
	key      string
	options  []fields.EnumOption
	resolver EnumResolver
	strategy Strategy
}

// NewEnumRule requires values of the keyed field to be members of the
// option set. The failing-token action policy matches the pattern
// rule: mark by default, delete under reject only while editing.
func NewEnumRule(key string, options []fields.EnumOption, strategy Strategy, opts ...Option) Rule {
	return NewEnumRuleWithResolver(key, options, DefaultEnumResolver, strategy, opts...)
}

// NewEnumRuleWithResolver is NewEnumRule with a custom membership
// resolver.
func NewEnumRuleWithResolver(key string, options []fields.EnumOption, resolver EnumResolver, strategy Strategy, opts ...Option) Rule {
	o := applyOptions("enum", opts)
	return enumRule{
		baseRule: baseRule{id: o.id, priority: o.priority},
		key:      key,
		options:  options,
		resolver: resolver,
		strategy: strategy,
	}
}

func (r enumRule) Validate(ctx *Context) []Violation {
	if ctx.constraintDisabled(r.key, ConstraintEnum) {
		return nil
	}
	var out []Violation
	for _, tok := range ctx.Tokens {
		if !tok.IsFilter() || tok.Key != r.key || tok.UnderConstruction() {
			continue
		}
		if r.resolver(tok.Value, r.options) {
			continue
		}
		out = append(out, Violation{
			RuleID:  r.id,
			Reason:  ReasonEnum,
			Message: fmt.Sprintf("%q is not a valid %q value", tok.Value, r.key),
			Action:  perTokenAction(ctx, tok, r.strategy),
			Targets: []TargetRef{targetOf(tok)},
		})
	}
	return out
}
