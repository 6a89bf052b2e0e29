package validation

import "github.com/teranos/tokenfield/query"

// ReasonCustom is the violation reason reported by adapter-built rules.
const ReasonCustom = "custom"

// Result is the simplified verdict a custom rule function returns for
// one token. A nil *Result means no violation. A Result carrying
// DeleteTargetIndices asks for those tokens (by index into the snapshot)
// to be deleted; a Result with only a Message marks the triggering
// token invalid.
type Result struct {
	Message             string
	DeleteTargetIndices []int
}

// Mark is shorthand for a mark verdict with the given message.
func Mark(message string) *Result {
	return &Result{Message: message}
}

// TokenFunc is the simplified per-token check wrapped by NewRule.
type TokenFunc func(tok query.Token, all []query.Token, index int) *Result

// FieldFunc is the simplified per-value check wrapped by NewFieldRule.
type FieldFunc func(value string, all []query.Token, operator string) *Result

// NewRule wraps a per-token function as a Rule. The function runs for
// every filter and free-text token in order; plaintext tokens are
// never validated.
func NewRule(id string, fn TokenFunc, opts ...Option) Rule {
	o := applyOptions(id, opts)
	return adapterRule{
		baseRule: baseRule{id: o.id, priority: o.priority},
		fn:       fn,
	}
}

// NewFieldRule wraps a per-value function as a Rule restricted to
// filter tokens with the given key.
func NewFieldRule(id, key string, fn FieldFunc, opts ...Option) Rule {
	return NewRule(id, func(tok query.Token, all []query.Token, index int) *Result {
		if !tok.IsFilter() || tok.Key != key {
			return nil
		}
		return fn(tok.Value, all, tok.Operator)
	}, opts...)
}

type adapterRule struct {
	baseRule
	fn TokenFunc
}

func (r adapterRule) Validate(ctx *Context) []Violation {
	var out []Violation
	for i, tok := range ctx.Tokens {
		if tok.Type == query.TokenPlaintext {
			continue
		}
		res := r.fn(tok, ctx.Tokens, i)
		if res == nil {
			continue
		}

		if len(res.DeleteTargetIndices) > 0 {
			var targets []TargetRef
			for _, idx := range res.DeleteTargetIndices {
				if idx < 0 || idx >= len(ctx.Tokens) {
					continue // out-of-range indices are dropped
				}
				targets = append(targets, targetOf(ctx.Tokens[idx]))
			}
			if len(targets) == 0 {
				continue // nothing valid left to delete, no violation
			}
			out = append(out, Violation{
				RuleID:  r.id,
				Reason:  ReasonCustom,
				Message: res.Message,
				Action:  ActionDelete,
				Targets: targets,
			})
			continue
		}

		if res.Message == "" {
			continue
		}
		out = append(out, Violation{
			RuleID:  r.id,
			Reason:  ReasonCustom,
			Message: res.Message,
			Action:  ActionMark,
			Targets: []TargetRef{targetOf(tok)},
		})
	}
	return out
}
