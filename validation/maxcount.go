package validation

import (
	"fmt"

	"github.com/teranos/tokenfield/query"
)

// ReasonMaxCount is the violation reason reported by the max-count rule.
const ReasonMaxCount = "maxCount"

// AllKeys groups every token into one counting group.
const AllKeys = "*"

type maxCountRule struct {
	baseRule
	key      string
	max      int
	strategy Strategy
}

// NewMaxCountRule limits how many tokens a field key may carry. key
// AllKeys ("*") counts all tokens as one group. A negative max clamps
// to 0; note that max=0 under the mark strategy flags the whole group
// on every pass and is inherently non-convergent.
func NewMaxCountRule(key string, max int, strategy Strategy, opts ...Option) Rule {
	o := applyOptions("maxCount", opts)
	if max < 0 {
		max = 0
	}
	return maxCountRule{
		baseRule: baseRule{id: o.id, priority: o.priority},
		key:      key,
		max:      max,
		strategy: strategy,
	}
}

func (r maxCountRule) Validate(ctx *Context) []Violation {
	if r.key != AllKeys && ctx.constraintDisabled(r.key, ConstraintMaxCount) {
		return nil
	}

	var group []query.Token
	for _, tok := range ctx.Tokens {
		if tok.Type == query.TokenPlaintext {
			continue
		}
		if r.key == AllKeys || (tok.IsFilter() && tok.Key == r.key) {
			group = append(group, tok)
		}
	}

	excess := len(group) - r.max
	if excess <= 0 {
		return nil
	}

	msg := r.message()

	if r.strategy == StrategyMark {
		// Earliest occurrences stay valid.
		return []Violation{{
			RuleID:  r.id,
			Reason:  ReasonMaxCount,
			Message: msg,
			Action:  ActionMark,
			Targets: targetsOf(group[len(group)-excess:]),
		}}
	}

	// Reject: delete editing tokens first, newest editing first; make
	// up any shortfall with untouched tokens from the tail.
	var editing, untouched []query.Token
	for _, tok := range group {
		if ctx.IsEditing(tok) {
			editing = append(editing, tok)
		} else {
			untouched = append(untouched, tok)
		}
	}

	var doomed []query.Token
	if len(editing) >= excess {
		doomed = editing[len(editing)-excess:]
	} else {
		doomed = append(doomed, editing...)
		need := excess - len(editing)
		if need > len(untouched) {
			need = len(untouched)
		}
		doomed = append(doomed, untouched[len(untouched)-need:]...)
	}

	return []Violation{{
		RuleID:  r.id,
		Reason:  ReasonMaxCount,
		Message: msg,
		Action:  ActionDelete,
		Targets: targetsOf(doomed),
	}}
}

func (r maxCountRule) message() string {
	if r.key == AllKeys {
		return fmt.Sprintf("at most %d tokens allowed", r.max)
	}
	return fmt.Sprintf("at most %d %q filters allowed", r.max, r.key)
}
