package validation

import (
	"fmt"

	"github.com/teranos/tokenfield/query"
)

// ReasonDuplicate is the violation reason reported by the unique rule.
const ReasonDuplicate = "duplicate"

// Signature selects how tokens are grouped for duplicate detection.
type Signature string

const (
	// ByKey groups filters sharing a field key; all free-text tokens
	// share one group.
	ByKey Signature = "key"
	// ByKeyOperator adds the operator to the grouping; free text still
	// collapses to one group.
	ByKeyOperator Signature = "key-operator"
	// Exact adds the value; free-text tokens are duplicates only when
	// their values match.
	Exact Signature = "exact"
)

type uniqueRule struct {
	baseRule
	signature Signature
	strategy  Strategy
}

// NewUniqueRule builds the duplicate-detection rule. Outcomes are
// position independent: whether a new token sits before or after an
// existing one never changes which survives — only the editing versus
// untouched classification does, except in the all-editing and
// all-untouched fallbacks, where document order is the tiebreak.
func NewUniqueRule(signature Signature, strategy Strategy, opts ...Option) Rule {
	o := applyOptions("unique", opts)
	return uniqueRule{
		baseRule:  baseRule{id: o.id, priority: o.priority},
		signature: signature,
		strategy:  strategy,
	}
}

func (r uniqueRule) Validate(ctx *Context) []Violation {
	groups := make(map[string][]query.Token)
	var order []string
	for _, tok := range ctx.Tokens {
		if tok.Type == query.TokenPlaintext {
			continue
		}
		if tok.IsFilter() && ctx.constraintDisabled(tok.Key, ConstraintUnique) {
			continue
		}
		sig := r.signatureOf(tok)
		if _, seen := groups[sig]; !seen {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], tok)
	}

	var out []Violation
	for _, sig := range order {
		group := groups[sig]
		if len(group) < 2 {
			continue
		}
		out = append(out, r.resolveGroup(ctx, group)...)
	}
	return out
}

func (r uniqueRule) signatureOf(tok query.Token) string {
	if tok.IsFreeText() {
		if r.signature == Exact {
			return "text\x00" + tok.Value
		}
		return "text"
	}
	switch r.signature {
	case ByKeyOperator:
		return "key\x00" + tok.Key + "\x00" + tok.Operator
	case Exact:
		return "key\x00" + tok.Key + "\x00" + tok.Operator + "\x00" + tok.Value
	default:
		return "key\x00" + tok.Key
	}
}

func (r uniqueRule) resolveGroup(ctx *Context, group []query.Token) []Violation {
	msg := duplicateMessage(group[0])

	var editing, untouched []query.Token
	for _, tok := range group {
		if ctx.IsEditing(tok) {
			editing = append(editing, tok)
		} else {
			untouched = append(untouched, tok)
		}
	}

	switch r.strategy {
	case StrategyReject:
		switch {
		case len(untouched) == 0:
			// Bulk paste with no pre-existing member: first occurrence
			// wins.
			return r.removals(group[1:], msg)
		case len(editing) == 0:
			// Whole group untouched, e.g. a history replay. Flag
			// instead of dropping.
			return r.marks(group[1:], msg)
		default:
			return r.removals(editing, msg)
		}

	case StrategyReplace:
		if len(editing) == 0 {
			// Whole group untouched: the last occurrence stands in for
			// the newest.
			return r.removals(group[:len(group)-1], msg)
		}
		survivor := editing[len(editing)-1]
		losers := make([]query.Token, 0, len(group)-1)
		for _, tok := range group {
			if tok.ID != survivor.ID {
				losers = append(losers, tok)
			}
		}
		return r.removals(losers, msg)

	default: // StrategyMark
		return r.marks(group[1:], msg)
	}
}

// removals emits delete violations, downgrading tokens that are still
// under construction to marks so a half-typed token is never dropped
// out from under the user.
func (r uniqueRule) removals(tokens []query.Token, msg string) []Violation {
	var del, mark []query.Token
	for _, tok := range tokens {
		if tok.UnderConstruction() {
			mark = append(mark, tok)
		} else {
			del = append(del, tok)
		}
	}
	var out []Violation
	if len(del) > 0 {
		out = append(out, Violation{
			RuleID:  r.id,
			Reason:  ReasonDuplicate,
			Message: msg,
			Action:  ActionDelete,
			Targets: targetsOf(del),
		})
	}
	out = append(out, r.marks(mark, msg)...)
	return out
}

func (r uniqueRule) marks(tokens []query.Token, msg string) []Violation {
	if len(tokens) == 0 {
		return nil
	}
	return []Violation{{
		RuleID:  r.id,
		Reason:  ReasonDuplicate,
		Message: msg,
		Action:  ActionMark,
		Targets: targetsOf(tokens),
	}}
}

func duplicateMessage(tok query.Token) string {
	if tok.IsFreeText() {
		return "duplicate free text"
	}
	return fmt.Sprintf("duplicate %q filter", tok.Key)
}
