// Package validation runs declarative, priority-ordered rules over a
// token snapshot and resolves their conflicting verdicts into a single
// instruction set: delete these tokens, mark those invalid. The engine
// never mutates tokens; applying the plan is the host's job.
package validation

import "github.com/teranos/tokenfield/query"

// Action is a rule's requested outcome for a token.
type Action string

const (
	// ActionMark flags a token invalid without removing it
	ActionMark Action = "mark"
	// ActionDelete removes a token from the document
	ActionDelete Action = "delete"
)

// TargetRef addresses one token in the host's document. Pos is the
// host-supplied opaque handle echoed back unchanged.
type TargetRef struct {
	TokenID string
	Pos     interface{}
}

func targetOf(tok query.Token) TargetRef {
	return TargetRef{TokenID: tok.ID, Pos: tok.Pos}
}

func targetsOf(tokens []query.Token) []TargetRef {
	targets := make([]TargetRef, len(tokens))
	for i, tok := range tokens {
		targets[i] = targetOf(tok)
	}
	return targets
}

// Violation is a rule's report that one or more tokens must be marked
// invalid or deleted.
type Violation struct {
	RuleID  string
	Reason  string
	Message string
	Action  Action
	Targets []TargetRef
}

// MarkInstruction tells the host to flag one token invalid, carrying
// the triggering rule and message.
type MarkInstruction struct {
	Target  TargetRef
	RuleID  string
	Reason  string
	Message string
}

// Plan is the merged instruction set after conflict resolution.
type Plan struct {
	Deletions []TargetRef
	Marks     []MarkInstruction
}

// Empty reports whether the plan contains no instructions.
func (p *Plan) Empty() bool {
	return len(p.Deletions) == 0 && len(p.Marks) == 0
}

// DeletedTokenIDs returns the IDs of tokens the plan deletes.
func (p *Plan) DeletedTokenIDs() []string {
	ids := make([]string, len(p.Deletions))
	for i, t := range p.Deletions {
		ids[i] = t.TokenID
	}
	return ids
}

// BuildPlan resolves a violation list into a plan. For every token
// referenced by at least one violation, delete outranks mark across all
// rules; a token that is only marked keeps the first mark's message, in
// violation order.
func BuildPlan(violations []Violation) *Plan {
	type verdict struct {
		target  TargetRef
		deleted bool
		mark    *MarkInstruction
	}

	var order []string
	verdicts := make(map[string]*verdict)

	for _, v := range violations {
		for _, target := range v.Targets {
			entry, seen := verdicts[target.TokenID]
			if !seen {
				entry = &verdict{target: target}
				verdicts[target.TokenID] = entry
				order = append(order, target.TokenID)
			}
			switch v.Action {
			case ActionDelete:
				entry.deleted = true
			case ActionMark:
				if entry.mark == nil {
					entry.mark = &MarkInstruction{
						Target:  target,
						RuleID:  v.RuleID,
						Reason:  v.Reason,
						Message: v.Message,
					}
				}
			}
		}
	}

	plan := &Plan{}
	for _, id := range order {
		entry := verdicts[id]
		if entry.deleted {
			plan.Deletions = append(plan.Deletions, entry.target)
		} else if entry.mark != nil {
			plan.Marks = append(plan.Marks, *entry.mark)
		}
	}
	return plan
}
