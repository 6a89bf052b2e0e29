package validation

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Engine executes rules against a context and resolves their combined
// verdicts into a plan. It holds no state between runs; rules are
// supplied fresh per pass.
type Engine struct {
	logger *zap.SugaredLogger
}

// NewEngine creates a validation engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetLogger sets the logger for debug output
func (e *Engine) SetLogger(logger *zap.SugaredLogger) {
	e.logger = logger
}

// Run sorts rules by priority descending (stable: ties keep input
// order), executes each, and merges all violations into a plan. A rule
// that panics contributes zero violations and does not abort the run.
func (e *Engine) Run(ctx *Context, rules []Rule) *Plan {
	start := time.Now()

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() > ordered[j].Priority()
	})

	var all []Violation
	for _, rule := range ordered {
		all = append(all, e.runRule(ctx, rule)...)
	}

	plan := BuildPlan(all)

	if e.logger != nil {
		e.logger.Debugw("validation pass",
			"rules", len(rules),
			"tokens", len(ctx.Tokens),
			"violations", len(all),
			"deletions", len(plan.Deletions),
			"marks", len(plan.Marks),
			"time_us", time.Since(start).Microseconds(),
		)
	}

	return plan
}

// runRule isolates one rule execution. One broken rule never prevents
// the others from completing.
func (e *Engine) runRule(ctx *Context, rule Rule) (violations []Violation) {
	defer func() {
		if r := recover(); r != nil {
			violations = nil
			if e.logger != nil {
				e.logger.Warnw("validation rule panicked",
					"rule", rule.ID(),
					"panic", r,
				)
			}
		}
	}()
	return rule.Validate(ctx)
}
