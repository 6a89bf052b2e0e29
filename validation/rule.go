package validation

// Rule is one validation pass over a token snapshot. Rules are pure
// with respect to the context; the engine isolates a panicking rule to
// an empty violation list.
type Rule interface {
	ID() string
	Priority() int
	Validate(ctx *Context) []Violation
}

// Strategy decides what happens to the losers of a conflict.
type Strategy string

const (
	// StrategyMark keeps everything, flagging the losers invalid
	StrategyMark Strategy = "mark"
	// StrategyReject keeps existing tokens and discards new ones
	StrategyReject Strategy = "reject"
	// StrategyReplace keeps the newest token and discards the rest
	StrategyReplace Strategy = "replace"
)

// Constraint names a field can opt out of via
// fields.Definition.DisabledConstraints.
const (
	ConstraintUnique   = "unique"
	ConstraintMaxCount = "maxCount"
	ConstraintPattern  = "pattern"
	ConstraintEnum     = "enum"
)

type ruleOptions struct {
	id       string
	priority int
}

// Option customizes a built-in rule.
type Option func(*ruleOptions)

// WithID overrides a rule's default identifier.
func WithID(id string) Option {
	return func(o *ruleOptions) { o.id = id }
}

// WithPriority sets a rule's priority. Higher priorities run first;
// ties keep registration order.
func WithPriority(priority int) Option {
	return func(o *ruleOptions) { o.priority = priority }
}

func applyOptions(defaultID string, opts []Option) ruleOptions {
	o := ruleOptions{id: defaultID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// baseRule carries the identity shared by all built-in rules.
type baseRule struct {
	id       string
	priority int
}

func (r baseRule) ID() string    { return r.id }
func (r baseRule) Priority() int { return r.priority }
