package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tokenfield/errors"
	"github.com/teranos/tokenfield/fields"
	"github.com/teranos/tokenfield/query"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

func runPattern(t *testing.T, ctx *Context, key string, strategy Strategy) *Plan {
	t.Helper()
	return NewEngine().Run(ctx, []Rule{NewPatternRule(key, digitsOnly, strategy)})
}

func TestPatternMarkOnMismatch(t *testing.T) {
	good := query.NewFilterToken("sprint", "is", "42")
	bad := query.NewFilterToken("sprint", "is", "next")
	other := query.NewFilterToken("status", "is", "also-not-digits")

	plan := runPattern(t, NewContext([]query.Token{good, bad, other}, nil), "sprint", StrategyMark)

	assert.Empty(t, plan.Deletions)
	assert.Equal(t, []string{bad.ID}, markedIDs(plan), "only the keyed field is checked")
}

func TestPatternRejectDeletesOnlyEditingTokens(t *testing.T) {
	untouched := query.NewFilterToken("sprint", "is", "abc")
	edited := query.NewFilterToken("sprint", "is", "xyz")

	plan := runPattern(t, NewContext([]query.Token{untouched, edited}, nil, edited.ID), "sprint", StrategyReject)

	assert.Equal(t, []string{edited.ID}, deletedIDs(plan))
	assert.Equal(t, []string{untouched.ID}, markedIDs(plan), "untouched mismatch is flagged, never dropped")
}

func TestPatternSkipsUnderConstruction(t *testing.T) {
	typing := query.NewFilterToken("sprint", "is", "")
	plan := runPattern(t, NewForceCheckContext([]query.Token{typing}, nil), "sprint", StrategyReject)
	assert.True(t, plan.Empty())
}

func TestPatternRespectsDisabledConstraint(t *testing.T) {
	catalog, err := fields.NewCatalog(fields.Definition{
		Key:                 "sprint",
		Operators:           []string{"is"},
		DisabledConstraints: []string{ConstraintPattern},
	})
	require.NoError(t, err)

	bad := query.NewFilterToken("sprint", "is", "next")
	plan := runPattern(t, NewContext([]query.Token{bad}, catalog), "sprint", StrategyMark)
	assert.True(t, plan.Empty())
}

func TestCompilePatternRule(t *testing.T) {
	rule, err := CompilePatternRule("sprint", `^\d+$`, StrategyMark)
	require.NoError(t, err)
	assert.Equal(t, "pattern", rule.ID())

	_, err = CompilePatternRule("sprint", `[unclosed`, StrategyMark)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidPattern))
}

func TestPatternIsStatelessAcrossRuns(t *testing.T) {
	// The same rule instance must give identical verdicts on repeated
	// runs over the same tokens.
	rule := NewPatternRule("sprint", digitsOnly, StrategyMark)
	tok := query.NewFilterToken("sprint", "is", "nope")
	ctx := NewContext([]query.Token{tok}, nil)

	first := NewEngine().Run(ctx, []Rule{rule})
	second := NewEngine().Run(ctx, []Rule{rule})
	assert.Equal(t, markedIDs(first), markedIDs(second))
}
