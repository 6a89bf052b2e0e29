package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog(
		Definition{Key: "status", Label: "Status", Operators: []string{"is"}},
		Definition{Key: "state", Label: "Workflow State", Operators: []string{"is"}},
		Definition{Key: "assignee", Label: "Assignee", Operators: []string{"is"}},
		Definition{Key: "estimate", Label: "Estimate", Operators: []string{"is"}},
		Definition{Key: "est", Label: "Est", Operators: []string{"is"}},
	)
	require.NoError(t, err)
	return catalog
}

func suggestedKeys(defs []Definition) []string {
	keys := make([]string, len(defs))
	for i, def := range defs {
		keys[i] = def.Key
	}
	return keys
}

func TestSuggest(t *testing.T) {
	s := NewSuggester(suggestCatalog(t))

	t.Run("empty query lists everything", func(t *testing.T) {
		assert.Equal(t, []string{"status", "state", "assignee", "estimate", "est"},
			suggestedKeys(s.Suggest("")))
	})

	t.Run("exact beats prefix regardless of declaration order", func(t *testing.T) {
		// "est" is declared last but matches exactly; "estimate" is only
		// a prefix match.
		assert.Equal(t, []string{"est", "estimate"}, suggestedKeys(s.Suggest("est")))
	})

	t.Run("prefix beats substring", func(t *testing.T) {
		// "estimate" and "est" match by key prefix; "state" and
		// "assignee" only contain an "e" in key or label.
		assert.Equal(t, []string{"estimate", "est", "state", "assignee"},
			suggestedKeys(s.Suggest("e")))
	})

	t.Run("key and substring tiers", func(t *testing.T) {
		// "status" and "state" start with the query; "estimate" and
		// "est" merely contain it.
		assert.Equal(t, []string{"status", "state", "estimate", "est"},
			suggestedKeys(s.Suggest("st")))
	})

	t.Run("case insensitive with surrounding space", func(t *testing.T) {
		assert.Equal(t, []string{"assignee"}, suggestedKeys(s.Suggest("  ASSIGN ")))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Suggest("zzz"))
	})
}

func TestSuggestNilCatalog(t *testing.T) {
	s := NewSuggester(nil)
	assert.Nil(t, s.Suggest("anything"))
}
