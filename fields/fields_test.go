package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tokenfield/errors"
)

func TestNewCatalog(t *testing.T) {
	t.Run("lookup and order", func(t *testing.T) {
		catalog, err := NewCatalog(
			Definition{Key: "status", Operators: []string{"is", "not"}},
			Definition{Key: "priority", Operators: []string{"is"}},
		)
		require.NoError(t, err)

		assert.Equal(t, 2, catalog.Len())
		assert.Equal(t, "status", catalog.Definitions()[0].Key)
		require.NotNil(t, catalog.Get("priority"))
		assert.Nil(t, catalog.Get("missing"))
	})

	t.Run("duplicate key rejected", func(t *testing.T) {
		_, err := NewCatalog(
			Definition{Key: "status", Operators: []string{"is"}},
			Definition{Key: "status", Operators: []string{"is"}},
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidCatalog))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		_, err := NewCatalog(Definition{Operators: []string{"is"}})
		assert.True(t, errors.Is(err, errors.ErrInvalidCatalog))
	})

	t.Run("missing operators rejected", func(t *testing.T) {
		_, err := NewCatalog(Definition{Key: "status"})
		assert.True(t, errors.Is(err, errors.ErrInvalidCatalog))
	})

	t.Run("nil catalog is safe", func(t *testing.T) {
		var c *Catalog
		assert.Nil(t, c.Get("status"))
		assert.Nil(t, c.Definitions())
		assert.Zero(t, c.Len())
	})
}

func TestDefinitionOperators(t *testing.T) {
	def := Definition{Key: "status", Operators: []string{"is", "not"}}
	assert.Equal(t, "is", def.DefaultOperator())
	assert.True(t, def.HasOperator("not"))
	assert.False(t, def.HasOperator("gt"))

	empty := Definition{Key: "x"}
	assert.Equal(t, "", empty.DefaultOperator())
}

func TestResolveEnum(t *testing.T) {
	def := Definition{
		Key: "status",
		Enum: []EnumOption{
			{Value: "active", Label: "Active"},
			{Value: "inactive", Label: "Inactive"},
		},
	}

	assert.Equal(t, "active", def.ResolveEnum("active"))
	assert.Equal(t, "active", def.ResolveEnum("ACTIVE"), "value matches case-insensitively")
	assert.Equal(t, "inactive", def.ResolveEnum("Inactive"), "label resolves to value")
	assert.Equal(t, "archived", def.ResolveEnum("archived"), "unmatched input passes through")

	assert.True(t, def.MatchesEnum("Active"))
	assert.False(t, def.MatchesEnum("archived"))
}

func TestConstraintDisabled(t *testing.T) {
	def := Definition{Key: "label", DisabledConstraints: []string{"unique"}}
	assert.True(t, def.ConstraintDisabled("unique"))
	assert.False(t, def.ConstraintDisabled("maxCount"))
}
