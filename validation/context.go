package validation

import (
	"github.com/teranos/tokenfield/fields"
	"github.com/teranos/tokenfield/query"
)

// Context is the snapshot a validation pass runs against. The
// EditingTokenIDs set is the only signal distinguishing freshly
// created or modified tokens from pre-existing, untouched ones; the
// engine never infers freshness from position or heuristics. Computing
// the set each pass — by diffing against the previously committed
// token set, or by marking everything editing for a bulk replace — is
// the host's responsibility.
type Context struct {
	Tokens          []query.Token
	Catalog         *fields.Catalog
	EditingTokenIDs map[string]struct{}
}

// NewContext builds a context with the given editing token IDs.
func NewContext(tokens []query.Token, catalog *fields.Catalog, editingIDs ...string) *Context {
	ids := make(map[string]struct{}, len(editingIDs))
	for _, id := range editingIDs {
		ids[id] = struct{}{}
	}
	return &Context{Tokens: tokens, Catalog: catalog, EditingTokenIDs: ids}
}

// NewForceCheckContext builds a context in which every token counts as
// editing. Used for bulk operations: paste, load, replace-all.
func NewForceCheckContext(tokens []query.Token, catalog *fields.Catalog) *Context {
	ids := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		ids[tok.ID] = struct{}{}
	}
	return &Context{Tokens: tokens, Catalog: catalog, EditingTokenIDs: ids}
}

// IsEditing reports whether the host considers tok freshly created or
// modified in the in-progress operation.
func (c *Context) IsEditing(tok query.Token) bool {
	_, ok := c.EditingTokenIDs[tok.ID]
	return ok
}

// constraintDisabled reports whether the field for key opted out of the
// named constraint.
func (c *Context) constraintDisabled(key, constraint string) bool {
	if c.Catalog == nil {
		return false
	}
	def := c.Catalog.Get(key)
	return def != nil && def.ConstraintDisabled(constraint)
}
