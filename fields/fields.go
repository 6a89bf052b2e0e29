// Package fields defines the field catalog a query is parsed and
// validated against: field keys, their allowed operators, value types,
// and enum options.
package fields

import (
	"strings"

	"github.com/teranos/tokenfield/errors"
)

// Type classifies the value space of a field
type Type string

const (
	TypeString   Type = "string"
	TypeEnum     Type = "enum"
	TypeDate     Type = "date"
	TypeDatetime Type = "datetime"
)

// EnumOption is one allowed value of an enum field.
// Value is the underlying raw value; Label is the display form shown to
// users and accepted as an input alias.
type EnumOption struct {
	Value string `yaml:"value"`
	Label string `yaml:"label,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
}

// Definition describes one queryable field.
type Definition struct {
	Key       string   `yaml:"key"`
	Label     string   `yaml:"label,omitempty"`
	Type      Type     `yaml:"type,omitempty"`
	Operators []string `yaml:"operators"`
	Enum      []EnumOption `yaml:"enum,omitempty"`

	// Validate is an optional host-supplied predicate for field values.
	// Not expressible in YAML; set programmatically.
	Validate func(value string) bool `yaml:"-"`

	// DisabledConstraints names validation constraints that must not be
	// applied to this field (e.g. "unique", "maxCount").
	DisabledConstraints []string `yaml:"disabledConstraints,omitempty"`
}

// DefaultOperator returns the field's first operator.
func (d *Definition) DefaultOperator() string {
	if len(d.Operators) == 0 {
		return ""
	}
	return d.Operators[0]
}

// HasOperator reports whether op is one of the field's allowed operators.
func (d *Definition) HasOperator(op string) bool {
	for _, o := range d.Operators {
		if o == op {
			return true
		}
	}
	return false
}

// ConstraintDisabled reports whether the named constraint is disabled
// for this field.
func (d *Definition) ConstraintDisabled(name string) bool {
	for _, c := range d.DisabledConstraints {
		if c == name {
			return true
		}
	}
	return false
}

// ResolveEnum maps a raw input value to the underlying enum value by
// case-insensitive exact match against each option's value or label.
// First match wins. An unmatched input is returned unchanged — this is
// lookup, not fuzzy search.
func (d *Definition) ResolveEnum(raw string) string {
	for _, opt := range d.Enum {
		if strings.EqualFold(opt.Value, raw) {
			return opt.Value
		}
		if opt.Label != "" && strings.EqualFold(opt.Label, raw) {
			return opt.Value
		}
	}
	return raw
}

// MatchesEnum reports whether raw resolves to one of the field's enum
// options under the same case-insensitive value-or-label matching.
func (d *Definition) MatchesEnum(raw string) bool {
	for _, opt := range d.Enum {
		if strings.EqualFold(opt.Value, raw) {
			return true
		}
		if opt.Label != "" && strings.EqualFold(opt.Label, raw) {
			return true
		}
	}
	return false
}

// Catalog is an ordered set of field definitions with unique keys.
type Catalog struct {
	defs  []Definition
	byKey map[string]*Definition
}

// NewCatalog builds a catalog from definitions. Duplicate keys and
// definitions without operators are rejected.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]Definition, 0, len(defs)),
		byKey: make(map[string]*Definition, len(defs)),
	}
	for _, def := range defs {
		if def.Key == "" {
			return nil, errors.Wrap(errors.ErrInvalidCatalog, "field with empty key")
		}
		if len(def.Operators) == 0 {
			return nil, errors.Wrapf(errors.ErrInvalidCatalog, "field %q has no operators", def.Key)
		}
		if _, exists := c.byKey[def.Key]; exists {
			return nil, errors.Wrapf(errors.ErrInvalidCatalog, "duplicate field key %q", def.Key)
		}
		c.defs = append(c.defs, def)
		c.byKey[def.Key] = &c.defs[len(c.defs)-1]
	}
	return c, nil
}

// Get returns the definition for key, or nil if the key is unknown.
func (c *Catalog) Get(key string) *Definition {
	if c == nil {
		return nil
	}
	return c.byKey[key]
}

// Definitions returns the catalog's definitions in declaration order.
func (c *Catalog) Definitions() []Definition {
	if c == nil {
		return nil
	}
	return c.defs
}

// Len returns the number of fields in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}
