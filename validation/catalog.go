package validation

import (
	"fmt"

	"github.com/teranos/tokenfield/fields"
	"github.com/teranos/tokenfield/query"
)

// CatalogRules derives the standard rule set from a field catalog:
// enum membership for every enum field, plus a field rule wrapping the
// per-field Validate predicate where one is set. Strategy applies to
// all derived rules.
func CatalogRules(catalog *fields.Catalog, strategy Strategy) []Rule {
	var rules []Rule
	for _, def := range catalog.Definitions() {
		if def.Type == fields.TypeEnum && len(def.Enum) > 0 {
			rules = append(rules, NewEnumRule(def.Key, def.Enum, strategy, WithID("enum:"+def.Key)))
		}
		if def.Validate != nil {
			validate := def.Validate
			key := def.Key
			rules = append(rules, NewFieldRule("field:"+key, key,
				func(value string, all []query.Token, operator string) *Result {
					if validate(value) {
						return nil
					}
					return Mark(fmt.Sprintf("%q is not a valid %q value", value, key))
				}))
		}
	}
	return rules
}
