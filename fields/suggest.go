package fields

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Suggester finds catalog fields matching a partial key typed by the
// user. Matching is deliberately simple: exact, then prefix, then
// substring, against both key and label. Ranking beyond that tier order
// is declaration order.
type Suggester struct {
	catalog *Catalog
	logger  *zap.SugaredLogger
}

// NewSuggester creates a suggester over the given catalog.
func NewSuggester(catalog *Catalog) *Suggester {
	return &Suggester{catalog: catalog}
}

// SetLogger sets the logger for debug output
func (s *Suggester) SetLogger(logger *zap.SugaredLogger) {
	s.logger = logger
}

// Suggest returns definitions matching the query, best tier first.
// An empty query returns the whole catalog in declaration order.
func (s *Suggester) Suggest(query string) []Definition {
	if s.catalog == nil {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.catalog.Definitions()
	}

	start := time.Now()
	var exact, prefix, substring []Definition
	for _, def := range s.catalog.Definitions() {
		key := strings.ToLower(def.Key)
		label := strings.ToLower(def.Label)
		switch {
		case key == q || label == q:
			exact = append(exact, def)
		case strings.HasPrefix(key, q) || (label != "" && strings.HasPrefix(label, q)):
			prefix = append(prefix, def)
		case strings.Contains(key, q) || (label != "" && strings.Contains(label, q)):
			substring = append(substring, def)
		}
	}

	matches := append(append(exact, prefix...), substring...)

	if s.logger != nil && len(matches) > 0 {
		s.logger.Debugw("field suggestion",
			"query", query,
			"matches", len(matches),
			"time_us", time.Since(start).Microseconds(),
			"top_match", matches[0].Key,
		)
	}

	return matches
}
