package query

import (
	"strings"

	"github.com/teranos/tokenfield/fields"
)

// SerializeOptions configures the serializer.
type SerializeOptions struct {
	// Delimiter between key, operator, and value. Defaults to ':'.
	Delimiter rune
}

func (o SerializeOptions) delimiter() string {
	if o.Delimiter == 0 {
		return string(DefaultDelimiter)
	}
	return string(o.Delimiter)
}

// SerializeTokens renders a token sequence back to canonical query
// text: the exact inverse of ParseQueryString for well-formed input.
// Quoting that was not structurally required is dropped, runs of
// whitespace collapse to a single space, and the result is trimmed.
func SerializeTokens(tokens []Token, opts SerializeOptions) string {
	delim := opts.delimiter()
	parts := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		var part string
		switch tok.Type {
		case TokenFilter:
			if tok.Value == "" {
				continue // under construction, nothing to render yet
			}
			part = tok.Key + delim + tok.Operator + delim + QuoteIfNeeded(tok.Value)
		case TokenFreeText:
			if tok.Quoted {
				part = `"` + EscapeForQuotes(tok.Value) + `"`
			} else {
				part = tok.Value
			}
		case TokenPlaintext:
			part = strings.TrimSpace(tok.RawText)
			if part == "" {
				part = strings.TrimSpace(tok.Value)
			}
		}
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, " ")
}

// Normalize is serialize-after-parse: it returns the canonical form of
// a raw query string. Whitespace collapses, and quoting that was never
// structurally required disappears.
func Normalize(queryText string, catalog *fields.Catalog, opts ParseOptions) string {
	result := ParseQueryString(queryText, catalog, opts)
	return SerializeTokens(result.Tokens, SerializeOptions{Delimiter: opts.Delimiter})
}
