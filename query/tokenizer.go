package query

import (
	"strings"

	"github.com/teranos/tokenfield/fields"
)

// DefaultDelimiter separates field key, operator, and value in a filter
// token.
const DefaultDelimiter = ':'

// DefaultUnknownFieldOperators is the operator list applied to unknown
// field keys when AllowUnknownFields is set.
var DefaultUnknownFieldOperators = []string{"is"}

// ParseOptions configures the tokenizer.
type ParseOptions struct {
	// AllowUnknownFields parses key:value words whose key is not in the
	// catalog as filter tokens instead of free text.
	AllowUnknownFields bool

	// UnknownFieldOperators is the operator list used for unknown
	// fields. Defaults to ["is"].
	UnknownFieldOperators []string

	// Delimiter between key, operator, and value. Defaults to ':'.
	Delimiter rune
}

func (o ParseOptions) delimiter() string {
	if o.Delimiter == 0 {
		return string(DefaultDelimiter)
	}
	return string(o.Delimiter)
}

func (o ParseOptions) unknownOperators() []string {
	if len(o.UnknownFieldOperators) == 0 {
		return DefaultUnknownFieldOperators
	}
	return o.UnknownFieldOperators
}

// ParseResult is the tokenizer's output.
type ParseResult struct {
	Tokens []Token

	// HasIncompleteQuote reports a quoted free-text run with no closing
	// quote before end of input. The partial value is recorded so a
	// host can keep accepting keystrokes mid-quote.
	HasIncompleteQuote   bool
	IncompleteQuoteValue string
}

// FilterParts is the structured result of parsing one word as a filter.
type FilterParts struct {
	Key      string
	Operator string
	Value    string
	RawValue string
}

// ParseQueryString tokenizes a raw query into an ordered token
// sequence. Parsing never fails: anything that does not match the
// filter grammar degenerates to free text.
func ParseQueryString(queryText string, catalog *fields.Catalog, opts ParseOptions) ParseResult {
	result := ParseResult{}
	tracker := newPositionTracker(queryText)

	i := 0
	for i < len(queryText) {
		for i < len(queryText) && isSpace(queryText[i]) {
			tracker.advanceBytes(1)
			i++
		}
		if i >= len(queryText) {
			break
		}

		start := i
		startPos := tracker.mark()

		if queryText[i] == '"' {
			value, next, closed := scanQuotedRun(queryText, i)
			tracker.advanceBytes(next - i)
			i = next
			if !closed {
				result.HasIncompleteQuote = true
				result.IncompleteQuoteValue = value
			}
			if value == "" && !closed {
				continue // lone dangling quote, nothing to emit yet
			}
			tok := NewFreeTextToken(value, true)
			tok.RawValue = value
			tok.RawText = queryText[start:i]
			tok.Range = Range{Start: startPos, End: tracker.mark()}
			result.Tokens = append(result.Tokens, tok)
			continue
		}

		next := scanWord(queryText, i)
		word := queryText[start:next]
		tracker.advanceBytes(next - i)
		i = next

		var tok Token
		if parts := ParseTokenText(word, catalog, opts); parts != nil {
			tok = NewFilterToken(parts.Key, parts.Operator, parts.Value)
			tok.RawValue = parts.RawValue
		} else {
			tok = NewFreeTextToken(word, false)
			tok.RawValue = word
		}
		tok.RawText = word
		tok.Range = Range{Start: startPos, End: tracker.mark()}
		result.Tokens = append(result.Tokens, tok)
	}

	return result
}

// ParseTokenText parses a single whitespace-delimited word as a filter.
// It returns nil when the word is free text: a fully quoted string, a
// word without the delimiter, an unknown field key (unless unknown
// fields are allowed), or a filter whose resolved value is empty.
func ParseTokenText(word string, catalog *fields.Catalog, opts ParseOptions) *FilterParts {
	if _, _, wasQuoted := ParseQuotedString(word); wasQuoted {
		return nil
	}

	delim := opts.delimiter()
	if !strings.Contains(word, delim) {
		return nil
	}

	parts := strings.Split(word, delim)
	fieldKey := parts[0]
	rest := parts[1:]
	if fieldKey == "" {
		return nil
	}

	var operators []string
	def := catalog.Get(fieldKey)
	switch {
	case def != nil:
		operators = def.Operators
	case opts.AllowUnknownFields:
		operators = opts.unknownOperators()
	default:
		return nil
	}

	var operator, rawValue string
	if len(rest) >= 2 && containsString(operators, rest[0]) {
		operator = rest[0]
		// Re-joining supports delimiter characters inside values.
		rawValue = strings.Join(rest[1:], delim)
	} else {
		if len(operators) == 0 {
			return nil
		}
		operator = operators[0]
		rawValue = strings.Join(rest, delim)
	}

	value := rawValue
	if unquoted, _, wasQuoted := ParseQuotedString(value); wasQuoted {
		value = unquoted
	}
	if def != nil && def.Type == fields.TypeEnum {
		value = def.ResolveEnum(value)
	}

	// Empty-value filters are dropped; the caller falls back to free
	// text.
	if value == "" {
		return nil
	}

	return &FilterParts{
		Key:      fieldKey,
		Operator: operator,
		Value:    value,
		RawValue: rawValue,
	}
}

// scanQuotedRun consumes a quoted free-text run starting at the opening
// quote queryText[start]. It returns the unescaped value, the index
// just past the run, and whether a closing quote was found.
func scanQuotedRun(queryText string, start int) (value string, next int, closed bool) {
	var b strings.Builder
	escaped := false
	i := start + 1
	for i < len(queryText) {
		c := queryText[i]
		switch {
		case escaped:
			switch c {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(c)
			}
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return b.String(), i + 1, true
		default:
			b.WriteByte(c)
		}
		i++
	}
	return b.String(), i, false
}

// scanWord consumes a whitespace-delimited word starting at
// queryText[start]. An embedded unescaped quote opens a nested quoted
// run that is copied verbatim until its closing quote, so a filter
// value may itself contain a quoted sub-string with spaces.
func scanWord(queryText string, start int) (next int) {
	inQuote := false
	escaped := false
	i := start
	for i < len(queryText) {
		c := queryText[i]
		if inQuote {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inQuote = false
			}
			i++
			continue
		}
		if isSpace(c) {
			break
		}
		if c == '"' {
			inQuote = true
		}
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
