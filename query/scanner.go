package query

import "strings"

// AtomicBoundary is the sentinel rune standing in for an atomic,
// non-text unit embedded in surrounding query text (U+FFFC OBJECT
// REPLACEMENT CHARACTER). The scanner treats it as outside any quote:
// seeing it unconditionally resets quote state, and it is always a word
// boundary, even mid-quote.
const AtomicBoundary = '\uFFFC'

// OnChar receives each scanned rune with its byte index and whether the
// scanner considers it inside quotes. Returning false stops the scan.
type OnChar func(r rune, index int, inQuote bool) bool

// ScanQuotedString walks text left to right maintaining quote and
// escape state, and returns whether the scan ended inside quotes.
//
// A quote toggles the in-quote state unless it was escaped. Escaping
// (backslash followed by any character) is only honored inside quotes;
// a backslash outside quotes is an ordinary character and does not
// prevent a following quote from opening.
func ScanQuotedString(text string, onChar OnChar) bool {
	inQuote := false
	escaped := false

	for i, r := range text {
		switch {
		case r == AtomicBoundary:
			inQuote = false
			escaped = false
			if onChar != nil && !onChar(r, i, false) {
				return inQuote
			}
		case escaped:
			escaped = false
			if onChar != nil && !onChar(r, i, inQuote) {
				return inQuote
			}
		case r == '\\' && inQuote:
			escaped = true
			if onChar != nil && !onChar(r, i, true) {
				return inQuote
			}
		case r == '"':
			inQuote = !inQuote
			if onChar != nil && !onChar(r, i, inQuote) {
				return inQuote
			}
		default:
			if onChar != nil && !onChar(r, i, inQuote) {
				return inQuote
			}
		}
	}
	return inQuote
}

// IsInsideQuotes reports whether text ends inside an unterminated
// quoted run.
func IsInsideQuotes(text string) bool {
	return ScanQuotedString(text, nil)
}

// FindLastWordBoundary returns the byte index of the last word boundary
// in text, or -1 if there is none. A plain space is a boundary only
// outside quotes; the atomic boundary sentinel is always one.
func FindLastWordBoundary(text string) int {
	last := -1
	ScanQuotedString(text, func(r rune, i int, inQuote bool) bool {
		if r == AtomicBoundary || (r == ' ' && !inQuote) {
			last = i
		}
		return true
	})
	return last
}

// ParseQuotedString unwraps a leading quoted run from text, unescaping
// \" \\ \n \t along the way. Unrecognized escape sequences pass through
// literally. isOpen reports that no closing quote was found; the value
// then holds everything seen so far, with a dangling trailing backslash
// dropped. Text not starting with a quote is returned unchanged with
// wasQuoted=false.
func ParseQuotedString(text string) (value string, isOpen bool, wasQuoted bool) {
	if !strings.HasPrefix(text, `"`) {
		return text, false, false
	}

	var b strings.Builder
	escaped := false
	for i := 1; i < len(text); i++ {
		c := text[i]
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
			return b.String(), false, true
		default:
			b.WriteByte(c)
		}
	}
	// No closing quote; a trailing backslash has nothing to escape.
	return b.String(), true, true
}

// EscapeForQuotes escapes backslashes and double quotes in value for
// embedding inside a quoted run.
func EscapeForQuotes(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// QuoteIfNeeded wraps value in quotes only when its content requires it
// (it contains a space). Values without spaces are returned unchanged.
func QuoteIfNeeded(value string) string {
	if !strings.Contains(value, " ") {
		return value
	}
	return `"` + EscapeForQuotes(value) + `"`
}
