// Package query turns raw query text into an ordered token sequence and
// back. A query mixes filter tokens (key:operator:value) with quoted or
// bare free text; the tokenizer, serializer, and quoted-string scanner
// here are pure functions with no host state.
package query

import (
	"github.com/google/uuid"
)

// TokenType discriminates the parsed units of a query.
type TokenType string

const (
	// TokenFilter is a structured key/operator/value filter
	TokenFilter TokenType = "filter"
	// TokenFreeText is an unstructured search term, quoted or bare
	TokenFreeText TokenType = "freeText"
	// TokenPlaintext is untokenized raw text; it is never validated
	TokenPlaintext TokenType = "plaintext"
)

// Token is one parsed unit of a query. Tokens are always handled as an
// ordered sequence; order drives every duplicate and overflow policy in
// the validation package.
type Token struct {
	// ID is stable for the lifetime of the token, assigned once at
	// creation and never reused.
	ID string

	Type TokenType

	// Key and Operator are populated for filter tokens only.
	Key      string
	Operator string

	// Value is the resolved value (unquoted, enum-resolved). A token
	// with an empty Value is still under construction.
	Value string

	// RawValue is the value before unquoting and enum resolution, kept
	// for round-tripping oddities.
	RawValue string

	// Quoted records whether a free-text token was written in quotes.
	Quoted bool

	// RawText is the exact source text the token was parsed from.
	RawText string

	// Range is the token's span in the source query.
	Range Range

	// Pos is an opaque ordering/location handle supplied by the host.
	// The core never interprets it; it is echoed back in violation
	// targets so the host can address its own document.
	Pos interface{}
}

// NewTokenID returns a fresh unique token identifier.
func NewTokenID() string {
	return uuid.NewString()
}

// NewFilterToken creates a filter token with a fresh ID.
func NewFilterToken(key, operator, value string) Token {
	return Token{
		ID:       NewTokenID(),
		Type:     TokenFilter,
		Key:      key,
		Operator: operator,
		Value:    value,
		RawValue: value,
	}
}

// NewFreeTextToken creates a free-text token with a fresh ID.
func NewFreeTextToken(value string, quoted bool) Token {
	return Token{
		ID:     NewTokenID(),
		Type:   TokenFreeText,
		Value:  value,
		Quoted: quoted,
	}
}

// IsFilter reports whether the token is a filter token.
func (t Token) IsFilter() bool { return t.Type == TokenFilter }

// IsFreeText reports whether the token is a free-text token.
func (t Token) IsFreeText() bool { return t.Type == TokenFreeText }

// UnderConstruction reports whether the token has an empty value and is
// still being typed.
func (t Token) UnderConstruction() bool { return t.Value == "" }
