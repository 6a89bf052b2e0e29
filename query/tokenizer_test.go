package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tokenfield/fields"
)

func testCatalog(t *testing.T) *fields.Catalog {
	t.Helper()
	catalog, err := fields.NewCatalog(
		fields.Definition{
			Key:       "status",
			Label:     "Status",
			Type:      fields.TypeEnum,
			Operators: []string{"is", "not"},
			Enum: []fields.EnumOption{
				{Value: "active", Label: "Active"},
				{Value: "inactive", Label: "Inactive"},
				{Value: "pending"},
			},
		},
		fields.Definition{
			Key:       "priority",
			Label:     "Priority",
			Type:      fields.TypeString,
			Operators: []string{"is", "gt", "lt"},
		},
		fields.Definition{
			Key:       "assignee",
			Label:     "Assignee",
			Type:      fields.TypeString,
			Operators: []string{"is"},
		},
	)
	require.NoError(t, err)
	return catalog
}

func TestParseQueryString(t *testing.T) {
	catalog := testCatalog(t)

	type want struct {
		typ      TokenType
		key      string
		operator string
		value    string
		quoted   bool
	}

	tests := []struct {
		name  string
		query string
		opts  ParseOptions
		want  []want
	}{
		{
			name:  "two filters",
			query: "status:is:active priority:gt:high",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
				{typ: TokenFilter, key: "priority", operator: "gt", value: "high"},
			},
		},
		{
			name:  "default operator when omitted",
			query: "status:active",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
			},
		},
		{
			name:  "delimiter characters inside value",
			query: "assignee:is:a:b:c",
			want: []want{
				{typ: TokenFilter, key: "assignee", operator: "is", value: "a:b:c"},
			},
		},
		{
			name:  "value that is not an operator falls to default operator",
			query: "priority:high:stuff",
			want: []want{
				{typ: TokenFilter, key: "priority", operator: "is", value: "high:stuff"},
			},
		},
		{
			name:  "quoted value with space",
			query: `assignee:is:"John Doe"`,
			want: []want{
				{typ: TokenFilter, key: "assignee", operator: "is", value: "John Doe"},
			},
		},
		{
			name:  "enum value resolves case-insensitively",
			query: "status:is:ACTIVE",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
			},
		},
		{
			name:  "enum label resolves to underlying value",
			query: "status:is:Inactive",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "inactive"},
			},
		},
		{
			name:  "unresolved enum value kept raw",
			query: "status:is:archived",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "archived"},
			},
		},
		{
			name:  "quoted free text",
			query: `"search term"`,
			want: []want{
				{typ: TokenFreeText, value: "search term", quoted: true},
			},
		},
		{
			name:  "bare word is free text",
			query: "hello",
			want: []want{
				{typ: TokenFreeText, value: "hello"},
			},
		},
		{
			name:  "unknown field key is free text by default",
			query: "custom:value",
			want: []want{
				{typ: TokenFreeText, value: "custom:value"},
			},
		},
		{
			name:  "unknown field parsed when allowed",
			query: "custom:value",
			opts:  ParseOptions{AllowUnknownFields: true},
			want: []want{
				{typ: TokenFilter, key: "custom", operator: "is", value: "value"},
			},
		},
		{
			name:  "unknown field with explicit default operator",
			query: "custom:is:value",
			opts:  ParseOptions{AllowUnknownFields: true},
			want: []want{
				{typ: TokenFilter, key: "custom", operator: "is", value: "value"},
			},
		},
		{
			name:  "empty-value filter degrades to free text",
			query: "status:is:",
			want: []want{
				{typ: TokenFreeText, value: "status:is:"},
			},
		},
		{
			name:  "mixed filters and free text",
			query: `status:is:active "search term" priority:gt:high`,
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
				{typ: TokenFreeText, value: "search term", quoted: true},
				{typ: TokenFilter, key: "priority", operator: "gt", value: "high"},
			},
		},
		{
			name:  "whitespace runs between tokens",
			query: "  status:is:active \t priority:is:low  ",
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
				{typ: TokenFilter, key: "priority", operator: "is", value: "low"},
			},
		},
		{
			name:  "custom delimiter",
			query: "status=is=active",
			opts:  ParseOptions{Delimiter: '='},
			want: []want{
				{typ: TokenFilter, key: "status", operator: "is", value: "active"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseQueryString(tt.query, catalog, tt.opts)
			require.Len(t, result.Tokens, len(tt.want))
			for i, w := range tt.want {
				tok := result.Tokens[i]
				assert.Equal(t, w.typ, tok.Type, "token %d type", i)
				assert.Equal(t, w.key, tok.Key, "token %d key", i)
				assert.Equal(t, w.operator, tok.Operator, "token %d operator", i)
				assert.Equal(t, w.value, tok.Value, "token %d value", i)
				assert.Equal(t, w.quoted, tok.Quoted, "token %d quoted", i)
				assert.NotEmpty(t, tok.ID, "token %d id", i)
			}
		})
	}
}

func TestParseQueryStringIncompleteQuote(t *testing.T) {
	catalog := testCatalog(t)

	result := ParseQueryString(`status:is:active "unterm`, catalog, ParseOptions{})
	require.Len(t, result.Tokens, 2)
	assert.True(t, result.HasIncompleteQuote)
	assert.Equal(t, "unterm", result.IncompleteQuoteValue)
	assert.Equal(t, TokenFreeText, result.Tokens[1].Type)
	assert.Equal(t, "unterm", result.Tokens[1].Value)
	assert.True(t, result.Tokens[1].Quoted)

	// A lone dangling quote records the incomplete state without
	// emitting an empty token.
	result = ParseQueryString(`status:is:active "`, catalog, ParseOptions{})
	require.Len(t, result.Tokens, 1)
	assert.True(t, result.HasIncompleteQuote)
	assert.Equal(t, "", result.IncompleteQuoteValue)
}

func TestParseQueryStringTokenIDsUnique(t *testing.T) {
	catalog := testCatalog(t)
	result := ParseQueryString("status:is:active status:is:active status:is:active", catalog, ParseOptions{})
	require.Len(t, result.Tokens, 3)
	seen := map[string]bool{}
	for _, tok := range result.Tokens {
		assert.False(t, seen[tok.ID], "token id reused")
		seen[tok.ID] = true
	}
}

func TestParseQueryStringRanges(t *testing.T) {
	catalog := testCatalog(t)
	queryText := `status:is:active "two words"`
	result := ParseQueryString(queryText, catalog, ParseOptions{})
	require.Len(t, result.Tokens, 2)

	first := result.Tokens[0]
	assert.Equal(t, 0, first.Range.Start.Offset)
	assert.Equal(t, len("status:is:active"), first.Range.End.Offset)
	assert.Equal(t, "status:is:active", first.RawText)

	second := result.Tokens[1]
	assert.Equal(t, len("status:is:active "), second.Range.Start.Offset)
	assert.Equal(t, len(queryText), second.Range.End.Offset)
	assert.Equal(t, `"two words"`, second.RawText)
}

func TestParseTokenText(t *testing.T) {
	catalog := testCatalog(t)

	t.Run("fully quoted word is free text", func(t *testing.T) {
		assert.Nil(t, ParseTokenText(`"status:is:active"`, catalog, ParseOptions{}))
	})

	t.Run("no delimiter is free text", func(t *testing.T) {
		assert.Nil(t, ParseTokenText("word", catalog, ParseOptions{}))
	})

	t.Run("unknown key rejected by default", func(t *testing.T) {
		assert.Nil(t, ParseTokenText("custom:value", catalog, ParseOptions{}))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		assert.Nil(t, ParseTokenText(":is:value", catalog, ParseOptions{AllowUnknownFields: true}))
	})

	t.Run("raw value preserved alongside resolved value", func(t *testing.T) {
		parts := ParseTokenText(`status:is:"Active"`, catalog, ParseOptions{})
		require.NotNil(t, parts)
		assert.Equal(t, "active", parts.Value)
		assert.Equal(t, `"Active"`, parts.RawValue)
	})
}
