package commands

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tokenfield/query"
)

// ParseCmd tokenizes a query and shows the token sequence
var ParseCmd = &cobra.Command{
	Use:   "parse [QUERY]",
	Short: "Tokenize a query and show the token sequence",
	Long: `Tokenize a query and show the token sequence.

Examples:
  tokenfield parse 'status:is:active "search term"'
  tokenfield parse --allow-unknown 'custom:value'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParseCommand,
}

func init() {
	ParseCmd.Flags().Bool("allow-unknown", false, "Parse unknown field keys as filters instead of free text")
}

func runParseCommand(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	result := query.ParseQueryString(queryFromArgs(args), catalog, parseOptions(cmd))

	if jsonOutput(cmd) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Tokens               []tokenView `json:"tokens"`
			HasIncompleteQuote   bool        `json:"hasIncompleteQuote"`
			IncompleteQuoteValue string      `json:"incompleteQuoteValue,omitempty"`
		}{
			Tokens:               tokenViews(result.Tokens),
			HasIncompleteQuote:   result.HasIncompleteQuote,
			IncompleteQuoteValue: result.IncompleteQuoteValue,
		})
	}

	rows := pterm.TableData{{"#", "Type", "Key", "Operator", "Value", "Quoted"}}
	for i, tok := range result.Tokens {
		quoted := ""
		if tok.Quoted {
			quoted = "yes"
		}
		rows = append(rows, []string{
			pterm.Sprintf("%d", i),
			string(tok.Type),
			tok.Key,
			tok.Operator,
			tok.Value,
			quoted,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	if result.HasIncompleteQuote {
		pterm.Warning.Printfln("incomplete quote, partial value: %q", result.IncompleteQuoteValue)
	}
	return nil
}

type tokenView struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Key      string      `json:"key,omitempty"`
	Operator string      `json:"operator,omitempty"`
	Value    string      `json:"value"`
	RawValue string      `json:"rawValue,omitempty"`
	Quoted   bool        `json:"quoted,omitempty"`
	Range    query.Range `json:"range"`
}

func tokenViews(tokens []query.Token) []tokenView {
	views := make([]tokenView, len(tokens))
	for i, tok := range tokens {
		views[i] = tokenView{
			ID:       tok.ID,
			Type:     string(tok.Type),
			Key:      tok.Key,
			Operator: tok.Operator,
			Value:    tok.Value,
			RawValue: tok.RawValue,
			Quoted:   tok.Quoted,
			Range:    tok.Range,
		}
	}
	return views
}
