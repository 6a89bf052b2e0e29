package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/tokenfield/query"
)

// FmtCmd prints the canonical form of a query
var FmtCmd = &cobra.Command{
	Use:   "fmt [QUERY]",
	Short: "Print the canonical form of a query",
	Long: `Print the canonical form of a query: whitespace collapsed and
quoting reduced to what the values structurally require.

Examples:
  tokenfield fmt 'status:is:"a,b,c"'      # quotes dropped
  tokenfield fmt 'assignee:is:"John Doe"' # quotes kept (space)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmtCommand,
}

func init() {
	FmtCmd.Flags().Bool("allow-unknown", false, "Parse unknown field keys as filters instead of free text")
}

func runFmtCommand(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	fmt.Println(query.Normalize(queryFromArgs(args), catalog, parseOptions(cmd)))
	return nil
}
