package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/tokenfield/cmd/tokenfield/commands"
	"github.com/teranos/tokenfield/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tokenfield",
	Short: "tokenfield - filter query parsing and validation",
	Long: `tokenfield - filter query parsing and validation

Parses compact filter queries (status:is:active "search term") into
token sequences, renders them back to canonical text, and checks them
against a fields catalog.

Available commands:
  parse  - Tokenize a query and show the token sequence
  fmt    - Print the canonical form of a query
  check  - Run validation rules against a query
  fields - Inspect the fields catalog

Examples:
  tokenfield parse 'status:is:active "search term"'
  tokenfield fmt 'status:is:"a,b,c"'
  tokenfield check --strategy reject 'status:is:active status:is:done'
  tokenfield fields --suggest sta`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")
	rootCmd.PersistentFlags().StringP("fields", "f", "", "Path to fields catalog YAML (default fields.yaml, env TOKENFIELD_FIELDS)")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.FmtCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.FieldsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
