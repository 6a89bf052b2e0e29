package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tokenfield/fields"
	"github.com/teranos/tokenfield/logger"
)

var fieldsSuggest string

// FieldsCmd inspects the fields catalog
var FieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Inspect the fields catalog",
	Long: `Inspect the fields catalog.

Examples:
  tokenfield fields                  # list all fields
  tokenfield fields --suggest sta    # fields matching a partial key`,
	RunE: runFieldsCommand,
}

func init() {
	FieldsCmd.Flags().StringVar(&fieldsSuggest, "suggest", "", "Show fields matching a partial key or label")
}

func runFieldsCommand(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	defs := catalog.Definitions()
	if fieldsSuggest != "" {
		suggester := fields.NewSuggester(catalog)
		suggester.SetLogger(logger.Logger)
		defs = suggester.Suggest(fieldsSuggest)
	}

	rows := pterm.TableData{{"Key", "Label", "Type", "Operators", "Values"}}
	for _, def := range defs {
		values := ""
		if len(def.Enum) > 0 {
			names := make([]string, len(def.Enum))
			for i, opt := range def.Enum {
				names[i] = opt.Value
			}
			values = strings.Join(names, ", ")
		}
		rows = append(rows, []string{
			def.Key,
			def.Label,
			string(def.Type),
			strings.Join(def.Operators, ", "),
			values,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
