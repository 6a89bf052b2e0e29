package commands

import (
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/tokenfield/errors"
	"github.com/teranos/tokenfield/logger"
	"github.com/teranos/tokenfield/query"
	"github.com/teranos/tokenfield/validation"
)

var (
	checkStrategy string
	checkUnique   string
	checkMaxCount int
)

// CheckCmd runs validation rules against a query
var CheckCmd = &cobra.Command{
	Use:   "check [QUERY]",
	Short: "Run validation rules against a query",
	Long: `Run validation rules against a query and report the resulting
delete/mark instructions. All tokens count as freshly created, as in a
paste or load.

Rules applied: uniqueness (per --unique signature), an optional global
count limit, enum membership for enum fields, and per-field predicates
from the catalog.

Examples:
  tokenfield check 'status:is:active status:is:done'
  tokenfield check --strategy replace 'status:is:a status:is:b'
  tokenfield check --max-count 5 'a:is:1 b:is:2 ...'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheckCommand,
}

func init() {
	CheckCmd.Flags().StringVarP(&checkStrategy, "strategy", "s", "mark", "Conflict strategy (mark/reject/replace)")
	CheckCmd.Flags().StringVarP(&checkUnique, "unique", "u", "key-operator", "Uniqueness signature (key/key-operator/exact)")
	CheckCmd.Flags().IntVar(&checkMaxCount, "max-count", 0, "Limit total token count (0 = unlimited)")
	CheckCmd.Flags().Bool("allow-unknown", false, "Parse unknown field keys as filters instead of free text")
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	strategy := validation.Strategy(checkStrategy)
	switch strategy {
	case validation.StrategyMark, validation.StrategyReject, validation.StrategyReplace:
	default:
		return errors.Newf("unknown strategy %q", checkStrategy)
	}

	signature := validation.Signature(checkUnique)
	switch signature {
	case validation.ByKey, validation.ByKeyOperator, validation.Exact:
	default:
		return errors.Newf("unknown uniqueness signature %q", checkUnique)
	}

	result := query.ParseQueryString(queryFromArgs(args), catalog, parseOptions(cmd))

	rules := []validation.Rule{validation.NewUniqueRule(signature, strategy)}
	if checkMaxCount > 0 {
		rules = append(rules, validation.NewMaxCountRule(validation.AllKeys, checkMaxCount, strategy))
	}
	rules = append(rules, validation.CatalogRules(catalog, strategy)...)

	engine := validation.NewEngine()
	engine.SetLogger(logger.Logger)

	ctx := validation.NewForceCheckContext(result.Tokens, catalog)
	plan := engine.Run(ctx, rules)

	if jsonOutput(cmd) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(checkView(result.Tokens, plan))
	}

	if plan.Empty() {
		pterm.Success.Println("no violations")
		return nil
	}

	byID := make(map[string]query.Token, len(result.Tokens))
	for _, tok := range result.Tokens {
		byID[tok.ID] = tok
	}
	for _, target := range plan.Deletions {
		pterm.Error.Printfln("delete %s", describeToken(byID[target.TokenID]))
	}
	for _, mark := range plan.Marks {
		pterm.Warning.Printfln("invalid %s: %s", describeToken(byID[mark.Target.TokenID]), mark.Message)
	}
	return nil
}

func describeToken(tok query.Token) string {
	if tok.IsFilter() {
		return pterm.Sprintf("%s:%s:%s", tok.Key, tok.Operator, tok.Value)
	}
	return pterm.Sprintf("%q", tok.Value)
}

type checkResultView struct {
	Deletions []string    `json:"deletions"`
	Marks     []markView  `json:"marks"`
	Tokens    []tokenView `json:"tokens"`
}

type markView struct {
	TokenID string `json:"tokenId"`
	RuleID  string `json:"ruleId"`
	Reason  string `json:"reason"`
	Message string `json:"message,omitempty"`
}

func checkView(tokens []query.Token, plan *validation.Plan) checkResultView {
	view := checkResultView{
		Deletions: plan.DeletedTokenIDs(),
		Tokens:    tokenViews(tokens),
	}
	for _, mark := range plan.Marks {
		view.Marks = append(view.Marks, markView{
			TokenID: mark.Target.TokenID,
			RuleID:  mark.RuleID,
			Reason:  mark.Reason,
			Message: mark.Message,
		})
	}
	return view
}
