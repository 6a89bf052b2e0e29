package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/tokenfield/errors"
	"github.com/teranos/tokenfield/fields"
	"github.com/teranos/tokenfield/query"
)

// loadCatalog resolves the fields catalog path (flag > env > default)
// and loads it.
func loadCatalog(cmd *cobra.Command) (*fields.Catalog, error) {
	v := viper.New()
	v.SetEnvPrefix("tokenfield")
	v.AutomaticEnv()
	v.SetDefault("fields", "fields.yaml")

	if path, err := cmd.Flags().GetString("fields"); err == nil && path != "" {
		v.Set("fields", path)
	}

	catalog, err := fields.LoadCatalog(v.GetString("fields"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load fields catalog")
	}
	return catalog, nil
}

// queryFromArgs joins positional args back into one query string, so
// both quoted single-arg and bare multi-arg invocations work.
func queryFromArgs(args []string) string {
	return strings.Join(args, " ")
}

func parseOptions(cmd *cobra.Command) query.ParseOptions {
	allowUnknown, _ := cmd.Flags().GetBool("allow-unknown")
	return query.ParseOptions{AllowUnknownFields: allowUnknown}
}

func jsonOutput(cmd *cobra.Command) bool {
	json, _ := cmd.Flags().GetBool("json")
	return json
}
