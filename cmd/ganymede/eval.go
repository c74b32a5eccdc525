package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/policy"
	"mercator-hq/ganymede/pkg/policy/source"
)

var evalFlags struct {
	file        string
	db          string
	rule        string
	roles       []string
	apiAttrs    []string
	targetAttrs []string
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a rule against a synthetic request",
	Long: `Evaluate a named rule against a request built from flags.

The command loads a rule file (or a SQLite rule database), constructs a token
from --role and --api-attr flags and a target from --target-attr flags, then
evaluates the named rule. The exit code is 0 when the rule allows and 1 when
it denies, so the command composes with shell conditionals.

Examples:
  # Is an admin in the admin domain a cloud admin?
  ganymede eval --file policy.yaml --rule cloud_admin \
      --role admin --api-attr domain_id=admin_domain_id

  # Owner check with a target attribute
  ganymede eval --file policy.yaml --rule owner \
      --api-attr user_id=u-1 --target-attr user_id=u-1

  # Rules stored in SQLite
  ganymede eval --db rules.sqlite --rule owner --api-attr user_id=u-1`,
	RunE: evalRule,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.file, "file", "f", "", "rule file or directory")
	evalCmd.Flags().StringVar(&evalFlags.db, "db", "", "SQLite rule database")
	evalCmd.Flags().StringVarP(&evalFlags.rule, "rule", "r", "", "rule name to evaluate (required)")
	evalCmd.Flags().StringSliceVar(&evalFlags.roles, "role", nil, "token role (repeatable)")
	evalCmd.Flags().StringSliceVar(&evalFlags.apiAttrs, "api-attr", nil, "token API attribute as key=value (repeatable)")
	evalCmd.Flags().StringSliceVar(&evalFlags.targetAttrs, "target-attr", nil, "target attribute as key=value (repeatable)")
	evalCmd.MarkFlagRequired("rule")
}

func evalRule(cmd *cobra.Command, args []string) error {
	if (evalFlags.file == "") == (evalFlags.db == "") {
		return fmt.Errorf("exactly one of --file or --db must be specified")
	}

	logger := newLogger()

	var src source.Source
	if evalFlags.file != "" {
		src = source.NewFile(evalFlags.file, logger)
	} else {
		db, err := source.NewSQLite(evalFlags.db)
		if err != nil {
			return err
		}
		defer db.Close()
		src = db
	}

	rs := policy.NewRuleSet().WithLogger(logger)
	if err := source.Apply(cmd.Context(), src, rs); err != nil {
		return err
	}

	apiAttrs, err := parseAttrs(evalFlags.apiAttrs)
	if err != nil {
		return fmt.Errorf("invalid --api-attr: %w", err)
	}
	targetAttrs, err := parseAttrs(evalFlags.targetAttrs)
	if err != nil {
		return fmt.Errorf("invalid --target-attr: %w", err)
	}

	token := &policy.StaticToken{
		Roles:         evalFlags.roles,
		APIAttributes: apiAttrs,
	}
	req := policy.NewRequest(token)
	if len(targetAttrs) > 0 {
		req = req.WithTarget(policy.TargetMap(targetAttrs))
	}

	if rs.Evaluate(evalFlags.rule, req) {
		fmt.Printf("ALLOW %s\n", evalFlags.rule)
		return nil
	}
	fmt.Printf("DENY %s\n", evalFlags.rule)
	os.Exit(1)
	return nil
}

// parseAttrs parses repeated key=value flags into a map.
func parseAttrs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%q is not of the form key=value", pair)
		}
		attrs[key] = value
	}
	return attrs, nil
}
