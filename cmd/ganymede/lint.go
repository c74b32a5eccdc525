package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mercator-hq/ganymede/pkg/policy/parser"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate rule files",
	Long: `Validate policy rule files for grammar errors.

The lint command reads rule files (flat YAML or JSON mappings of rule name to
rule text), parses every rule, and reports grammar errors with their line and
column within the rule text.

Examples:
  # Lint single file
  ganymede lint --file policy.yaml

  # Lint directory
  ganymede lint --dir policies/

  # JSON output for CI/CD
  ganymede lint --file policy.yaml --format json`,
	RunE: lintRules,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "rule file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of rule files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single rule file.
type LintResult struct {
	File  string      `json:"file"`
	Valid bool        `json:"valid"`
	Rules []RuleCheck `json:"rules,omitempty"`
}

// RuleCheck represents the validation of a single named rule.
type RuleCheck struct {
	Rule      string `json:"rule"`
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"` // Simplest rendering of the parsed rule
	Error     string `json:"error,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

func lintRules(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
			matches, err := filepath.Glob(filepath.Join(lintFlags.dir, pattern))
			if err != nil {
				return fmt.Errorf("failed to list rule files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no rule files found")
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results)
}

// lintFile validates every rule in one file.
func lintFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Rules = []RuleCheck{{Rule: "", Valid: false, Error: err.Error()}}
		return result
	}

	var rules map[string]string
	if err := yaml.Unmarshal(data, &rules); err != nil {
		result.Valid = false
		result.Rules = []RuleCheck{{Rule: "", Valid: false, Error: err.Error()}}
		return result
	}

	// Parse each rule individually so every malformed rule is reported, not
	// just the first.
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := RuleCheck{Rule: name, Valid: true}

		expr, perr := parser.Parse(rules[name])
		if perr != nil {
			check.Valid = false
			result.Valid = false
			check.Error = perr.Error()
			check.Line = perr.Location.Line
			check.Column = perr.Location.Column
		} else {
			check.Canonical = expr.String()
		}
		result.Rules = append(result.Rules, check)
	}

	return result
}

func outputJSON(results []LintResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}
	return exitOnInvalid(results)
}

func outputText(results []LintResult) error {
	for _, result := range results {
		status := "OK"
		if !result.Valid {
			status = "FAIL"
		}
		fmt.Printf("%s: %s\n", result.File, status)
		for _, check := range result.Rules {
			if check.Valid {
				continue
			}
			if check.Line > 0 {
				fmt.Printf("  %s: %d:%d: %s\n", check.Rule, check.Line, check.Column, check.Error)
			} else {
				fmt.Printf("  %s: %s\n", check.Rule, check.Error)
			}
		}
	}
	return exitOnInvalid(results)
}

func exitOnInvalid(results []LintResult) error {
	for _, result := range results {
		if !result.Valid {
			os.Exit(1)
		}
	}
	return nil
}
