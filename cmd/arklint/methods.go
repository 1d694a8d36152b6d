package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ets-tools/arklint/internal/output"
	"github.com/ets-tools/arklint/pkg/analyzer/methodclone"
	"github.com/ets-tools/arklint/pkg/models"
	"github.com/ets-tools/arklint/pkg/rules"
)

var methodsCmd = &cobra.Command{
	Use:     "methods [path...]",
	Aliases: []string{"method-clones"},
	Short:   "Detect duplicated methods (Type-1 and Type-2)",
	RunE:    runMethods,
}

func init() {
	methodsCmd.Flags().Int("min-stmts", 0, "Minimum statement count for an eligible method (0 = config value)")
	methodsCmd.Flags().Bool("keep-logs", false, "Count logging statements instead of filtering them")
	methodsCmd.Flags().Bool("ignore-literals", false, "Abstract literal values under Type-2 matching")
	methodsCmd.Flags().String("kind", "both", "Which detection to run: type1, type2, both")
	rootCmd.AddCommand(methodsCmd)
}

func runMethods(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := collectFiles(cfg, getPaths(args))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	kind, _ := cmd.Flags().GetString("kind")
	var ruleSet []rules.Rule
	var cloneRules []*rules.MethodCloneRule
	if kind == "type1" || kind == "both" {
		mcCfg := overrideMethodConfig(cmd, methodCloneConfig(cfg.Rule(rules.RuleMethodCloneType1)))
		r := rules.NewMethodCloneRule(methodclone.NewType1Checker(mcCfg),
			cfg.RuleSeverity(rules.RuleMethodCloneType1, models.SeverityWarning))
		ruleSet = append(ruleSet, r)
		cloneRules = append(cloneRules, r)
	}
	if kind == "type2" || kind == "both" {
		mcCfg := overrideMethodConfig(cmd, methodCloneConfig(cfg.Rule(rules.RuleMethodCloneType2)))
		r := rules.NewMethodCloneRule(methodclone.NewType2Checker(mcCfg),
			cfg.RuleSeverity(rules.RuleMethodCloneType2, models.SeverityWarning))
		ruleSet = append(ruleSet, r)
		cloneRules = append(cloneRules, r)
	}
	if len(ruleSet) == 0 {
		return fmt.Errorf("unknown --kind %q (want type1, type2 or both)", kind)
	}

	parsed := parseFiles(files)
	rules.NewRunner(ruleSet...).Run(parsed)

	var reports []methodclone.Report
	for _, r := range cloneRules {
		reports = append(reports, r.Reports()...)
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(reports) == 0 {
		formatter.Success("No method clones found in %d files", len(parsed))
		return nil
	}

	var rows [][]string
	for _, rep := range reports {
		rows = append(rows, []string{
			string(rep.Kind),
			methodSide(rep.Location1),
			methodSide(rep.Location2),
			strconv.Itoa(rep.StmtCount),
		})
	}

	table := output.NewTable(
		"Method Clones",
		[]string{"Kind", "Method 1", "Method 2", "Statements"},
		rows,
		[]string{fmt.Sprintf("Total Clones: %d", len(reports))},
		reports,
	)
	return formatter.Output(table)
}

func overrideMethodConfig(cmd *cobra.Command, mcCfg methodclone.Config) methodclone.Config {
	if v, _ := cmd.Flags().GetInt("min-stmts"); v > 0 {
		mcCfg.MinStmts = v
	}
	if keep, _ := cmd.Flags().GetBool("keep-logs"); keep {
		mcCfg.IgnoreLogs = false
	}
	if il, _ := cmd.Flags().GetBool("ignore-literals"); il {
		mcCfg.IgnoreLiterals = true
	}
	return mcCfg
}

func methodSide(loc methodclone.MethodLocation) string {
	return fmt.Sprintf("%s:%d-%d %s.%s",
		loc.FilePath, loc.StartLine, loc.EndLine, loc.ClassName, loc.MethodName)
}
