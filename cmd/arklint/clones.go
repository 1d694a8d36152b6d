package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ets-tools/arklint/internal/output"
	"github.com/ets-tools/arklint/pkg/analyzer/clones"
	"github.com/ets-tools/arklint/pkg/models"
	"github.com/ets-tools/arklint/pkg/rules"
	"github.com/ets-tools/arklint/pkg/source"
)

var clonesCmd = &cobra.Command{
	Use:     "clones [path...]",
	Aliases: []string{"fragments"},
	Short:   "Detect duplicated token fragments across the project",
	RunE:    runClones,
}

func init() {
	clonesCmd.Flags().Int("min-tokens", 0, "Sliding window size in tokens (0 = config value)")
	clonesCmd.Flags().Bool("exact", false, "Disable identifier normalization (Type-1 matching only)")
	clonesCmd.Flags().Bool("normalize-literals", false, "Also abstract literal values before hashing")
	rootCmd.AddCommand(clonesCmd)
}

func runClones(cmd *cobra.Command, args []string) error {
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

	fragCfg := fragmentConfig(cfg.Rule(rules.RuleFragmentClone))
	if v, _ := cmd.Flags().GetInt("min-tokens"); v > 0 {
		fragCfg.MinimumTokens = v
	}
	if exact, _ := cmd.Flags().GetBool("exact"); exact {
		fragCfg.NormalizeIdentifiers = false
		fragCfg.NormalizeLiterals = false
	}
	if nl, _ := cmd.Flags().GetBool("normalize-literals"); nl {
		fragCfg.NormalizeLiterals = true
	}

	rule := rules.NewFragmentCloneRule(
		clones.NewFragmentChecker(fragCfg, source.NewFilesystem()),
		cfg.RuleSeverity(rules.RuleFragmentClone, models.SeverityWarning),
	)

	parsed := parseFiles(files)
	rules.NewRunner(rule).Run(parsed)
	reports := rule.Reports()

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(reports) == 0 {
		formatter.Success("No fragment clones found in %d files", len(parsed))
		return nil
	}

	var rows [][]string
	for _, rep := range reports {
		rows = append(rows, []string{
			string(rep.CloneType),
			string(rep.Scope),
			cloneSide(rep.Location1),
			cloneSide(rep.Location2),
			strconv.Itoa(rep.TokenCount),
			strconv.Itoa(rep.LineCount),
		})
	}

	table := output.NewTable(
		"Fragment Clones",
		[]string{"Type", "Scope", "Location 1", "Location 2", "Tokens", "Lines"},
		rows,
		[]string{fmt.Sprintf("Total Clones: %d", len(reports))},
		reports,
	)
	return formatter.Output(table)
}

// cloneSide renders one side of a clone as file:start-end, with the
// enclosing class.method when resolved.
func cloneSide(loc clones.CodeLocation) string {
	s := fmt.Sprintf("%s:%d-%d", loc.File, loc.StartLine, loc.EndLine)
	if loc.MethodName != "" {
		s += fmt.Sprintf(" (%s.%s)", loc.ClassName, loc.MethodName)
	}
	return s
}
