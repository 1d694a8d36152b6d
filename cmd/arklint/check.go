package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ets-tools/arklint/internal/output"
	"github.com/ets-tools/arklint/pkg/analyzer/clones"
	"github.com/ets-tools/arklint/pkg/analyzer/methodclone"
	"github.com/ets-tools/arklint/pkg/analyzer/smells"
	"github.com/ets-tools/arklint/pkg/config"
	"github.com/ets-tools/arklint/pkg/models"
	"github.com/ets-tools/arklint/pkg/rules"
	"github.com/ets-tools/arklint/pkg/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Run all enabled rules",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("fail-on", "error", "Exit non-zero when issues at this severity exist: error, warning, never")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	parsed := parseFiles(files)
	report := rules.NewRunner(buildRules(cfg)...).Run(parsed)

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := renderIssues(formatter, report); err != nil {
		return err
	}

	failOn, _ := cmd.Flags().GetString("fail-on")
	counts := report.CountBySeverity()
	switch failOn {
	case "warning":
		if counts[models.SeverityError]+counts[models.SeverityWarning] > 0 {
			return fmt.Errorf("%d issues found", len(report.Issues))
		}
	case "never":
	default:
		if counts[models.SeverityError] > 0 {
			return fmt.Errorf("%d errors found", counts[models.SeverityError])
		}
	}
	return nil
}

// buildRules constructs every enabled rule from its config entry.
func buildRules(cfg *config.Config) []rules.Rule {
	var built []rules.Rule

	if rc := cfg.Rule(rules.RuleCodeSmells); rc.IsEnabled() {
		built = append(built, rules.NewSmellRule(smells.New(
			smells.WithThresholds(smellThresholds(rc)),
		)))
	}
	if rc := cfg.Rule(rules.RuleMethodCloneType1); rc.IsEnabled() {
		built = append(built, rules.NewMethodCloneRule(
			methodclone.NewType1Checker(methodCloneConfig(rc)),
			cfg.RuleSeverity(rules.RuleMethodCloneType1, models.SeverityWarning),
		))
	}
	if rc := cfg.Rule(rules.RuleMethodCloneType2); rc.IsEnabled() {
		built = append(built, rules.NewMethodCloneRule(
			methodclone.NewType2Checker(methodCloneConfig(rc)),
			cfg.RuleSeverity(rules.RuleMethodCloneType2, models.SeverityWarning),
		))
	}
	if rc := cfg.Rule(rules.RuleFragmentClone); rc.IsEnabled() {
		built = append(built, rules.NewFragmentCloneRule(
			clones.NewFragmentChecker(fragmentConfig(rc), source.NewFilesystem()),
			cfg.RuleSeverity(rules.RuleFragmentClone, models.SeverityWarning),
		))
	}
	return built
}

func smellThresholds(rc config.RuleConfig) smells.Thresholds {
	d := smells.DefaultThresholds()
	return smells.Thresholds{
		MaxStmts:        rc.IntOption("maxStmts", d.MaxStmts),
		MaxLines:        rc.IntOption("maxLines", d.MaxLines),
		MaxUIStmtsSoft:  rc.IntOption("maxUIStmtsSoft", d.MaxUIStmtsSoft),
		MaxUIStmtsHard:  rc.IntOption("maxUIStmtsHard", d.MaxUIStmtsHard),
		MinCases:        rc.IntOption("minCases", d.MinCases),
		MinForeignCalls: rc.IntOption("minForeignCalls", d.MinForeignCalls),
	}
}

func methodCloneConfig(rc config.RuleConfig) methodclone.Config {
	d := methodclone.DefaultConfig()
	return methodclone.Config{
		MinStmts:       rc.IntOption("minStmts", d.MinStmts),
		IgnoreLogs:     rc.BoolOption("ignoreLogs", d.IgnoreLogs),
		IgnoreLiterals: rc.BoolOption("ignoreLiterals", d.IgnoreLiterals),
	}
}

func fragmentConfig(rc config.RuleConfig) clones.FragmentConfig {
	d := clones.DefaultFragmentConfig()
	return clones.FragmentConfig{
		MinimumTokens:        rc.IntOption("minimumTokens", d.MinimumTokens),
		NormalizeIdentifiers: rc.BoolOption("normalizeIdentifiers", d.NormalizeIdentifiers),
		NormalizeLiterals:    rc.BoolOption("normalizeLiterals", d.NormalizeLiterals),
	}
}

// renderIssues writes the run summary and the issue table as one report.
func renderIssues(formatter *output.Formatter, report *models.Report) error {
	if len(report.Issues) == 0 {
		formatter.Success("No issues found in %d files", report.TotalFilesScanned)
		return nil
	}

	var rows [][]string
	for _, iss := range report.Issues {
		severity := string(iss.Severity)
		if formatter.Colored() {
			severity = output.SeverityColor(severity, severity)
		}
		rows = append(rows, []string{
			iss.FilePath + ":" + strconv.Itoa(iss.Line),
			severity,
			iss.RuleID,
			truncate(iss.Description, 100),
		})
	}

	counts := report.CountBySeverity()
	return formatter.Output(&output.Report{
		Title: "arklint",
		Sections: []output.Renderable{
			&output.Section{
				Title: "Summary",
				Lines: []string{
					fmt.Sprintf("Files scanned: %d", report.TotalFilesScanned),
					fmt.Sprintf("Rules run: %d", report.RulesRun),
					fmt.Sprintf("Errors: %d", counts[models.SeverityError]),
					fmt.Sprintf("Warnings: %d", counts[models.SeverityWarning]),
					fmt.Sprintf("Suggestions: %d", counts[models.SeveritySuggestion]),
				},
			},
			output.NewTable(
				"Issues",
				[]string{"Location", "Severity", "Rule", "Description"},
				rows,
				nil,
				report.Issues,
			),
		},
		Data: report,
	})
}
