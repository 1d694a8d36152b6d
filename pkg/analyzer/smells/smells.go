// Package smells detects method-level code smells: overly long methods,
// oversized switch statements, feature envy and malformed ForEach calls.
// All checks are threshold computations over the arkts tree; none require
// tokenization.
package smells

import (
	"fmt"

	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/models"
)

// Analyzer runs the smell checks against parsed files.
type Analyzer struct {
	thresholds Thresholds
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithThresholds sets all detection thresholds.
func WithThresholds(t Thresholds) Option {
	return func(a *Analyzer) {
		a.thresholds = t
	}
}

// WithMethodLimits sets the long-method statement and line limits.
func WithMethodLimits(maxStmts, maxLines int) Option {
	return func(a *Analyzer) {
		a.thresholds.MaxStmts = maxStmts
		a.thresholds.MaxLines = maxLines
	}
}

// WithUILimits sets the soft and hard statement limits for UI builder
// methods.
func WithUILimits(soft, hard int) Option {
	return func(a *Analyzer) {
		a.thresholds.MaxUIStmtsSoft = soft
		a.thresholds.MaxUIStmtsHard = hard
	}
}

// WithMinCases sets the oversized-switch case threshold.
func WithMinCases(minCases int) Option {
	return func(a *Analyzer) {
		a.thresholds.MinCases = minCases
	}
}

// New creates a smell analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(a)
	}
	d := DefaultThresholds()
	if a.thresholds.MaxStmts <= 0 {
		a.thresholds.MaxStmts = d.MaxStmts
	}
	if a.thresholds.MaxLines <= 0 {
		a.thresholds.MaxLines = d.MaxLines
	}
	if a.thresholds.MaxUIStmtsSoft <= 0 {
		a.thresholds.MaxUIStmtsSoft = d.MaxUIStmtsSoft
	}
	if a.thresholds.MaxUIStmtsHard <= 0 {
		a.thresholds.MaxUIStmtsHard = d.MaxUIStmtsHard
	}
	if a.thresholds.MinCases <= 0 {
		a.thresholds.MinCases = d.MinCases
	}
	if a.thresholds.MinForeignCalls <= 0 {
		a.thresholds.MinForeignCalls = d.MinForeignCalls
	}
	return a
}

// CheckFile runs every smell check on every method of the file.
func (a *Analyzer) CheckFile(file *arkts.File) []models.Issue {
	var issues []models.Issue
	for _, cls := range file.Classes {
		if cls.Synthetic {
			continue
		}
		for _, m := range cls.Methods {
			if m.Synthetic {
				continue
			}
			issues = append(issues, a.checkLongMethod(m)...)
			issues = append(issues, a.checkSwitches(m)...)
			issues = append(issues, a.checkFeatureEnvy(m)...)
			issues = append(issues, a.checkForEach(m)...)
		}
	}
	return issues
}

// checkLongMethod flags methods whose statement or line counts exceed the
// limits. UI builder methods are measured against their own soft/hard
// statement pair: deep view trees degrade render performance before they
// hurt readability.
func (a *Analyzer) checkLongMethod(m *arkts.Method) []models.Issue {
	stmtCount := len(m.Statements)

	if m.HasViewTree {
		if stmtCount > a.thresholds.MaxUIStmtsHard {
			return []models.Issue{a.issue(m, RuleLongMethod, models.SeverityError,
				fmt.Sprintf("UI builder %q has %d statements (hard limit %d); split the view tree into @Builder methods or child components",
					m.Name, stmtCount, a.thresholds.MaxUIStmtsHard))}
		}
		if stmtCount > a.thresholds.MaxUIStmtsSoft {
			return []models.Issue{a.issue(m, RuleLongMethod, models.SeverityWarning,
				fmt.Sprintf("UI builder %q has %d statements (soft limit %d)",
					m.Name, stmtCount, a.thresholds.MaxUIStmtsSoft))}
		}
		return nil
	}

	if stmtCount > a.thresholds.MaxStmts {
		return []models.Issue{a.issue(m, RuleLongMethod, models.SeverityWarning,
			fmt.Sprintf("method %q has %d statements (limit %d)",
				m.Name, stmtCount, a.thresholds.MaxStmts))}
	}
	if m.LineCount() > a.thresholds.MaxLines {
		return []models.Issue{a.issue(m, RuleLongMethod, models.SeverityWarning,
			fmt.Sprintf("method %q spans %d lines (limit %d)",
				m.Name, m.LineCount(), a.thresholds.MaxLines))}
	}
	return nil
}

// checkSwitches flags switch statements with too many case arms.
func (a *Analyzer) checkSwitches(m *arkts.Method) []models.Issue {
	var issues []models.Issue
	for _, sw := range m.Switches {
		if sw.CaseCount >= a.thresholds.MinCases {
			iss := a.issue(m, RuleLargeSwitch, models.SeverityWarning,
				fmt.Sprintf("switch in %q has %d cases (limit %d); consider a lookup table or polymorphism",
					m.Name, sw.CaseCount, a.thresholds.MinCases))
			iss.Line = sw.Line
			iss.StartCol = sw.Column
			issues = append(issues, iss)
		}
	}
	return issues
}

// checkFeatureEnvy flags methods that call one foreign receiver's members
// more often than their own class's.
func (a *Analyzer) checkFeatureEnvy(m *arkts.Method) []models.Issue {
	if m.IsConstructor {
		return nil
	}

	ownCalls := 0
	foreign := make(map[string]int)
	for _, call := range m.Calls {
		switch call.Receiver {
		case "this":
			ownCalls++
		case "", "<expr>":
			// Bare and complex-receiver calls carry no envy signal.
		default:
			foreign[call.Receiver]++
		}
	}

	enviedName, enviedCalls := "", 0
	for name, count := range foreign {
		if count > enviedCalls || (count == enviedCalls && name < enviedName) {
			enviedName, enviedCalls = name, count
		}
	}

	if enviedCalls > ownCalls && enviedCalls >= a.thresholds.MinForeignCalls {
		return []models.Issue{a.issue(m, RuleFeatureEnvy, models.SeveritySuggestion,
			fmt.Sprintf("method %q calls %q %d times but its own class only %d times; consider moving it",
				m.Name, enviedName, enviedCalls, ownCalls))}
	}
	return nil
}

// checkForEach flags ForEach/forEach calls with the wrong argument count:
// the ArkUI ForEach builder takes an array, an item generator and an
// optional key generator; the array method takes a callback and an
// optional this-argument.
func (a *Analyzer) checkForEach(m *arkts.Method) []models.Issue {
	var issues []models.Issue
	for _, call := range m.Calls {
		var bad bool
		switch {
		case call.Name == "ForEach" && call.Receiver == "":
			bad = call.ArgCount < 2 || call.ArgCount > 3
		case call.Name == "forEach" && call.Receiver != "":
			bad = call.ArgCount < 1 || call.ArgCount > 2
		}
		if bad {
			iss := a.issue(m, RuleForEachArgs, models.SeverityWarning,
				fmt.Sprintf("%s called with %d arguments", call.Name, call.ArgCount))
			iss.Line = call.Line
			iss.StartCol = call.Column
			issues = append(issues, iss)
		}
	}
	return issues
}

func (a *Analyzer) issue(m *arkts.Method, ruleID string, severity models.Severity, description string) models.Issue {
	return models.Issue{
		RuleID:      ruleID,
		Severity:    severity,
		FilePath:    m.Class.File.Path,
		Line:        m.StartLine,
		StartCol:    m.StartCol,
		EndCol:      m.StartCol + len(m.Name),
		Description: description,
		MethodName:  m.Name,
		ClassName:   m.Class.Name,
	}
}
