package rules

import (
	"fmt"

	"github.com/ets-tools/arklint/pkg/analyzer/clones"
	"github.com/ets-tools/arklint/pkg/analyzer/methodclone"
	"github.com/ets-tools/arklint/pkg/analyzer/smells"
	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/models"
)

// Rule IDs for the clone checkers. The smell rule IDs live with their
// analyzer and are emitted per finding.
const (
	RuleMethodCloneType1 = "method-clone-type1"
	RuleMethodCloneType2 = "method-clone-type2"
	RuleFragmentClone    = "fragment-clone"
	RuleCodeSmells       = "code-smells"
)

// SmellRule adapts the smells analyzer to the rule protocol. It reports
// under the per-check IDs (long-method, large-switch, feature-envy,
// foreach-args) rather than its registration ID.
type SmellRule struct {
	analyzer *smells.Analyzer
}

// NewSmellRule wraps a smell analyzer as a file-scoped rule.
func NewSmellRule(analyzer *smells.Analyzer) *SmellRule {
	return &SmellRule{analyzer: analyzer}
}

func (r *SmellRule) ID() string { return RuleCodeSmells }

func (r *SmellRule) Matchers() []Matcher {
	return []Matcher{{Kind: MatchFile}}
}

func (r *SmellRule) OnFile(file *arkts.File) []models.Issue {
	return r.analyzer.CheckFile(file)
}

// MethodCloneRule adapts a method-clone checker. Collection happens per
// file; pairing and reporting are deferred to AfterCheck so cross-file
// clone families see the whole corpus.
type MethodCloneRule struct {
	checker  *methodclone.Checker
	severity models.Severity
}

// NewMethodCloneRule wraps a method-clone checker as a file-scoped rule
// reporting at the given severity.
func NewMethodCloneRule(checker *methodclone.Checker, severity models.Severity) *MethodCloneRule {
	return &MethodCloneRule{checker: checker, severity: severity}
}

func (r *MethodCloneRule) ID() string {
	if r.checker.Kind() == methodclone.KindType1 {
		return RuleMethodCloneType1
	}
	return RuleMethodCloneType2
}

func (r *MethodCloneRule) Matchers() []Matcher {
	return []Matcher{{Kind: MatchFile}}
}

func (r *MethodCloneRule) BeforeCheck() {
	r.checker.BeforeCheck()
}

func (r *MethodCloneRule) OnFile(file *arkts.File) []models.Issue {
	r.checker.CollectFile(file)
	return nil
}

func (r *MethodCloneRule) AfterCheck() []models.Issue {
	var issues []models.Issue
	for _, rep := range r.checker.AfterCheck() {
		issues = append(issues, models.Issue{
			RuleID:   r.ID(),
			Severity: r.severity,
			FilePath: rep.Location1.FilePath,
			Line:     rep.Location1.StartLine,
			Description: fmt.Sprintf("%s clone of %s.%s (%s:%d-%d), %d statements",
				rep.Kind,
				rep.Location2.ClassName, rep.Location2.MethodName,
				rep.Location2.FilePath, rep.Location2.StartLine, rep.Location2.EndLine,
				rep.StmtCount),
			MethodName: rep.Location1.MethodName,
			ClassName:  rep.Location1.ClassName,
		})
	}
	return issues
}

// Reports returns the structured reports from the last completed run.
func (r *MethodCloneRule) Reports() []methodclone.Report {
	return r.checker.AfterCheck()
}

// FragmentCloneRule adapts the fragment clone checker. Like the method
// rule, it collects per file and reports in AfterCheck.
type FragmentCloneRule struct {
	checker  *clones.FragmentChecker
	severity models.Severity

	reports []clones.FragmentReport
}

// NewFragmentCloneRule wraps a fragment checker as a file-scoped rule
// reporting at the given severity.
func NewFragmentCloneRule(checker *clones.FragmentChecker, severity models.Severity) *FragmentCloneRule {
	return &FragmentCloneRule{checker: checker, severity: severity}
}

func (r *FragmentCloneRule) ID() string { return RuleFragmentClone }

func (r *FragmentCloneRule) Matchers() []Matcher {
	return []Matcher{{Kind: MatchFile}}
}

func (r *FragmentCloneRule) BeforeCheck() {
	r.checker.BeforeCheck()
	r.reports = nil
}

// OnFile tokenizes and indexes the file. An unreadable file is skipped;
// the rest of the corpus still runs.
func (r *FragmentCloneRule) OnFile(file *arkts.File) []models.Issue {
	if err := r.checker.CollectFile(file); err != nil {
		return []models.Issue{{
			RuleID:      r.ID(),
			Severity:    models.SeverityWarning,
			FilePath:    file.Path,
			Line:        1,
			Description: err.Error(),
		}}
	}
	return nil
}

func (r *FragmentCloneRule) AfterCheck() []models.Issue {
	r.reports = r.checker.AfterCheck()
	var issues []models.Issue
	for _, rep := range r.reports {
		issues = append(issues, models.Issue{
			RuleID:   r.ID(),
			Severity: r.severity,
			FilePath: rep.Location1.File,
			Line:     rep.Location1.StartLine,
			Description: fmt.Sprintf("%s fragment clone (%s) of %s:%d-%d, %d tokens over %d lines",
				rep.CloneType, rep.Scope,
				rep.Location2.File, rep.Location2.StartLine, rep.Location2.EndLine,
				rep.TokenCount, rep.LineCount),
			MethodName: rep.Location1.MethodName,
			ClassName:  rep.Location1.ClassName,
		})
	}
	return issues
}

// Reports returns the structured fragment reports from the last completed
// run.
func (r *FragmentCloneRule) Reports() []clones.FragmentReport {
	return r.reports
}
