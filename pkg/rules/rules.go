// Package rules implements the matcher/callback registration protocol:
// rules declare interest in files, classes or methods (optionally
// filtered), and the runner invokes them once per matching entity during
// a scan. File-scoped rules additionally get BeforeCheck/AfterCheck
// lifecycle hooks bracketing the whole run.
package rules

import (
	"sort"

	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/models"
)

// MatcherKind selects which entities a rule is invoked for.
type MatcherKind int

const (
	MatchFile MatcherKind = iota
	MatchClass
	MatchMethod
)

// Matcher declares one interest of a rule. Empty filter slices match
// everything of the kind.
type Matcher struct {
	Kind MatcherKind
	// Class filters (MatchClass and MatchMethod).
	Categories      []arkts.ClassCategory
	ClassDecorators []string
	// Method filters (MatchMethod).
	MethodNames      []string
	MethodDecorators []string
}

// Rule is a registered checker.
type Rule interface {
	ID() string
	Matchers() []Matcher
}

// FileCallback is invoked once per scanned file.
type FileCallback interface {
	OnFile(file *arkts.File) []models.Issue
}

// ClassCallback is invoked once per matching class.
type ClassCallback interface {
	OnClass(cls *arkts.Class) []models.Issue
}

// MethodCallback is invoked once per matching method.
type MethodCallback interface {
	OnMethod(m *arkts.Method) []models.Issue
}

// Lifecycle brackets a whole run for rules that defer computation until
// the complete corpus has been seen.
type Lifecycle interface {
	BeforeCheck()
	AfterCheck() []models.Issue
}

// Runner drives registered rules over parsed files, single-threaded and
// single-pass: callbacks fire one entity at a time, in sorted file order
// so report order is deterministic across runs.
type Runner struct {
	rules []Rule
}

// NewRunner creates a runner over the given rules.
func NewRunner(ruleSet ...Rule) *Runner {
	return &Runner{rules: ruleSet}
}

// Rules returns the registered rules.
func (r *Runner) Rules() []Rule {
	return r.rules
}

// Run invokes every rule over every file and returns the aggregate
// report.
func (r *Runner) Run(files []*arkts.File) *models.Report {
	sorted := make([]*arkts.File, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	report := &models.Report{
		TotalFilesScanned: len(sorted),
		RulesRun:          len(r.rules),
	}

	for _, rule := range r.rules {
		if lc, ok := rule.(Lifecycle); ok {
			lc.BeforeCheck()
		}
	}

	for _, file := range sorted {
		for _, rule := range r.rules {
			report.Issues = append(report.Issues, r.dispatch(rule, file)...)
		}
	}

	for _, rule := range r.rules {
		if lc, ok := rule.(Lifecycle); ok {
			report.Issues = append(report.Issues, lc.AfterCheck()...)
		}
	}
	return report
}

func (r *Runner) dispatch(rule Rule, file *arkts.File) []models.Issue {
	var issues []models.Issue
	for _, m := range rule.Matchers() {
		switch m.Kind {
		case MatchFile:
			if cb, ok := rule.(FileCallback); ok {
				issues = append(issues, cb.OnFile(file)...)
			}
		case MatchClass:
			cb, ok := rule.(ClassCallback)
			if !ok {
				continue
			}
			for _, cls := range file.Classes {
				if matchClass(m, cls) {
					issues = append(issues, cb.OnClass(cls)...)
				}
			}
		case MatchMethod:
			cb, ok := rule.(MethodCallback)
			if !ok {
				continue
			}
			for _, cls := range file.Classes {
				if !matchClass(m, cls) {
					continue
				}
				for _, method := range cls.Methods {
					if matchMethod(m, method) {
						issues = append(issues, cb.OnMethod(method)...)
					}
				}
			}
		}
	}
	return issues
}

func matchClass(m Matcher, cls *arkts.Class) bool {
	if len(m.Categories) > 0 && !containsCategory(m.Categories, cls.Category) {
		return false
	}
	for _, d := range m.ClassDecorators {
		if !cls.HasDecorator(d) {
			return false
		}
	}
	return true
}

func matchMethod(m Matcher, method *arkts.Method) bool {
	if len(m.MethodNames) > 0 && !containsString(m.MethodNames, method.Name) {
		return false
	}
	for _, d := range m.MethodDecorators {
		if !method.HasDecorator(d) {
			return false
		}
	}
	return true
}

func containsCategory(list []arkts.ClassCategory, c arkts.ClassCategory) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
