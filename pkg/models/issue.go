package models

// Severity indicates how serious a reported issue is.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// Issue represents a single finding reported by a rule.
type Issue struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	FilePath    string   `json:"file_path"`
	Line        int      `json:"line"`
	StartCol    int      `json:"start_col"`
	EndCol      int      `json:"end_col"`
	Description string   `json:"description"`
	MethodName  string   `json:"method_name,omitempty"`
	ClassName   string   `json:"class_name,omitempty"`
}

// Report is the aggregate result of one run.
type Report struct {
	Issues            []Issue `json:"issues"`
	TotalFilesScanned int     `json:"total_files_scanned"`
	RulesRun          int     `json:"rules_run"`
}

// CountBySeverity returns the number of issues at each severity level.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, iss := range r.Issues {
		counts[iss.Severity]++
	}
	return counts
}
