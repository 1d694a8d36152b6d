package smells

// Rule IDs reported by this analyzer.
const (
	RuleLongMethod  = "long-method"
	RuleLargeSwitch = "large-switch"
	RuleFeatureEnvy = "feature-envy"
	RuleForEachArgs = "foreach-args"
)

// Thresholds defines the detection limits for all smell checks.
type Thresholds struct {
	// Long method limits for regular methods.
	MaxStmts int
	MaxLines int
	// UI-builder methods get their own pair: exceeding the soft limit is
	// a warning, the hard limit an error.
	MaxUIStmtsSoft int
	MaxUIStmtsHard int
	// Minimum case count for an oversized switch.
	MinCases int
	// Feature envy requires at least this many calls to one foreign
	// receiver before a method can be flagged.
	MinForeignCalls int
}

// DefaultThresholds returns the default smell thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxStmts:        50,
		MaxLines:        100,
		MaxUIStmtsSoft:  30,
		MaxUIStmtsHard:  60,
		MinCases:        10,
		MinForeignCalls: 5,
	}
}
