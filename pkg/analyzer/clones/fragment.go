package clones

import (
	"fmt"

	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/lexer"
	"github.com/ets-tools/arklint/pkg/source"
)

// FragmentConfig configures the fragment-level clone checker.
type FragmentConfig struct {
	// MinimumTokens is both the sliding-window size and the minimum token
	// count for a file to participate at all.
	MinimumTokens        int
	NormalizeIdentifiers bool
	NormalizeLiterals    bool
}

// DefaultFragmentConfig returns the default fragment checker settings.
func DefaultFragmentConfig() FragmentConfig {
	return FragmentConfig{
		MinimumTokens:        100,
		NormalizeIdentifiers: true,
	}
}

// FragmentChecker drives the full token-fragment pipeline across a
// project: tokenize each file, index sliding windows, and at the end of
// the run merge pairwise matches into maximal regions and resolve them
// back to their enclosing class/method.
//
// Lifecycle per run: BeforeCheck, CollectFile for every file, AfterCheck.
// All pairwise and merge computation is deferred to AfterCheck so that
// cross-file matches see the complete corpus. State is owned by this
// instance; there is no cross-run persistence.
type FragmentChecker struct {
	cfg     FragmentConfig
	src     source.ContentSource
	matcher *Matcher
	files   map[string]*arkts.File
}

// NewFragmentChecker creates a fragment checker reading raw source text
// from src.
func NewFragmentChecker(cfg FragmentConfig, src source.ContentSource) *FragmentChecker {
	if cfg.MinimumTokens <= 0 {
		cfg.MinimumTokens = DefaultFragmentConfig().MinimumTokens
	}
	return &FragmentChecker{
		cfg: cfg,
		src: src,
	}
}

// BeforeCheck resets all per-run state.
func (c *FragmentChecker) BeforeCheck() {
	c.matcher = NewMatcher(c.cfg.MinimumTokens)
	c.files = make(map[string]*arkts.File)
}

// CollectFile tokenizes one file and feeds its windows to the matcher.
// The raw source is re-read from the content source: token-level text is
// needed, independent of the parsed tree. A read failure or a file with
// fewer tokens than one window is a soft skip.
func (c *FragmentChecker) CollectFile(file *arkts.File) error {
	content, err := c.src.Read(file.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", file.Path, err)
	}

	tokens := lexer.Tokenize(string(content), file.Path, lexer.Options{
		SkipComments:         true,
		NormalizeIdentifiers: c.cfg.NormalizeIdentifiers,
		NormalizeLiterals:    c.cfg.NormalizeLiterals,
	})
	if len(tokens) < c.cfg.MinimumTokens {
		return nil
	}

	c.files[file.Path] = file
	c.matcher.ProcessFile(tokens, file.Path)
	return nil
}

// AfterCheck merges all accumulated clone pairs into maximal regions and
// emits one deduplicated report per merged clone, keyed at location1.
func (c *FragmentChecker) AfterCheck() []FragmentReport {
	merged := Merge(c.matcher.ClonePairs())
	if len(merged) == 0 {
		return nil
	}

	cloneType := Type1
	if c.cfg.NormalizeIdentifiers || c.cfg.NormalizeLiterals {
		cloneType = Type2
	}

	seen := make(map[string]bool)
	var reports []FragmentReport
	for _, clone := range merged {
		loc1 := c.resolve(clone.Location1)
		loc2 := c.resolve(clone.Location2)

		key := fmt.Sprintf("%s:%d:%d|%s:%d:%d",
			loc1.File, loc1.StartLine, loc1.EndLine,
			loc2.File, loc2.StartLine, loc2.EndLine)
		if seen[key] {
			continue
		}
		seen[key] = true

		span1 := loc1.EndLine - loc1.StartLine + 1
		span2 := loc2.EndLine - loc2.StartLine + 1
		lineCount := span1
		if span2 > lineCount {
			lineCount = span2
		}

		reports = append(reports, FragmentReport{
			CloneType:  cloneType,
			Scope:      classifyScope(loc1, loc2),
			Location1:  loc1,
			Location2:  loc2,
			TokenCount: clone.TokenCount,
			LineCount:  lineCount,
		})
	}
	return reports
}

// resolve maps one side of a merged clone back to its enclosing class and
// method by line containment. First containing method wins; a fragment
// outside every method keeps file/line only.
func (c *FragmentChecker) resolve(loc MergedLocation) CodeLocation {
	resolved := CodeLocation{
		File:      loc.File,
		StartLine: loc.StartLine,
		EndLine:   loc.EndLine,
	}
	file, ok := c.files[loc.File]
	if !ok {
		return resolved
	}
	if cls, method := file.FindEnclosingMethod(loc.StartLine, loc.EndLine); method != nil {
		resolved.ClassName = cls.Name
		resolved.MethodName = method.Name
	}
	return resolved
}

func classifyScope(loc1, loc2 CodeLocation) Scope {
	if loc1.File == loc2.File && loc1.ClassName == loc2.ClassName {
		if loc1.MethodName == loc2.MethodName && loc1.MethodName != "" {
			return ScopeSameMethod
		}
		if loc1.ClassName != "" {
			return ScopeSameClass
		}
	}
	return ScopeDifferentClass
}
