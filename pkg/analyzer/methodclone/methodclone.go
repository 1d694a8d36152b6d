// Package methodclone detects whole-method code clones. Two checkers
// share one collection/grouping/reporting algorithm and differ only in
// the injected hash policy: Type-1 normalizes structurally irrelevant
// noise, Type-2 additionally renames identifiers (and, opt-in, abstracts
// literals).
package methodclone

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/ets-tools/arklint/pkg/arkts"
)

// Kind labels which normalization a clone family survived.
type Kind string

const (
	KindType1 Kind = "Type-1"
	KindType2 Kind = "Type-2"
)

// Config controls method collection and normalization.
type Config struct {
	// MinStmts is the minimum filtered-statement count for a method to be
	// eligible.
	MinStmts int
	// IgnoreLogs drops statements that are purely logging calls before
	// counting and hashing.
	IgnoreLogs bool
	// IgnoreLiterals additionally abstracts numeric/string literals under
	// the Type-2 policy. Off by default: identical-shape methods with
	// different constants are usually semantically distinct.
	IgnoreLiterals bool
}

// DefaultConfig returns the default method-clone settings.
func DefaultConfig() Config {
	return Config{
		MinStmts:   5,
		IgnoreLogs: true,
	}
}

// Policy computes the content hash of a method's filtered statements.
type Policy interface {
	Kind() Kind
	Hash(stmts []string) uint64
}

// type1Policy hashes statements after whitespace collapse and
// synthesized-marker scrubbing only.
type type1Policy struct{}

func (type1Policy) Kind() Kind { return KindType1 }

func (type1Policy) Hash(stmts []string) uint64 {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = basicNormalize(s)
	}
	return xxhash.Sum64String(strings.Join(parts, "\n"))
}

// type2Policy additionally renames identifiers with placeholders scoped
// to the method's statement list.
type type2Policy struct {
	abstractLiterals bool
}

func (type2Policy) Kind() Kind { return KindType2 }

func (p type2Policy) Hash(stmts []string) uint64 {
	norm := newIdentNormalizer()
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = norm.apply(basicNormalize(s), p.abstractLiterals)
	}
	return xxhash.Sum64String(strings.Join(parts, "\n"))
}

// MethodInfo is one eligible method collected during a run.
type MethodInfo struct {
	Method     *arkts.Method
	FilePath   string
	ClassName  string
	MethodName string
	StartLine  int
	EndLine    int
	Hash       uint64
	StmtCount  int
}

// MethodLocation identifies one side of a reported method clone.
type MethodLocation struct {
	FilePath   string `json:"file_path"`
	ClassName  string `json:"class_name"`
	MethodName string `json:"method_name"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// Report is one reported method-clone pair.
type Report struct {
	Kind      Kind           `json:"kind"`
	Location1 MethodLocation `json:"location_1"`
	Location2 MethodLocation `json:"location_2"`
	StmtCount int            `json:"stmt_count"`
}

// Checker runs one method-clone detection pass. State is per-run and
// reset by BeforeCheck.
type Checker struct {
	cfg    Config
	policy Policy

	methodsByHash map[uint64][]MethodInfo
	hashOrder     []uint64
}

// NewType1Checker detects byte-identical (modulo whitespace) method clones.
func NewType1Checker(cfg Config) *Checker {
	return newChecker(cfg, type1Policy{})
}

// NewType2Checker detects method clones identical up to identifier
// renaming, and up to literal values when cfg.IgnoreLiterals is set.
func NewType2Checker(cfg Config) *Checker {
	return newChecker(cfg, type2Policy{abstractLiterals: cfg.IgnoreLiterals})
}

func newChecker(cfg Config, policy Policy) *Checker {
	if cfg.MinStmts <= 0 {
		cfg.MinStmts = DefaultConfig().MinStmts
	}
	c := &Checker{cfg: cfg, policy: policy}
	c.BeforeCheck()
	return c
}

// Kind returns the checker's clone kind.
func (c *Checker) Kind() Kind {
	return c.policy.Kind()
}

// BeforeCheck resets all per-run state.
func (c *Checker) BeforeCheck() {
	c.methodsByHash = make(map[uint64][]MethodInfo)
	c.hashOrder = nil
}

// CollectFile collects every eligible method of every class in the file.
func (c *Checker) CollectFile(file *arkts.File) {
	for _, cls := range file.Classes {
		if cls.Synthetic {
			continue
		}
		for _, m := range cls.Methods {
			c.CollectMethod(m)
		}
	}
}

// CollectMethod records one method if it is eligible: not synthetic, not
// a constructor, and holding at least MinStmts statements after log
// filtering. A method without a body is a soft skip.
func (c *Checker) CollectMethod(m *arkts.Method) {
	if m == nil || m.Synthetic || m.IsConstructor || m.Class == nil || m.Class.Synthetic {
		return
	}

	texts := make([]string, 0, len(m.Statements))
	for _, s := range m.Statements {
		texts = append(texts, s.Text)
	}
	if c.cfg.IgnoreLogs {
		texts = FilterLogStatements(texts)
	}
	if len(texts) == 0 || len(texts) < c.cfg.MinStmts {
		return
	}

	hash := c.policy.Hash(texts)
	if _, ok := c.methodsByHash[hash]; !ok {
		c.hashOrder = append(c.hashOrder, hash)
	}
	c.methodsByHash[hash] = append(c.methodsByHash[hash], MethodInfo{
		Method:     m,
		FilePath:   m.Class.File.Path,
		ClassName:  m.Class.Name,
		MethodName: m.Name,
		StartLine:  m.StartLine,
		EndLine:    m.EndLine,
		Hash:       hash,
		StmtCount:  len(texts),
	})
}

// AfterCheck groups collected methods by hash and emits every pairwise
// combination from groups of two or more, deduplicated by a sorted
// location key so a pair reports once regardless of discovery order.
func (c *Checker) AfterCheck() []Report {
	seen := make(map[string]bool)
	var reports []Report

	for _, hash := range c.hashOrder {
		group := c.methodsByHash[hash]
		if len(group) < 2 {
			continue
		}
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]

				keys := []string{locationKey(a), locationKey(b)}
				sort.Strings(keys)
				key := keys[0] + "|" + keys[1]
				if seen[key] {
					continue
				}
				seen[key] = true

				stmtCount := a.StmtCount
				if b.StmtCount > stmtCount {
					stmtCount = b.StmtCount
				}
				reports = append(reports, Report{
					Kind:      c.policy.Kind(),
					Location1: location(a),
					Location2: location(b),
					StmtCount: stmtCount,
				})
			}
		}
	}
	return reports
}

func locationKey(m MethodInfo) string {
	return m.FilePath + ":" + m.ClassName + "." + m.MethodName
}

func location(m MethodInfo) MethodLocation {
	return MethodLocation{
		FilePath:   m.FilePath,
		ClassName:  m.ClassName,
		MethodName: m.MethodName,
		StartLine:  m.StartLine,
		EndLine:    m.EndLine,
	}
}
