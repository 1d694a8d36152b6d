package clones

import "github.com/ets-tools/arklint/pkg/lexer"

// CloneType classifies a reported clone by the normalization it survived.
type CloneType string

const (
	Type1 CloneType = "Type-1" // byte-identical modulo whitespace
	Type2 CloneType = "Type-2" // identical modulo identifier/literal renaming
)

// Scope classifies where the two copies of a clone live.
type Scope string

const (
	ScopeSameMethod     Scope = "SAME_METHOD"
	ScopeSameClass      Scope = "SAME_CLASS"
	ScopeDifferentClass Scope = "DIFFERENT_CLASS"
)

// TokenWindow is a contiguous slice of a file's token sequence.
// Ephemeral: created, hashed and discarded during matching.
type TokenWindow struct {
	StartIndex int // offset of the first token in the per-file sequence
	Tokens     []lexer.Token
	StartLine  int
	EndLine    int
	File       string
}

// FragmentLocation is the durable record stored in the hash index once a
// window has been hashed.
type FragmentLocation struct {
	File       string `json:"file"`
	StartIndex int    `json:"start_index"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
}

// DuplicateGroup is a hash bucket holding two or more locations.
type DuplicateGroup struct {
	Hash      string
	Locations []FragmentLocation
}

// ClonePair is one pairing from an exploded duplicate group. TokenCount
// equals the window size used to produce the hash.
type ClonePair struct {
	Location1  FragmentLocation `json:"location_1"`
	Location2  FragmentLocation `json:"location_2"`
	TokenCount int              `json:"token_count"`
}

// MergedLocation is one side of a maximal merged clone region.
// EndIndex = StartIndex + TokenCount - 1 holds at all times.
type MergedLocation struct {
	File       string `json:"file"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

// MergedClone is a run of lockstep-adjacent clone pairs collapsed into one
// maximal region. TokenCount only grows during a merge.
type MergedClone struct {
	Location1  MergedLocation `json:"location_1"`
	Location2  MergedLocation `json:"location_2"`
	TokenCount int            `json:"token_count"`
}

// CodeLocation augments a raw location with the enclosing class/method
// when one contains the fragment's line range.
type CodeLocation struct {
	File       string `json:"file"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	ClassName  string `json:"class_name,omitempty"`
	MethodName string `json:"method_name,omitempty"`
}

// FragmentReport is one reported fragment clone.
type FragmentReport struct {
	CloneType  CloneType    `json:"clone_type"`
	Scope      Scope        `json:"scope"`
	Location1  CodeLocation `json:"location_1"`
	Location2  CodeLocation `json:"location_2"`
	TokenCount int          `json:"token_count"`
	LineCount  int          `json:"line_count"`
}
