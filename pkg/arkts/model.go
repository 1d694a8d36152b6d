// Package arkts builds a File/Class/Method/Statement ownership tree from
// ArkTS/ETS sources. Checkers consume this tree; it owns no mutable
// back-pointers beyond the declaring-class/file references.
package arkts

// ClassCategory distinguishes the declaration forms that can own methods.
type ClassCategory string

const (
	CategoryClass     ClassCategory = "CLASS"
	CategoryStruct    ClassCategory = "STRUCT"
	CategoryInterface ClassCategory = "INTERFACE"
	CategoryEnum      ClassCategory = "ENUM"
	CategoryNamespace ClassCategory = "NAMESPACE"
	CategoryTopLevel  ClassCategory = "TOP_LEVEL"
)

// DefaultClassName is the synthetic container for top-level functions.
const DefaultClassName = "_toplevel"

// File is one parsed source file.
type File struct {
	Path    string
	Classes []*Class
}

// Class is a class-like declaration: class, struct, interface, enum or the
// per-file top-level container.
type Class struct {
	Name       string
	Category   ClassCategory
	Decorators []string
	Synthetic  bool
	StartLine  int
	EndLine    int
	File       *File
	Methods    []*Method
}

// Method is a named function body owned by a class.
type Method struct {
	Name          string
	Decorators    []string
	StartLine     int
	EndLine       int
	StartCol      int
	IsConstructor bool
	Synthetic     bool
	// HasViewTree marks UI builder methods: `build` in an @Component
	// struct, or any @Builder-decorated method.
	HasViewTree bool
	Class       *Class
	Statements  []*Statement
	Calls       []CallInfo
	Switches    []SwitchInfo
}

// Statement is one flat control-flow statement with its original text.
type Statement struct {
	Text   string
	Line   int
	Column int
	Kind   string
}

// CallInfo records a call expression inside a method body.
type CallInfo struct {
	Receiver string // "" for bare calls, "this" for own-member calls
	Name     string
	ArgCount int
	Line     int
	Column   int
}

// SwitchInfo records a switch statement inside a method body.
type SwitchInfo struct {
	CaseCount  int // switch_case arms, excluding default
	HasDefault bool
	Line       int
	Column     int
}

// HasDecorator reports whether the class carries the named decorator
// (without the leading @).
func (c *Class) HasDecorator(name string) bool {
	return hasDecorator(c.Decorators, name)
}

// HasDecorator reports whether the method carries the named decorator.
func (m *Method) HasDecorator(name string) bool {
	return hasDecorator(m.Decorators, name)
}

func hasDecorator(decorators []string, name string) bool {
	for _, d := range decorators {
		if d == name || d == "@"+name {
			return true
		}
	}
	return false
}

// LineCount returns the number of source lines the method spans.
func (m *Method) LineCount() int {
	return m.EndLine - m.StartLine + 1
}

// FindEnclosingMethod returns the first method whose line range fully
// contains [startLine, endLine], with its declaring class. A fragment not
// inside any method returns (nil, nil).
func (f *File) FindEnclosingMethod(startLine, endLine int) (*Class, *Method) {
	for _, cls := range f.Classes {
		for _, m := range cls.Methods {
			if m.StartLine <= startLine && endLine <= m.EndLine {
				return cls, m
			}
		}
	}
	return nil, nil
}
