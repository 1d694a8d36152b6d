package methodclone

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ets-tools/arklint/pkg/lexer"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Synthesized markers the host model leaves in statement renderings:
	// anonymous-class/method placeholders and generated path references.
	anonMarkerRe = regexp.MustCompile(`%A[CM]\d+[$\w]*`)
	pathRefRe    = regexp.MustCompile(`(?:[A-Za-z]:)?(?:[\\/][\w.\-]+){2,}\.e?ts\b`)
	logCallRe    = regexp.MustCompile(`^\s*(?:console|hilog|Logger)\.\w+\s*\(.*\)\s*;?\s*$`)
)

// CollapseWhitespace folds all whitespace runs into single spaces and
// trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ScrubSynthetic removes synthesized file-path references and
// anonymous-class markers, the structurally irrelevant noise that differs
// between otherwise identical methods.
func ScrubSynthetic(s string) string {
	s = anonMarkerRe.ReplaceAllString(s, "")
	return pathRefRe.ReplaceAllString(s, "")
}

// basicNormalize is the Type-1 statement transform: whitespace and
// synthesized-marker noise only.
func basicNormalize(s string) string {
	return CollapseWhitespace(ScrubSynthetic(s))
}

// IsLogStatement reports whether a statement is purely a logging call.
// Embedded log calls inside larger expressions are not matched: they
// carry other semantics.
func IsLogStatement(s string) bool {
	return logCallRe.MatchString(s)
}

// FilterLogStatements drops statements that are purely logging calls.
func FilterLogStatements(texts []string) []string {
	filtered := make([]string, 0, len(texts))
	for _, t := range texts {
		if !IsLogStatement(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// identNormalizer renames identifiers to sequential ID_<n> placeholders,
// with one mapping scoped to a single method's statement list.
type identNormalizer struct {
	mapping map[string]string
	next    int
}

func newIdentNormalizer() *identNormalizer {
	return &identNormalizer{mapping: make(map[string]string)}
}

// apply re-tokenizes a statement and rebuilds it with identifiers renamed.
// Names of length <= 1 (loop/temp variables), reserved words, common
// builtins and ALL_UPPERCASE constants pass through unchanged. When
// abstractLiterals is set, numeric and string literals become NUM/STR.
func (n *identNormalizer) apply(text string, abstractLiterals bool) string {
	tokens := lexer.Tokenize(text, "", lexer.Options{SkipComments: true})
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.TokenIdentifier:
			parts = append(parts, n.rename(tok.Value))
		case lexer.TokenLiteral:
			if abstractLiterals {
				parts = append(parts, abstractLiteral(tok.Value))
			} else {
				parts = append(parts, tok.Value)
			}
		default:
			parts = append(parts, tok.Value)
		}
	}
	return strings.Join(parts, " ")
}

func (n *identNormalizer) rename(name string) string {
	if len(name) < 2 || commonNames[name] || isAllUpper(name) {
		return name
	}
	if placeholder, ok := n.mapping[name]; ok {
		return placeholder
	}
	placeholder := "ID_" + strconv.Itoa(n.next)
	n.next++
	n.mapping[name] = placeholder
	return placeholder
}

// abstractLiteral maps a literal token value to NUM or STR. Boolean and
// null words keep their own values: abstracting them adds nothing.
func abstractLiteral(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '\'', '"', '`':
		return "STR"
	}
	if value[0] >= '0' && value[0] <= '9' {
		return "NUM"
	}
	// Leading-dot form: .5 is one numeric token.
	if value[0] == '.' && len(value) > 1 && value[1] >= '0' && value[1] <= '9' {
		return "NUM"
	}
	return value
}

func isAllUpper(name string) bool {
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// commonNames are builtins and globals never renamed: renaming them would
// make unrelated methods converge on identical shapes.
var commonNames = map[string]bool{
	"console": true, "hilog": true, "Logger": true, "window": true,
	"globalThis": true, "JSON": true, "Math": true, "Date": true,
	"Object": true, "Array": true, "String": true, "Number": true,
	"Boolean": true, "Symbol": true, "BigInt": true, "RegExp": true,
	"Promise": true, "Map": true, "Set": true, "WeakMap": true,
	"WeakSet": true, "Error": true, "TypeError": true, "RangeError": true,
	"ReferenceError": true, "NaN": true, "Infinity": true,
	"setTimeout": true, "setInterval": true, "clearTimeout": true,
	"clearInterval": true, "parseInt": true, "parseFloat": true,
	"isNaN": true, "isFinite": true, "Reflect": true, "Proxy": true,
}
