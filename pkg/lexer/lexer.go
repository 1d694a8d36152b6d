// Package lexer converts ArkTS/ETS source text into a flat sequence of
// typed tokens, optionally normalizing identifiers and literals so that
// structurally equivalent fragments produce identical token streams.
package lexer

import (
	"strconv"
	"strings"
)

// Options controls tokenization behavior.
type Options struct {
	// SkipComments drops comment tokens instead of emitting them.
	SkipComments bool
	// NormalizeIdentifiers replaces identifiers of length >= 2 with
	// sequential ID_<n> placeholders, stable within one Tokenize call.
	// Single-character names are left untouched: loop and temp variables
	// recur across unrelated code and would inflate false matches.
	NormalizeIdentifiers bool
	// NormalizeLiterals abstracts literal values to NUM/STR/BOOL/NULL/REGEX.
	NormalizeLiterals bool
}

// DefaultOptions returns the default tokenizer options.
func DefaultOptions() Options {
	return Options{SkipComments: true}
}

// Tokenize scans source into tokens. The identifier placeholder map and
// counter reset at the start of every call.
func Tokenize(source, file string, opts Options) []Token {
	lx := &lexer{
		src:      []rune(source),
		file:     file,
		opts:     opts,
		identMap: make(map[string]string),
	}
	lx.run()
	return lx.tokens
}

type lexer struct {
	src    []rune
	pos    int
	file   string
	opts   Options
	tokens []Token

	identMap   map[string]string
	identNext  int
	braceDepth int
	// templateStack records the brace depth at which each open template
	// interpolation started, so `}` can resume template scanning.
	templateStack []int
}

func (lx *lexer) run() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		switch {
		case isWhitespace(c):
			lx.pos++
		case c == '/' && lx.peek(1) == '/':
			lx.scanLineComment()
		case c == '/' && lx.peek(1) == '*':
			lx.scanBlockComment()
		case c == '\'' || c == '"':
			lx.scanString(c)
		case c == '`':
			lx.scanTemplateChunk()
		case c == '}' && len(lx.templateStack) > 0 && lx.braceDepth == lx.templateStack[len(lx.templateStack)-1]:
			lx.templateStack = lx.templateStack[:len(lx.templateStack)-1]
			lx.scanTemplateChunk()
		case isDigit(c) || (c == '.' && isDigit(lx.peek(1))):
			lx.scanNumber()
		case isIdentStart(c):
			lx.scanWord()
		case c == '@' && isIdentStart(lx.peek(1)):
			lx.scanDecorator()
		case c == '/':
			if !lx.tryScanRegex() {
				lx.scanOperator()
			}
		default:
			lx.scanOperator()
		}
	}
}

func (lx *lexer) peek(n int) rune {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

// emit appends a token for the source range [start, lx.pos) with the
// given value.
func (lx *lexer) emit(typ TokenType, value string, start int) {
	line, col := lx.lineColAt(start)
	lx.tokens = append(lx.tokens, Token{
		Value:  value,
		Type:   typ,
		Line:   line,
		Column: col,
		File:   lx.file,
	})
}

// lineColAt converts a rune offset to a 1-based line and 0-based column.
// Linear scan per lookup; runs once per token during stream construction,
// never combinatorially.
func (lx *lexer) lineColAt(offset int) (int, int) {
	line := 1
	col := 0
	for i := 0; i < offset && i < len(lx.src); i++ {
		if lx.src[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func (lx *lexer) text(start int) string {
	return string(lx.src[start:lx.pos])
}

func (lx *lexer) scanLineComment() {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	if !lx.opts.SkipComments {
		lx.emit(TokenComment, lx.text(start), start)
	}
}

func (lx *lexer) scanBlockComment() {
	start := lx.pos
	lx.pos += 2
	for lx.pos < len(lx.src) {
		if lx.src[lx.pos] == '*' && lx.peek(1) == '/' {
			lx.pos += 2
			break
		}
		lx.pos++
	}
	if !lx.opts.SkipComments {
		lx.emit(TokenComment, lx.text(start), start)
	}
}

func (lx *lexer) scanString(quote rune) {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\\' {
			lx.pos += 2
			continue
		}
		lx.pos++
		if c == quote || c == '\n' {
			break
		}
	}
	lx.emitLiteral(lx.text(start), "STR", start)
}

// scanTemplateChunk scans one contiguous piece of a template literal:
// from the opening backtick (or a closing interpolation brace) up to
// either `${` or the terminating backtick. Interpolation expressions are
// lexed by the main loop; their parts count as ordinary tokens.
func (lx *lexer) scanTemplateChunk() {
	start := lx.pos
	lx.pos++ // opening backtick or closing interpolation brace
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\\' {
			lx.pos += 2
			continue
		}
		if c == '`' {
			lx.pos++
			lx.emitLiteral(lx.text(start), "STR", start)
			return
		}
		if c == '$' && lx.peek(1) == '{' {
			lx.pos += 2
			lx.emitLiteral(lx.text(start), "STR", start)
			lx.templateStack = append(lx.templateStack, lx.braceDepth)
			return
		}
		lx.pos++
	}
	// Unterminated template: emit what we have.
	lx.emitLiteral(lx.text(start), "STR", start)
}

func (lx *lexer) scanNumber() {
	start := lx.pos
	if lx.src[lx.pos] == '0' && (lx.peek(1) == 'x' || lx.peek(1) == 'X' ||
		lx.peek(1) == 'b' || lx.peek(1) == 'B' || lx.peek(1) == 'o' || lx.peek(1) == 'O') {
		lx.pos += 2
		for lx.pos < len(lx.src) && (isHexDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
			lx.pos++
		}
	} else {
		for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '.' || lx.src[lx.pos] == '_') {
			lx.pos++
		}
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
			lx.pos++
			if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
				lx.pos++
			}
			for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
				lx.pos++
			}
		}
	}
	// BigInt suffix
	if lx.pos < len(lx.src) && lx.src[lx.pos] == 'n' {
		lx.pos++
	}
	lx.emitLiteral(lx.text(start), "NUM", start)
}

func (lx *lexer) scanWord() {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	word := lx.text(start)

	// Literal values first: true/false/null would otherwise classify as
	// keywords.
	if kind, ok := literalWords[word]; ok {
		lx.emitLiteral(word, kind, start)
		return
	}
	if isKeyword(word) {
		lx.emit(TokenKeyword, word, start)
		return
	}
	lx.emit(TokenIdentifier, lx.normalizeIdentifier(word), start)
}

func (lx *lexer) scanDecorator() {
	start := lx.pos
	lx.pos++ // @
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.emit(TokenDecorator, lx.text(start), start)
}

// regexAllowed reports whether a `/` at the current position can start a
// regex literal, based on the previous significant token.
func (lx *lexer) regexAllowed() bool {
	for i := len(lx.tokens) - 1; i >= 0; i-- {
		prev := lx.tokens[i]
		if prev.Type == TokenComment {
			continue
		}
		switch prev.Type {
		case TokenIdentifier, TokenLiteral:
			return false
		case TokenPunctuation:
			return prev.Value != ")" && prev.Value != "]"
		default:
			return true
		}
	}
	return true
}

func (lx *lexer) tryScanRegex() bool {
	if !lx.regexAllowed() {
		return false
	}
	start := lx.pos
	i := lx.pos + 1
	inClass := false
	for i < len(lx.src) {
		c := lx.src[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '\n' {
			return false
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			i++
			for i < len(lx.src) && isIdentPart(lx.src[i]) {
				i++ // flags
			}
			lx.pos = i
			lx.emitLiteral(lx.text(start), "REGEX", start)
			return true
		}
		i++
	}
	return false
}

var operators3 = map[string]bool{
	"===": true, "!==": true, "**=": true, "<<=": true, ">>=": true,
	">>>": true, "&&=": true, "||=": true, "??=": true,
}

var operators2 = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
	"??": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<": true, ">>": true, "**": true,
	"++": true, "--": true, "=>": true,
}

func (lx *lexer) scanOperator() {
	start := lx.pos
	if lx.pos+4 <= len(lx.src) && string(lx.src[lx.pos:lx.pos+4]) == ">>>=" {
		lx.pos += 4
		lx.emit(TokenOperator, ">>>=", start)
		return
	}
	if lx.pos+3 <= len(lx.src) {
		if s := string(lx.src[lx.pos : lx.pos+3]); operators3[s] {
			lx.pos += 3
			lx.emit(TokenOperator, s, start)
			return
		}
		if s := string(lx.src[lx.pos : lx.pos+3]); s == "..." {
			lx.pos += 3
			lx.emit(TokenPunctuation, s, start)
			return
		}
	}
	if lx.pos+2 <= len(lx.src) {
		if s := string(lx.src[lx.pos : lx.pos+2]); operators2[s] {
			lx.pos += 2
			lx.emit(TokenOperator, s, start)
			return
		}
		if s := string(lx.src[lx.pos : lx.pos+2]); s == "?." {
			lx.pos += 2
			lx.emit(TokenPunctuation, s, start)
			return
		}
	}

	c := lx.src[lx.pos]
	lx.pos++
	switch c {
	case '(', ')', '[', ']', ',', ';', ':', '.', '?':
		lx.emit(TokenPunctuation, string(c), start)
	case '{':
		lx.braceDepth++
		lx.emit(TokenPunctuation, string(c), start)
	case '}':
		lx.braceDepth--
		lx.emit(TokenPunctuation, string(c), start)
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~':
		lx.emit(TokenOperator, string(c), start)
	default:
		// Unknown runes are dropped, not emitted.
	}
}

// emitLiteral emits a LITERAL token, abstracting the value to its kind
// placeholder when literal normalization is on.
func (lx *lexer) emitLiteral(value, kind string, start int) {
	if lx.opts.NormalizeLiterals {
		value = kind
	}
	lx.emit(TokenLiteral, value, start)
}

// normalizeIdentifier maps an identifier to its ID_<n> placeholder when
// identifier normalization is on. Names of length <= 1 pass through.
func (lx *lexer) normalizeIdentifier(name string) string {
	if !lx.opts.NormalizeIdentifiers || len(name) < 2 {
		return name
	}
	if placeholder, ok := lx.identMap[name]; ok {
		return placeholder
	}
	placeholder := "ID_" + strconv.Itoa(lx.identNext)
	lx.identNext++
	lx.identMap[name] = placeholder
	return placeholder
}

// Values returns the token values joined by sep. Convenience for tests
// and hash input construction.
func Values(tokens []Token, sep string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}
	return strings.Join(parts, sep)
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}
