package lexer

// TokenType classifies a lexical token.
type TokenType string

const (
	TokenKeyword     TokenType = "KEYWORD"
	TokenIdentifier  TokenType = "IDENTIFIER"
	TokenLiteral     TokenType = "LITERAL"
	TokenOperator    TokenType = "OPERATOR"
	TokenPunctuation TokenType = "PUNCTUATION"
	TokenDecorator   TokenType = "DECORATOR"
	TokenComment     TokenType = "COMMENT"
	TokenUnknown     TokenType = "UNKNOWN"
)

// Token is a single lexical token. Immutable once created.
type Token struct {
	Value  string    `json:"value"`
	Type   TokenType `json:"type"`
	Line   int       `json:"line"`   // 1-based
	Column int       `json:"column"` // 0-based
	File   string    `json:"file,omitempty"`
}
