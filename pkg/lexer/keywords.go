package lexer

// keywords covers ECMAScript plus the TypeScript/ArkTS extensions the
// dialect uses (decorator-adjacent modifiers, `struct` components).
var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
	"let": true, "static": true, "async": true, "await": true, "of": true,
	"get": true, "set": true, "as": true, "from": true,
	// TypeScript
	"interface": true, "type": true, "enum": true, "namespace": true,
	"declare": true, "abstract": true, "implements": true, "readonly": true,
	"public": true, "private": true, "protected": true, "keyof": true,
	"infer": true, "is": true, "asserts": true, "satisfies": true,
	// ArkTS
	"struct": true,
}

// literalWords are word-shaped literal values. Checked before the keyword
// set so boolean/null values do not classify as keywords.
var literalWords = map[string]string{
	"true":      "BOOL",
	"false":     "BOOL",
	"null":      "NULL",
	"undefined": "NULL",
}

func isKeyword(word string) bool {
	return keywords[word]
}
