package methodclone

import (
	"strings"
	"testing"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"let  x =  1;", "let x = 1;"},
		{"  padded  ", "padded"},
		{"a\tb\n c", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScrubSynthetic(t *testing.T) {
	in := "this.callback(%AC3$param, /src/pages/Index.ets)"
	got := ScrubSynthetic(in)
	if got == in {
		t.Error("synthetic markers should be removed")
	}
	if ScrubSynthetic("plain.call(x)") != "plain.call(x)" {
		t.Error("clean statements must pass through unchanged")
	}
}

func TestIsLogStatement(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"console.log('hi');", true},
		{"console.error(err)", true},
		{"  hilog.info(0x0000, 'tag', 'msg');  ", true},
		{"Logger.debug(value);", true},
		{"let x = console.log('hi');", false},
		{"this.logger.info('hi');", false},
		{"compute();", false},
	}
	for _, tt := range tests {
		if got := IsLogStatement(tt.stmt); got != tt.want {
			t.Errorf("IsLogStatement(%q) = %v, want %v", tt.stmt, got, tt.want)
		}
	}
}

func TestFilterLogStatements(t *testing.T) {
	in := []string{
		"let x = 1;",
		"console.log(x);",
		"hilog.warn(1, 'a', 'b');",
		"return x;",
	}
	got := FilterLogStatements(in)
	want := []string{"let x = 1;", "return x;"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("filtered[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIdentNormalizerSequentialPlaceholders(t *testing.T) {
	n := newIdentNormalizer()
	got := n.apply("let total = count + total;", false)
	want := "let ID_0 = ID_1 + ID_0 ;"
	if got != want {
		t.Errorf("apply = %q, want %q", got, want)
	}
}

func TestIdentNormalizerScopeSpansStatements(t *testing.T) {
	n := newIdentNormalizer()
	first := n.apply("let total = 1;", false)
	second := n.apply("return total;", false)
	if first != "let ID_0 = 1 ;" {
		t.Errorf("first = %q", first)
	}
	if second != "return ID_0 ;" {
		t.Errorf("mapping must persist across statements, got %q", second)
	}
}

func TestIdentNormalizerExemptions(t *testing.T) {
	n := newIdentNormalizer()
	got := n.apply("for (let i = 0; i < MAX_SIZE; i++) console.log(i);", false)
	for _, keep := range []string{"i", "MAX_SIZE", "console"} {
		if !contains(got, keep) {
			t.Errorf("%q should survive normalization, got %q", keep, got)
		}
	}
}

func TestIdentNormalizerLiteralAbstraction(t *testing.T) {
	n := newIdentNormalizer()
	got := n.apply(`setText("hello", 42, true);`, true)
	if !contains(got, "STR") || !contains(got, "NUM") {
		t.Errorf("literals should abstract to STR/NUM, got %q", got)
	}
	if !contains(got, "true") {
		t.Errorf("boolean words keep their value, got %q", got)
	}

	n2 := newIdentNormalizer()
	plain := n2.apply(`setText("hello", 42, true);`, false)
	if !contains(plain, `"hello"`) || !contains(plain, "42") {
		t.Errorf("without abstraction literals stay, got %q", plain)
	}
}

func TestAbstractLiteralNumericForms(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"42", "NUM"},
		{"0.5", "NUM"},
		{".5", "NUM"},
		{"0x1f", "NUM"},
		{`"text"`, "STR"},
		{"'text'", "STR"},
		{"true", "true"},
		{"null", "null"},
		{".", "."},
		{"", ""},
	}
	for _, tt := range tests {
		if got := abstractLiteral(tt.in); got != tt.want {
			t.Errorf("abstractLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLeadingDotLiteralsMatchUnderAbstraction(t *testing.T) {
	half := newIdentNormalizer().apply("let scale = .5;", true)
	full := newIdentNormalizer().apply("let scale = 0.5;", true)
	if half != full {
		t.Errorf(".5 and 0.5 must abstract identically: %q vs %q", half, full)
	}
}

func TestIsAllUpper(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"MAX_SIZE", true},
		{"HTTP2", true},
		{"Total", false},
		{"snake_case", false},
		{"_", false},
	}
	for _, tt := range tests {
		if got := isAllUpper(tt.name); got != tt.want {
			t.Errorf("isAllUpper(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func contains(s, sub string) bool {
	return strings.Contains(s, sub)
}
