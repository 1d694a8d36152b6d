package clones

import (
	"testing"

	"github.com/ets-tools/arklint/pkg/lexer"
)

func makeTokens(values ...string) []lexer.Token {
	tokens := make([]lexer.Token, len(values))
	for i, v := range values {
		tokens[i] = lexer.Token{
			Value: v,
			Type:  lexer.TokenIdentifier,
			Line:  i + 1,
			File:  "test.ets",
		}
	}
	return tokens
}

func TestWindowCount(t *testing.T) {
	tests := []struct {
		n, w, want int
	}{
		{0, 5, 0},
		{4, 5, 0},
		{5, 5, 1},
		{6, 5, 2},
		{10, 3, 8},
		{100, 100, 1},
		{5, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := WindowCount(tt.n, tt.w); got != tt.want {
			t.Errorf("WindowCount(%d, %d) = %d, want %d", tt.n, tt.w, got, tt.want)
		}
	}
}

func TestSlidingWindows(t *testing.T) {
	tokens := makeTokens("a", "b", "c", "d", "e")
	windows := SlidingWindows(tokens, 2)

	if len(windows) != 4 {
		t.Fatalf("got %d windows, want 4", len(windows))
	}
	for i, w := range windows {
		if w.StartIndex != i {
			t.Errorf("window[%d].StartIndex = %d", i, w.StartIndex)
		}
		if len(w.Tokens) != 2 {
			t.Errorf("window[%d] has %d tokens", i, len(w.Tokens))
		}
		if w.StartLine != i+1 || w.EndLine != i+2 {
			t.Errorf("window[%d] lines %d-%d, want %d-%d", i, w.StartLine, w.EndLine, i+1, i+2)
		}
		if w.File != "test.ets" {
			t.Errorf("window[%d].File = %q", i, w.File)
		}
	}
}

func TestSlidingWindowsShortInput(t *testing.T) {
	if got := SlidingWindows(makeTokens("a", "b"), 3); got != nil {
		t.Errorf("short input should yield no windows, got %d", len(got))
	}
	if got := SlidingWindows(nil, 3); got != nil {
		t.Errorf("empty input should yield no windows")
	}
}

func TestSlidingWindowsExactFit(t *testing.T) {
	windows := SlidingWindows(makeTokens("a", "b", "c"), 3)
	if len(windows) != 1 {
		t.Fatalf("got %d windows, want 1", len(windows))
	}
	if windows[0].StartIndex != 0 {
		t.Errorf("StartIndex = %d", windows[0].StartIndex)
	}
}
