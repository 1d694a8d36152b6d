package clones

import "github.com/ets-tools/arklint/pkg/lexer"

// WindowCount returns the number of full windows of size w over n tokens:
// max(0, n-w+1). A fragment must be at least one full window to be indexed.
func WindowCount(n, w int) int {
	if w <= 0 || n < w {
		return 0
	}
	return n - w + 1
}

// SlidingWindows produces every fixed-size contiguous window over tokens,
// one per start offset. Shorter sequences produce no windows; there are no
// partial windows.
func SlidingWindows(tokens []lexer.Token, windowSize int) []TokenWindow {
	count := WindowCount(len(tokens), windowSize)
	if count == 0 {
		return nil
	}

	windows := make([]TokenWindow, 0, count)
	for start := 0; start < count; start++ {
		slice := tokens[start : start+windowSize]
		windows = append(windows, TokenWindow{
			StartIndex: start,
			Tokens:     slice,
			StartLine:  slice[0].Line,
			EndLine:    slice[len(slice)-1].Line,
			File:       slice[0].File,
		})
	}
	return windows
}
