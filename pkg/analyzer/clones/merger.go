package clones

import "sort"

// Merge collapses chains of adjacent single-window clone pairs into
// maximal contiguous regions.
//
// A true clone region spanning k tokens beyond the window size produces
// k-windowSize+1 separate pairs, each shifted by one token in both copies.
// Sorting by (file1, file2, startIndex1, startIndex2) groups same-file-pair
// runs together and orders them by position; a left-to-right scan then
// extends the current region while both copies slide forward in lockstep
// by exactly one token, and flushes otherwise. Regions from different
// file pairs never merge: the sort separates them even when their offsets
// happen to be adjacent numerically.
func Merge(pairs []ClonePair) []MergedClone {
	if len(pairs) == 0 {
		return nil
	}

	sorted := make([]ClonePair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Location1.File != b.Location1.File {
			return a.Location1.File < b.Location1.File
		}
		if a.Location2.File != b.Location2.File {
			return a.Location2.File < b.Location2.File
		}
		if a.Location1.StartIndex != b.Location1.StartIndex {
			return a.Location1.StartIndex < b.Location1.StartIndex
		}
		return a.Location2.StartIndex < b.Location2.StartIndex
	})

	var merged []MergedClone
	current := seedRegion(sorted[0])
	prev := sorted[0]

	for _, pair := range sorted[1:] {
		if consecutive(prev, pair) {
			current.TokenCount++
			current.Location1.EndIndex = current.Location1.StartIndex + current.TokenCount - 1
			current.Location2.EndIndex = current.Location2.StartIndex + current.TokenCount - 1
			if pair.Location1.EndLine > current.Location1.EndLine {
				current.Location1.EndLine = pair.Location1.EndLine
			}
			if pair.Location2.EndLine > current.Location2.EndLine {
				current.Location2.EndLine = pair.Location2.EndLine
			}
		} else {
			merged = append(merged, current)
			current = seedRegion(pair)
		}
		prev = pair
	}
	return append(merged, current)
}

// consecutive reports whether next extends prev: same file pair, and both
// copies advanced by exactly one token.
func consecutive(prev, next ClonePair) bool {
	return prev.Location1.File == next.Location1.File &&
		prev.Location2.File == next.Location2.File &&
		next.Location1.StartIndex == prev.Location1.StartIndex+1 &&
		next.Location2.StartIndex == prev.Location2.StartIndex+1
}

func seedRegion(pair ClonePair) MergedClone {
	return MergedClone{
		Location1:  seedLocation(pair.Location1, pair.TokenCount),
		Location2:  seedLocation(pair.Location2, pair.TokenCount),
		TokenCount: pair.TokenCount,
	}
}

func seedLocation(loc FragmentLocation, tokenCount int) MergedLocation {
	return MergedLocation{
		File:       loc.File,
		StartLine:  loc.StartLine,
		EndLine:    loc.EndLine,
		StartIndex: loc.StartIndex,
		EndIndex:   loc.StartIndex + tokenCount - 1,
	}
}
