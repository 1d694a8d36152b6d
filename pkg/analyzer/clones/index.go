package clones

import (
	"strconv"
	"strings"

	"github.com/ets-tools/arklint/pkg/lexer"
)

// hashSeparator joins token values for hashing. Not expected to appear
// inside token values.
const hashSeparator = "|"

// Hash computes a 32-bit multiply-add content hash (djb2 family) of s,
// rendered as a hexadecimal string. Content hash, not cryptographic:
// collisions are possible and are not disambiguated by a secondary
// equality check; a false chain breaks at the first non-colliding window
// during merging, so the accepted blast radius is one window-sized report.
func Hash(s string) string {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	return strconv.FormatUint(uint64(uint32(h)), 16)
}

// WindowHash hashes a window's token values. Values only — not types, not
// positions — so identical token sequences hash identically regardless of
// file or position. That is exactly the clone-detection signal.
func WindowHash(tokens []lexer.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteString(hashSeparator)
		}
		sb.WriteString(t.Value)
	}
	return Hash(sb.String())
}

// Index maps a content hash to every fragment location sharing it.
// Insertion order is preserved for deterministic duplicate enumeration.
// No eviction and no memory bound: the index grows with the corpus token
// count and lives for one detection run.
type Index struct {
	buckets map[string][]FragmentLocation
	order   []string
}

// NewIndex creates an empty hash index.
func NewIndex() *Index {
	return &Index{buckets: make(map[string][]FragmentLocation)}
}

// Add appends location to the hash's bucket, creating it on first insert.
func (ix *Index) Add(hash string, loc FragmentLocation) {
	if _, ok := ix.buckets[hash]; !ok {
		ix.order = append(ix.order, hash)
	}
	ix.buckets[hash] = append(ix.buckets[hash], loc)
}

// Get returns the bucket for hash, or nil.
func (ix *Index) Get(hash string) []FragmentLocation {
	return ix.buckets[hash]
}

// Duplicates returns every bucket holding two or more locations, in
// insertion order.
func (ix *Index) Duplicates() []DuplicateGroup {
	var groups []DuplicateGroup
	for _, hash := range ix.order {
		if locs := ix.buckets[hash]; len(locs) >= 2 {
			groups = append(groups, DuplicateGroup{Hash: hash, Locations: locs})
		}
	}
	return groups
}

// Size returns the number of distinct hashes.
func (ix *Index) Size() int {
	return len(ix.buckets)
}

// Clear empties all state for the next run.
func (ix *Index) Clear() {
	ix.buckets = make(map[string][]FragmentLocation)
	ix.order = nil
}
