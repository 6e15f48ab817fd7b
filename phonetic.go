package langviz

import (
	"github.com/griffincancode/langviz/internal/segment"
)

// PhoneticDistance computes normalized Levenshtein similarity between two
// IPA transcription strings, segmented into extended grapheme clusters.
// Returns 1.0 when both are empty (the identity case), else
// 1 - distance/max(|A|,|B|). This is a SIMILARITY (higher is more alike),
// the polarity every edge and matrix in this package expects; compare with
// FeatureWeightedDistance below, which returns a distance.
func PhoneticDistance(a, b string) float64 {
	segsA := segment.Graphemes(segment.Split(a))
	segsB := segment.Graphemes(segment.Split(b))
	return levenshteinSimilarity(segsA, segsB)
}

func levenshteinSimilarity(a, b []string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshteinDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

// levenshteinDistance computes classical edit distance with unit
// substitution/insertion/deletion costs using a rolling two-row table.
func levenshteinDistance(a, b []string) int {
	lenA, lenB := len(a), len(b)
	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 0; i < lenA; i++ {
		curr[0] = i + 1
		for j := 0; j < lenB; j++ {
			cost := 1
			if a[i] == b[j] {
				cost = 0
			}
			del := curr[j] + 1
			ins := prev[j+1] + 1
			sub := prev[j] + cost
			curr[j+1] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lenB]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func fmin3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// BatchPhoneticDistance computes PhoneticDistance for every pair in order,
// preserving input order in the output.
func BatchPhoneticDistance(pairs [][2]string) []float64 {
	return parallelMap(len(pairs), func(i int) float64 {
		return PhoneticDistance(pairs[i][0], pairs[i][1])
	})
}

// FeatureWeightedDistance runs the same edit-distance recurrence as
// PhoneticDistance, but substitution cost is the 24-dimension feature
// distance between mismatched segments (0 when graphemes are equal),
// while insertion/deletion remain unit cost. Returns a DISTANCE in [0,1]:
// 0 when both sequences are empty, 1 when exactly one is, otherwise
// raw_cost/max(|A|,|B|).
func FeatureWeightedDistance(a, b []segment.Segment) float64 {
	lenA, lenB := len(a), len(b)
	if lenA == 0 && lenB == 0 {
		return 0.0
	}
	if lenA == 0 || lenB == 0 {
		return 1.0
	}

	dp := make([][]float64, lenA+1)
	for i := range dp {
		dp[i] = make([]float64, lenB+1)
	}
	for i := 0; i <= lenA; i++ {
		dp[i][0] = float64(i)
	}
	for j := 0; j <= lenB; j++ {
		dp[0][j] = float64(j)
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			segA := a[i-1]
			segB := b[j-1]
			substCost := 0.0
			if segA.Grapheme != segB.Grapheme {
				substCost = segA.FeatureDistance(segB)
			}
			dp[i][j] = fmin3(
				dp[i-1][j]+1.0,
				dp[i][j-1]+1.0,
				dp[i-1][j-1]+substCost,
			)
		}
	}

	maxLen := float64(lenA)
	if lenB > lenA {
		maxLen = float64(lenB)
	}
	return dp[lenA][lenB] / maxLen
}

// LCSRatio is the longest-common-subsequence length over
// max(|A|,|B|), computed on grapheme equality. Returns 1.0 when both
// inputs are empty.
func LCSRatio(a, b string) float64 {
	segsA := segment.Graphemes(segment.Split(a))
	segsB := segment.Graphemes(segment.Split(b))

	maxLen := len(segsA)
	if len(segsB) > maxLen {
		maxLen = len(segsB)
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(lcsLength(segsA, segsB)) / float64(maxLen)
}

func lcsLength(a, b []string) int {
	lenA, lenB := len(a), len(b)
	dp := make([][]int, lenA+1)
	for i := range dp {
		dp[i] = make([]int, lenB+1)
	}
	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = maxInt(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return dp[lenA][lenB]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// DTWAlign computes a Dynamic-Time-Warping alignment between two IPA
// transcriptions with full backtrace: cost[0,0]=0, all other boundary
// cells +Inf (every path enters through
// (1,1) via the diagonal); cost[i,j] = match_cost + min(up, left, diag).
// Backtrace prefers diagonal whenever diag <= up && diag <= left, then up
// over left on remaining ties, with hard boundary rules along the edges.
// Either sequence empty returns an empty alignment with cost 0.
func DTWAlign(a, b string) Alignment {
	segsA := segment.Graphemes(segment.Split(a))
	segsB := segment.Graphemes(segment.Split(b))
	return dtwAlign(segsA, segsB)
}

func dtwAlign(segsA, segsB []string) Alignment {
	lenA, lenB := len(segsA), len(segsB)
	if lenA == 0 || lenB == 0 {
		return Alignment{SeqA: []string{}, SeqB: []string{}, Operations: nil, Cost: 0.0}
	}

	const inf = 1e18
	cost := make([][]float64, lenA+1)
	for i := range cost {
		cost[i] = make([]float64, lenB+1)
		for j := range cost[i] {
			cost[i][j] = inf
		}
	}
	cost[0][0] = 0.0

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			matchCost := 1.0
			if segsA[i-1] == segsB[j-1] {
				matchCost = 0.0
			}
			cost[i][j] = matchCost + fmin3(cost[i-1][j], cost[i][j-1], cost[i-1][j-1])
		}
	}

	i, j := lenA, lenB
	var operations []EditOp
	var seqA, seqB []string

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			operations = append(operations, OpInsert)
			seqA = append(seqA, GapMarker)
			seqB = append(seqB, segsB[j-1])
			j--
		case j == 0:
			operations = append(operations, OpDelete)
			seqA = append(seqA, segsA[i-1])
			seqB = append(seqB, GapMarker)
			i--
		default:
			diag := cost[i-1][j-1]
			up := cost[i-1][j]
			left := cost[i][j-1]
			switch {
			case diag <= up && diag <= left:
				if segsA[i-1] == segsB[j-1] {
					operations = append(operations, OpMatch)
				} else {
					operations = append(operations, OpSubstitute)
				}
				seqA = append(seqA, segsA[i-1])
				seqB = append(seqB, segsB[j-1])
				i--
				j--
			case up <= left:
				operations = append(operations, OpDelete)
				seqA = append(seqA, segsA[i-1])
				seqB = append(seqB, GapMarker)
				i--
			default:
				operations = append(operations, OpInsert)
				seqA = append(seqA, GapMarker)
				seqB = append(seqB, segsB[j-1])
				j--
			}
		}
	}

	reverseStrings(seqA)
	reverseStrings(seqB)
	reverseOps(operations)

	return Alignment{SeqA: seqA, SeqB: seqB, Operations: operations, Cost: cost[lenA][lenB]}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseOps(s []EditOp) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ExtractSoundCorrespondences counts every substitute-position
// (from, to) pair across a batch of alignments and returns them sorted by
// descending count, ties broken by first-occurrence order.
func ExtractSoundCorrespondences(alignments []Alignment) []Correspondence {
	counts := make(map[[2]string]int)
	order := make(map[[2]string]int)
	var keys [][2]string

	for _, al := range alignments {
		for _, c := range al.Correspondences() {
			key := [2]string{c.From, c.To}
			if _, seen := counts[key]; !seen {
				order[key] = len(keys)
				keys = append(keys, key)
			}
			counts[key]++
		}
	}

	out := make([]Correspondence, len(keys))
	for i, k := range keys {
		out[i] = Correspondence{From: k[0], To: k[1], Count: counts[k]}
	}
	stableSortCorrespondences(out, order)
	return out
}

func stableSortCorrespondences(cs []Correspondence, order map[[2]string]int) {
	// insertion sort: descending count, ties by first-occurrence order.
	// Stable and simple — the batches this runs over are small relative to
	// the O(n^2) work already paid to produce the alignments.
	for i := 1; i < len(cs); i++ {
		j := i
		for j > 0 && less(cs[j], cs[j-1], order) {
			cs[j], cs[j-1] = cs[j-1], cs[j]
			j--
		}
	}
}

func less(a, b Correspondence, order map[[2]string]int) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return order[[2]string{a.From, a.To}] < order[[2]string{b.From, b.To}]
}

// SimilarityMatrix computes the full symmetric NxN phonetic similarity
// matrix over a batch of transcriptions: diagonal 1.0, the strict upper
// triangle computed in parallel, then mirrored.
func SimilarityMatrix(strs []string) [][]float64 {
	n := len(strs)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	sims := parallelMap(len(pairs), func(idx int) float64 {
		p := pairs[idx]
		return PhoneticDistance(strs[p.i], strs[p.j])
	})

	for idx, p := range pairs {
		matrix[p.i][p.j] = sims[idx]
		matrix[p.j][p.i] = sims[idx]
	}
	return matrix
}
