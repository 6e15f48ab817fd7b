// Package segment splits IPA transcription strings into extended grapheme
// clusters (user-perceived characters per Unicode text segmentation) and
// carries an optional 24-wide signed feature vector alongside each one.
package segment

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rivo/uniseg"
)

// FeatureWidth is the fixed dimensionality of a phonological feature
// vector (Panphon-style: roughly {-1, 0, +1} per feature).
const FeatureWidth = 24

// Features is a 24-wide signed feature vector attached to a Segment.
type Features [FeatureWidth]int8

// Segment is one grapheme cluster of a transcription, with an optional
// feature vector. A nil Features pointer means no feature data was
// supplied for this segment.
type Segment struct {
	Grapheme string
	Features *Features
}

// FeatureDistance is the fraction of the 24 feature positions that differ
// between two segments, in [0,1]. Segments with no feature vector are
// treated as maximally distant (1.0) from anything, since there is no
// feature information to compare.
func (s Segment) FeatureDistance(other Segment) float64 {
	if s.Features == nil || other.Features == nil {
		return 1.0
	}
	var diff int
	for i := 0; i < FeatureWidth; i++ {
		if s.Features[i] != other.Features[i] {
			diff++
		}
	}
	return float64(diff) / float64(FeatureWidth)
}

// Split decomposes a transcription string into extended grapheme clusters.
// The string is first normalized to NFC so diacritic sequences with a
// precomposed form collapse to one code point before boundary detection;
// stacked diacritics with no precomposed form (common in IPA, e.g. a dental
// diacritic under a plosive) pass through unchanged and still form a single
// grapheme cluster via the extended-grapheme-cluster rules. Multi-scalar
// graphemes (base letter plus combining diacritics, modifier letters)
// remain a single Segment. No feature vector is attached; use
// SplitWithFeatures when a feature dictionary lookup is available.
func Split(transcription string) []Segment {
	graphemes := splitGraphemes(transcription)
	out := make([]Segment, len(graphemes))
	for i, g := range graphemes {
		out[i] = Segment{Grapheme: g}
	}
	return out
}

// SplitWithFeatures decomposes a transcription the same way Split does,
// then attaches a feature vector to each grapheme via lookup. lookup
// reports false for graphemes with no known feature data; those segments
// carry a nil Features pointer.
func SplitWithFeatures(transcription string, lookup func(grapheme string) (Features, bool)) []Segment {
	graphemes := splitGraphemes(transcription)
	out := make([]Segment, len(graphemes))
	for i, g := range graphemes {
		seg := Segment{Grapheme: g}
		if f, ok := lookup(g); ok {
			fc := f
			seg.Features = &fc
		}
		out[i] = seg
	}
	return out
}

func splitGraphemes(transcription string) []string {
	if transcription == "" {
		return nil
	}
	normalized := NFC.String(transcription)
	state := -1
	var graphemes []string
	remaining := normalized
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		graphemes = append(graphemes, cluster)
	}
	return graphemes
}

// Graphemes returns just the grapheme strings of a segment slice, for
// callers (Levenshtein, LCS, DTW) that only need positional string
// equality and not feature data.
func Graphemes(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Grapheme
	}
	return out
}

// NFC is the precomposition transformer splitGraphemes applies before
// grapheme-cluster boundary detection, also exposed for callers that want
// to normalize a transcription the same way ahead of time.
var NFC = norm.NFC

var marks = runes.Remove(runes.In(unicode.Mn))

// RemoveMarks strips Unicode nonspacing marks (diacritics, category Mn)
// from s after NFD decomposition. This is NOT part of Split's default
// pipeline — IPA diacritics carry phonemic information Split preserves as
// part of a grapheme cluster — it is an opt-in utility for callers that
// want a coarsened, diacritic-free comparison string instead.
func RemoveMarks(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFD, marks), s)
	if err != nil {
		return s
	}
	return out
}
