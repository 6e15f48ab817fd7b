package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasicASCII(t *testing.T) {
	segs := Split("cat")
	require.Len(t, segs, 3)
	assert.Equal(t, []string{"c", "a", "t"}, Graphemes(segs))
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(""))
}

func TestSplitCombiningDiacritic(t *testing.T) {
	// "t" + combining dental diacritic (U+032A) must stay one grapheme.
	s := "t̪"
	segs := Split(s)
	require.Len(t, segs, 1)
	assert.Equal(t, s, segs[0].Grapheme)
}

func TestFeatureDistanceNoFeatures(t *testing.T) {
	a := Segment{Grapheme: "p"}
	b := Segment{Grapheme: "b"}
	assert.Equal(t, 1.0, a.FeatureDistance(b))
}

func TestFeatureDistanceAllEqual(t *testing.T) {
	var f Features
	a := Segment{Grapheme: "p", Features: &f}
	b := Segment{Grapheme: "p", Features: &f}
	assert.Equal(t, 0.0, a.FeatureDistance(b))
}

func TestFeatureDistancePartialMismatch(t *testing.T) {
	var fa, fb Features
	fa[0], fa[1] = 1, 1
	fb[0], fb[1] = 1, -1
	a := Segment{Grapheme: "p", Features: &fa}
	b := Segment{Grapheme: "b", Features: &fb}
	assert.InDelta(t, 1.0/float64(FeatureWidth), a.FeatureDistance(b), 1e-9)
}

func TestSplitWithFeaturesAttachesKnownOnly(t *testing.T) {
	lookup := func(g string) (Features, bool) {
		if g == "p" {
			var f Features
			f[0] = 1
			return f, true
		}
		return Features{}, false
	}
	segs := SplitWithFeatures("pb", lookup)
	require.Len(t, segs, 2)
	require.NotNil(t, segs[0].Features)
	assert.Equal(t, int8(1), segs[0].Features[0])
	assert.Nil(t, segs[1].Features)
}

func TestRemoveMarksStripsDiacritics(t *testing.T) {
	out := RemoveMarks("t̪ést")
	assert.Equal(t, "test", out)
}
