package langviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	SetLogger(zap.NewNop())
	m.Run()
}

func cognateEdges() []SimilarityEdge {
	return []SimilarityEdge{
		{Source: "a", Target: "b", Weight: 0.9},
		{Source: "b", Target: "c", Weight: 0.85},
		{Source: "d", Target: "e", Weight: 0.95},
	}
}

func TestFindCognateSetsScenario(t *testing.T) {
	sets := FindCognateSets(cognateEdges(), 0.8)
	require.Len(t, sets, 2)

	var sizes []int
	for _, s := range sets {
		sizes = append(sizes, s.Size())
	}
	assert.Contains(t, sizes, 3)
	assert.Contains(t, sizes, 2)
}

func TestComputePageRankTriangle(t *testing.T) {
	edges := []SimilarityEdge{
		{Source: "a", Target: "b", Weight: 0.9},
		{Source: "b", Target: "c", Weight: 0.85},
		{Source: "c", Target: "a", Weight: 0.8},
	}
	ranks, err := ComputePageRank(edges, 0.7, 0.85, 20)
	require.NoError(t, err)
	require.Len(t, ranks, 3)

	var sum float64
	for _, r := range ranks {
		sum += r.Rank
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}

func TestComputePageRankNegativeIterations(t *testing.T) {
	_, err := ComputePageRank(cognateEdges(), 0.8, 0.85, -1)
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestGraphStatsForScenario(t *testing.T) {
	stats := GraphStatsFor(cognateEdges(), 0.8)
	assert.Equal(t, 2, stats.NumComponents)
}

func TestThresholdFilterThenGraphMatchesFindCognateSets(t *testing.T) {
	edges := cognateEdges()
	filtered := ThresholdFilterEdges(edges, 0.8)

	viaFilter := FindCognateSets(filtered, 0.0)
	viaDirect := FindCognateSets(edges, 0.8)

	membersOf := func(sets []CognateSet) map[string]bool {
		out := make(map[string]bool)
		for _, s := range sets {
			for _, m := range s.Members {
				out[m] = true
			}
		}
		return out
	}

	assert.Equal(t, membersOf(viaDirect), membersOf(viaFilter))
	assert.Len(t, viaFilter, len(viaDirect))
}

func TestSparseMatrixFromEdgesKNN(t *testing.T) {
	edges := []SimilarityEdge{
		{Source: "a", Target: "b", Weight: 0.9},
		{Source: "a", Target: "c", Weight: 0.7},
		{Source: "a", Target: "d", Weight: 0.5},
	}
	m := SparseMatrixFromEdges(edges, 0.4)
	got := m.KNN("a", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Target)
	assert.Equal(t, "c", got[1].Target)
}

func TestThresholdClusteringByIDScenario(t *testing.T) {
	clusters := ThresholdClusteringByID(cognateEdges(), 0.8)
	require.Len(t, clusters, 2)
}

func TestGraphToJSONRoundTrips(t *testing.T) {
	raw, err := GraphToJSON(cognateEdges(), 0.8)
	require.NoError(t, err)
	assert.Contains(t, raw, "nodes")
	assert.Contains(t, raw, "edges")
}

func TestShortestPathsFromScenario(t *testing.T) {
	paths := ShortestPathsFrom(cognateEdges(), 0.8, "a")
	assert.Contains(t, paths, "b")
	assert.Contains(t, paths, "c")
	_, hasD := paths["d"]
	assert.False(t, hasD)
}
