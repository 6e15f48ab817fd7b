package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFindBasic(t *testing.T) {
	uf := NewUnionFind(5)
	uf.Union(0, 1)
	uf.Union(2, 3)
	uf.Union(1, 2)

	assert.Equal(t, uf.Find(0), uf.Find(3))
	assert.NotEqual(t, uf.Find(0), uf.Find(4))
}

func TestUnionFindEqualRankTieBreak(t *testing.T) {
	uf := NewUnionFind(2)
	uf.Union(0, 1)
	// x=0 should become root when ranks were equal.
	assert.Equal(t, 0, uf.Find(1))
}

func TestThresholdClusteringCounts(t *testing.T) {
	sims := []Triple{
		{I: 0, J: 1, Weight: 0.9},
		{I: 1, J: 2, Weight: 0.85},
		{I: 3, J: 4, Weight: 0.95},
	}
	clusters := ThresholdClustering(sims, 5, 0.8)
	assert.Len(t, clusters, 2)

	total := 0
	for _, c := range clusters {
		total += len(c)
	}
	assert.Equal(t, 5, total)
}

func TestThresholdClusteringWithIDs(t *testing.T) {
	sims := []StringTriple{
		{A: "a", B: "b", Weight: 0.9},
		{A: "b", B: "c", Weight: 0.85},
	}
	clusters := ThresholdClusteringWithIDs(sims, 0.8)
	require.NotEmpty(t, clusters)
	assert.GreaterOrEqual(t, len(clusters[0]), 2)
}

func TestThresholdClusteringWithIDsKeepsEveryObservedID(t *testing.T) {
	sims := []StringTriple{
		{A: "a", B: "b", Weight: 0.9},
	}
	clusters := ThresholdClusteringWithIDs(sims, 0.8)
	flat := 0
	for _, c := range clusters {
		flat += len(c)
	}
	assert.Equal(t, 2, flat)
}

func TestAssignmentsFor(t *testing.T) {
	clusters := [][]string{{"a", "b"}, {"c"}}
	assignments := AssignmentsFor(clusters)
	require.Len(t, assignments, 3)
	for _, a := range assignments {
		if a.ID == "c" {
			assert.Equal(t, 1, a.ClusterID)
		} else {
			assert.Equal(t, 0, a.ClusterID)
		}
	}
}

func TestSilhouetteScoreSingletonIsZero(t *testing.T) {
	sims := []Triple{{I: 0, J: 1, Weight: 0.1}}
	clusters := [][]int{{0}, {1}}
	score := SilhouetteScore(sims, clusters)
	assert.Equal(t, 0.0, score)
}

func TestSilhouetteScoreEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, SilhouetteScore(nil, nil))
}

func TestSilhouetteScoreWellSeparatedPositive(t *testing.T) {
	// Two tight clusters, far apart: {0,1} similar (0.95), {2,3} similar
	// (0.95), cross-cluster similarity low (0.1).
	sims := []Triple{
		{I: 0, J: 1, Weight: 0.95},
		{I: 2, J: 3, Weight: 0.95},
		{I: 0, J: 2, Weight: 0.1},
		{I: 0, J: 3, Weight: 0.1},
		{I: 1, J: 2, Weight: 0.1},
		{I: 1, J: 3, Weight: 0.1},
	}
	clusters := [][]int{{0, 1}, {2, 3}}
	score := SilhouetteScore(sims, clusters)
	assert.Greater(t, score, 0.0)
}

func TestWithinClusterVarianceSkipsSingletons(t *testing.T) {
	sims := []Triple{{I: 0, J: 1, Weight: 0.9}}
	clusters := [][]int{{0}, {1}}
	assert.Equal(t, 0.0, WithinClusterVariance(sims, clusters))
}

func TestWithinClusterVarianceComputesDeviation(t *testing.T) {
	sims := []Triple{
		{I: 0, J: 1, Weight: 0.8},
		{I: 0, J: 2, Weight: 1.0},
		{I: 1, J: 2, Weight: 0.6},
	}
	clusters := [][]int{{0, 1, 2}}
	v := WithinClusterVariance(sims, clusters)
	assert.Greater(t, v, 0.0)
}
