package langviz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sampleCorrespondences() []Correspondence {
	return []Correspondence{
		{From: "p", To: "b", Count: 5},
		{From: "p", To: "f", Count: 1},
		{From: "t", To: "d", Count: 4},
	}
}

func TestCorrespondenceMatrixRowsSumToOne(t *testing.T) {
	ids, m := CorrespondenceMatrix(sampleCorrespondences())
	require.Equal(t, []string{"b", "d", "f", "p", "t"}, ids)

	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, m)
		var total float64
		for _, v := range row {
			total += v
		}
		assert.True(t, total == 0 || (total > 0.999 && total < 1.001))
	}
}

func TestCorrespondenceMatrixEmptyInput(t *testing.T) {
	ids, m := CorrespondenceMatrix(nil)
	assert.Empty(t, ids)
	assert.Nil(t, m)
}

func TestGraphemeEmbeddingProducesVectorPerID(t *testing.T) {
	ids, vectors := GraphemeEmbedding(sampleCorrespondences(), 2)
	require.Len(t, vectors, len(ids))
	for _, id := range ids {
		v, ok := vectors[id]
		require.True(t, ok)
		assert.Equal(t, 2, v.Len())
	}
}

func TestCosineSimilarityIdenticalVectorsIsOne(t *testing.T) {
	v := mat.NewVecDense(3, []float64{1, 2, 3})
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarityZeroVectorIsZero(t *testing.T) {
	zero := mat.NewVecDense(3, nil)
	v := mat.NewVecDense(3, []float64{1, 2, 3})
	assert.Equal(t, 0.0, CosineSimilarity(zero, v))
}

func TestNearestGraphemesExcludesSelf(t *testing.T) {
	_, vectors := GraphemeEmbedding(sampleCorrespondences(), 2)
	nearest := NearestGraphemes(vectors, "p", 3)
	for _, id := range nearest {
		assert.NotEqual(t, "p", id)
	}
}

func TestNearestGraphemesUnknownTargetIsEmpty(t *testing.T) {
	_, vectors := GraphemeEmbedding(sampleCorrespondences(), 2)
	assert.Empty(t, NearestGraphemes(vectors, "zzz", 3))
}
