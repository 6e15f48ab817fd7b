package langviz

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CorrespondenceMatrix builds a dense, row-normalized grapheme-to-grapheme
// substitution matrix from a batch of sound correspondences: entry (i,j) is
// the fraction of all substitutions out of grapheme i that landed on
// grapheme j. Graphemes are indexed in sorted order for a reproducible
// layout. A gap marker in the input is indexed like any other grapheme;
// correspondences from ExtractSoundCorrespondences come from substitute
// positions only, so they never contain "-".
func CorrespondenceMatrix(corrs []Correspondence) (ids []string, matrix *mat.Dense) {
	seen := make(map[string]struct{})
	for _, c := range corrs {
		seen[c.From] = struct{}{}
		seen[c.To] = struct{}{}
	}
	ids = make([]string, 0, len(seen))
	for g := range seen {
		ids = append(ids, g)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, g := range ids {
		index[g] = i
	}

	n := len(ids)
	if n == 0 {
		return ids, nil
	}
	matrix = mat.NewDense(n, n, nil)
	for _, c := range corrs {
		i, j := index[c.From], index[c.To]
		matrix.Set(i, j, matrix.At(i, j)+float64(c.Count))
	}

	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, matrix)
		var total float64
		for _, v := range row {
			total += v
		}
		if total == 0 {
			continue
		}
		for j, v := range row {
			matrix.Set(i, j, v/total)
		}
	}
	return ids, matrix
}

// GraphemeEmbedding reduces a correspondence matrix to dims-dimensional
// vectors per grapheme via truncated SVD: factor the matrix, then slice
// rows of U as per-grapheme vectors. Graphemes whose substitution row was
// entirely zero get 0 in every component that belongs to a non-zero
// singular value; components past the matrix rank come from U's null-space
// columns and need not be 0.
func GraphemeEmbedding(corrs []Correspondence, dims int) (ids []string, vectors map[string]mat.Vector) {
	ids, matrix := CorrespondenceMatrix(corrs)
	vectors = make(map[string]mat.Vector, len(ids))
	if matrix == nil {
		return ids, vectors
	}

	var svd mat.SVD
	ok := svd.Factorize(matrix, mat.SVDThin)
	if !ok {
		for _, id := range ids {
			vectors[id] = mat.NewVecDense(dims, nil)
		}
		return ids, vectors
	}

	u := svd.UTo(nil)
	rows, cols := u.Dims()
	width := dims
	if cols < width {
		width = cols
	}

	for i, id := range ids {
		if i >= rows {
			vectors[id] = mat.NewVecDense(dims, nil)
			continue
		}
		vec := mat.NewVecDense(dims, nil)
		for d := 0; d < width; d++ {
			vec.SetVec(d, u.At(i, d))
		}
		vectors[id] = vec
	}
	return ids, vectors
}

// CosineSimilarity is the standard dot(a,b) / (||a|| * ||b||) over two
// equal-length embedding vectors, 0 when either is the zero vector.
func CosineSimilarity(a, b mat.Vector) float64 {
	na := mat.Norm(a, 2)
	nb := mat.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0.0
	}
	return mat.Dot(a, b) / (na * nb)
}

// NearestGraphemes returns the top-k graphemes (excluding target itself) by
// cosine similarity of their embedding vectors to target's, descending.
func NearestGraphemes(vectors map[string]mat.Vector, target string, k int) []string {
	self, ok := vectors[target]
	if !ok || k <= 0 {
		return nil
	}

	type scored struct {
		id  string
		sim float64
	}
	var candidates []scored
	for id, v := range vectors {
		if id == target {
			continue
		}
		candidates = append(candidates, scored{id: id, sim: CosineSimilarity(self, v)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].sim != candidates[j].sim {
			return candidates[i].sim > candidates[j].sim
		}
		return candidates[i].id < candidates[j].id
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].id
	}
	return out
}
