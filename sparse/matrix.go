// Package sparse implements the symmetric weighted similarity matrix: an
// immutable CSR-backed structure over a sorted set of entry identifiers,
// with self-edges implicitly 1.0 and kNN / threshold-neighborhood queries.
package sparse

import (
	"container/heap"
	"context"
	"runtime"
	"sort"

	bsparse "github.com/james-bowman/sparse"
	"golang.org/x/sync/errgroup"
)

// Edge is a (source, target, weight) similarity triple, the raw input unit
// for building a Matrix or filtering a batch of edges.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// Matrix is an immutable n x n symmetric similarity matrix in CSR form
// over a sorted vector of entry ids. The diagonal is always 1.0; an
// off-diagonal entry is present only if its weight was >= the build
// threshold.
type Matrix struct {
	ids   []string
	index map[string]int
	csr   *bsparse.CSR
}

// FromEdges builds a Matrix from a list of similarity triples and a
// threshold. Ids are collected from every triple, sorted lexicographically
// for a canonical, reproducible column order, then triplets at or above
// threshold are inserted symmetrically, followed by an implicit
// (i,i,1.0) diagonal for every id.
func FromEdges(edges []Edge, threshold float64) *Matrix {
	idSet := make(map[string]struct{})
	for _, e := range edges {
		idSet[e.Source] = struct{}{}
		idSet[e.Target] = struct{}{}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	n := len(ids)
	dok := bsparse.NewDOK(n, n)

	for _, e := range edges {
		if e.Weight < threshold {
			continue
		}
		i, j := index[e.Source], index[e.Target]
		dok.Set(i, j, e.Weight)
		if i != j {
			dok.Set(j, i, e.Weight)
		}
	}
	for i := 0; i < n; i++ {
		dok.Set(i, i, 1.0)
	}

	return &Matrix{ids: ids, index: index, csr: dok.ToCSR()}
}

// EntryIDs returns the sorted id vector backing the matrix's rows/columns.
func (m *Matrix) EntryIDs() []string {
	return m.ids
}

// Shape returns (rows, cols); always square.
func (m *Matrix) Shape() (int, int) {
	r, c := m.csr.Dims()
	return r, c
}

// NNZ returns the number of stored non-zero entries.
func (m *Matrix) NNZ() int {
	return m.csr.NNZ()
}

// Sparsity is 1 - nnz/(rows*cols), 0 when the matrix is empty.
func (m *Matrix) Sparsity() float64 {
	rows, cols := m.Shape()
	total := rows * cols
	if total == 0 {
		return 0.0
	}
	return 1.0 - float64(m.NNZ())/float64(total)
}

type neighborHeapItem struct {
	weight float64
	col    int
}

// neighborHeap is a max-heap over (weight, col), ties broken by ascending
// column index so kNN output is deterministic. KNN loads every
// non-diagonal entry of the row into it and pops the top k.
type neighborHeap []neighborHeapItem

func (h neighborHeap) Len() int { return len(h) }
func (h neighborHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight > h[j].weight
	}
	return h[i].col < h[j].col
}
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(neighborHeapItem)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// KNN returns the k largest-weight non-diagonal neighbors of entryID in
// descending weight order, ties broken by ascending column index. An
// unknown entryID yields an empty result, not an error.
func (m *Matrix) KNN(entryID string, k int) []Edge {
	row, ok := m.index[entryID]
	if !ok || k <= 0 {
		return nil
	}

	items := make(neighborHeap, 0)
	m.csr.DoRowNonZero(row, func(i, j int, v float64) {
		if j == row {
			return
		}
		items = append(items, neighborHeapItem{weight: v, col: j})
	})
	heap.Init(&items)

	out := make([]Edge, 0, k)
	for i := 0; i < k && items.Len() > 0; i++ {
		top := heap.Pop(&items).(neighborHeapItem)
		out = append(out, Edge{Source: entryID, Target: m.ids[top.col], Weight: top.weight})
	}
	return out
}

// NeighborsAboveThreshold returns every non-diagonal entry of entryID's
// row with value >= threshold, in ascending column-index (storage) order.
func (m *Matrix) NeighborsAboveThreshold(entryID string, threshold float64) []Edge {
	row, ok := m.index[entryID]
	if !ok {
		return nil
	}

	type colWeight struct {
		col    int
		weight float64
	}
	var hits []colWeight
	m.csr.DoRowNonZero(row, func(i, j int, v float64) {
		if j == row || v < threshold {
			return
		}
		hits = append(hits, colWeight{col: j, weight: v})
	})
	sort.Slice(hits, func(a, b int) bool { return hits[a].col < hits[b].col })

	out := make([]Edge, len(hits))
	for i, h := range hits {
		out[i] = Edge{Source: entryID, Target: m.ids[h.col], Weight: h.weight}
	}
	return out
}

// ToDenseSubmatrix projects rows and columns for the given ids, in the
// order supplied. Absent ids are silently skipped; entries not stored in
// the sparse matrix become 0.
func (m *Matrix) ToDenseSubmatrix(ids []string) [][]float64 {
	indices := make([]int, 0, len(ids))
	for _, id := range ids {
		if idx, ok := m.index[id]; ok {
			indices = append(indices, idx)
		}
	}

	n := len(indices)
	dense := make([][]float64, n)
	for i := range dense {
		dense[i] = make([]float64, n)
	}

	pos := make(map[int]int, n)
	for i, idx := range indices {
		pos[idx] = i
	}

	for i, rowIdx := range indices {
		m.csr.DoRowNonZero(rowIdx, func(_, col int, v float64) {
			if j, ok := pos[col]; ok {
				dense[i][j] = v
			}
		})
	}
	return dense
}

// MatVec computes a standard sparse row-wise inner product: result[i] =
// sum_j matrix[i,j] * v[j]. The result length equals the number of rows.
func (m *Matrix) MatVec(v []float64) []float64 {
	rows, _ := m.Shape()
	result := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		m.csr.DoRowNonZero(i, func(_, j int, value float64) {
			sum += value * v[j]
		})
		result[i] = sum
	}
	return result
}

// ThresholdFilter keeps only edges with weight >= threshold. The keep
// decision for each index is computed in parallel over a bounded worker
// pool, each goroutine writing only its own disjoint slot; the final
// compaction pass is sequential so output order matches input order.
func ThresholdFilter(edges []Edge, threshold float64) []Edge {
	keep := make([]bool, len(edges))
	if len(edges) > 0 {
		g, _ := errgroup.WithContext(context.Background())
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range edges {
			i := i
			g.Go(func() error {
				keep[i] = edges[i].Weight >= threshold
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make([]Edge, 0, len(edges))
	for i, e := range edges {
		if keep[i] {
			out = append(out, e)
		}
	}
	return out
}
