package graph

import "sort"

// RankedNode is one entry of a PageRank result, used when the caller wants
// a stable, descending-by-rank ordering instead of a map.
type RankedNode struct {
	ID   string
	Rank float64
}

// PageRank computes centrality with uniform initialization r_v = 1/n.
// Each round assigns every node the base term (1-d)/n, then for every node
// u with out-degree k > 0 distributes d*r_u/k to each neighbor (the
// undirected case treats every edge as two directed edges, so degree
// equals adjacency count). There is no early-convergence check; callers
// choose iterations.
func (gr *Graph) PageRank(damping float64, iterations int) map[string]float64 {
	nodeIDs := gr.NodeIDs()
	n := len(nodeIDs)
	result := make(map[string]float64, n)
	if n == 0 {
		return result
	}

	idxOf := make(map[int64]int, n)
	for i, id := range nodeIDs {
		idxOf[id] = i
	}

	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)

	base := (1.0 - damping) / float64(n)
	for iter := 0; iter < iterations; iter++ {
		for i := range next {
			next[i] = base
		}
		for i, id := range nodeIDs {
			neighbors := gr.Neighbors(id)
			outDegree := len(neighbors)
			if outDegree == 0 {
				continue
			}
			contribution := damping * ranks[i] / float64(outDegree)
			for _, nb := range neighbors {
				next[idxOf[nb]] += contribution
			}
		}
		ranks, next = next, ranks
	}

	for i, id := range nodeIDs {
		result[gr.Label(id)] = ranks[i]
	}
	return result
}

// PageRankSorted returns the same ranks as PageRank, sorted descending by
// rank.
func (gr *Graph) PageRankSorted(damping float64, iterations int) []RankedNode {
	ranks := gr.PageRank(damping, iterations)
	out := make([]RankedNode, 0, len(ranks))
	for id, r := range ranks {
		out = append(out, RankedNode{ID: id, Rank: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return out
}
