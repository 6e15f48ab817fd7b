package cluster

import "sort"

// Triple is a (i, j, similarity) observation over integer indices, the raw
// unit ThresholdClustering and the quality metrics consume.
type Triple struct {
	I, J   int
	Weight float64
}

// StringTriple is the string-keyed counterpart of Triple.
type StringTriple struct {
	A, B   string
	Weight float64
}

// Assignment pairs an entry id with the index of the cluster it landed in,
// a lightweight alternative to materializing full member lists.
type Assignment struct {
	ID        string
	ClusterID int
}

// ThresholdClustering starts with nItems singletons and unions the
// endpoints of every triple at or above threshold, returning the
// resulting components as lists of indices.
func ThresholdClustering(similarities []Triple, nItems int, threshold float64) [][]int {
	uf := NewUnionFind(nItems)
	for _, t := range similarities {
		if t.Weight >= threshold {
			uf.Union(t.I, t.J)
		}
	}
	return uf.Components()
}

// ThresholdClusteringWithIDs assigns indices by lexicographic sort of the
// ids observed in similarities, skips triples that reference unknown ids
// after that mapping (there are none, by construction, since every
// triple's endpoints are indexed), clusters by index, then remaps back to
// ids.
func ThresholdClusteringWithIDs(similarities []StringTriple, threshold float64) [][]string {
	idSet := make(map[string]struct{})
	for _, t := range similarities {
		idSet[t.A] = struct{}{}
		idSet[t.B] = struct{}{}
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

	indexed := make([]Triple, 0, len(similarities))
	for _, t := range similarities {
		i, ok1 := index[t.A]
		j, ok2 := index[t.B]
		if !ok1 || !ok2 {
			continue
		}
		indexed = append(indexed, Triple{I: i, J: j, Weight: t.Weight})
	}

	clusters := ThresholdClustering(indexed, len(ids), threshold)

	out := make([][]string, len(clusters))
	for c, members := range clusters {
		named := make([]string, len(members))
		for i, idx := range members {
			named[i] = ids[idx]
		}
		out[c] = named
	}
	return out
}

// AssignmentsFor flattens a cluster membership listing into one
// Assignment per member, cluster ids following the input slice's order.
func AssignmentsFor(clusters [][]string) []Assignment {
	var out []Assignment
	for clusterID, members := range clusters {
		for _, id := range members {
			out = append(out, Assignment{ID: id, ClusterID: clusterID})
		}
	}
	return out
}
