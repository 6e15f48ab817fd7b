package graph

// DetectCommunities greedily hill-climbs modularity: every node starts in
// its own singleton community; each pass visits nodes in node-index order
// and, for every neighboring community different from the node's current
// one, evaluates the global modularity after hypothetically moving the
// node there. The best strictly-improving move (if any) is committed. Up
// to 10 passes run, stopping early when a full pass makes no move. This is
// a simple, deterministic hill-climb — not true Louvain — and does not
// guarantee a global optimum.
func (gr *Graph) DetectCommunities(resolution float64) [][]string {
	nodeIDs := gr.NodeIDs()
	n := len(nodeIDs)
	if n == 0 {
		return nil
	}

	idxOf := make(map[int64]int, n)
	for i, id := range nodeIDs {
		idxOf[id] = i
	}

	// community[i] is the community index node i currently belongs to;
	// initialized to singletons (community[i] == i).
	community := make([]int, n)
	for i := range community {
		community[i] = i
	}

	const maxPasses = 10
	for pass := 0; pass < maxPasses; pass++ {
		changed := false

		for i, id := range nodeIDs {
			current := community[i]
			bestCommunity := current
			bestModularity := modularity(gr, nodeIDs, community, resolution)
			seen := map[int]bool{current: true}

			for _, nbID := range gr.Neighbors(id) {
				nbIdx := idxOf[nbID]
				candidate := community[nbIdx]
				if seen[candidate] {
					continue
				}
				seen[candidate] = true

				community[i] = candidate
				newQ := modularity(gr, nodeIDs, community, resolution)
				community[i] = current

				if newQ > bestModularity {
					bestModularity = newQ
					bestCommunity = candidate
					changed = true
				}
			}

			if bestCommunity != current {
				community[i] = bestCommunity
			}
		}

		if !changed {
			break
		}
	}

	return groupByCommunity(gr, nodeIDs, community)
}

// modularity computes Q = sum_c [ e_in/m - gamma*(sum_deg/(2m))^2 ] over
// the current community assignment, recomputed from scratch on every call.
func modularity(gr *Graph, nodeIDs []int64, community []int, resolution float64) float64 {
	m := float64(gr.NumEdges())
	if m == 0 {
		return 0.0
	}

	members := make(map[int][]int64)
	for i, id := range nodeIDs {
		c := community[i]
		members[c] = append(members[c], id)
	}

	inCommunity := make(map[int64]int, len(nodeIDs))
	for i, id := range nodeIDs {
		inCommunity[id] = community[i]
	}

	var q float64
	for c, ids := range members {
		var internalEdges, totalDegree float64
		idSet := make(map[int64]bool, len(ids))
		for _, id := range ids {
			idSet[id] = true
		}
		for _, id := range ids {
			neighbors := gr.Neighbors(id)
			totalDegree += float64(len(neighbors))
			for _, nb := range neighbors {
				if inCommunity[nb] == c {
					internalEdges++
				}
			}
		}
		internalEdges /= 2.0
		q += internalEdges/m - resolution*(totalDegree/(2*m))*(totalDegree/(2*m))
	}
	return q
}

func groupByCommunity(gr *Graph, nodeIDs []int64, community []int) [][]string {
	groups := make(map[int][]string)
	var order []int
	for i, id := range nodeIDs {
		c := community[i]
		if _, ok := groups[c]; !ok {
			order = append(order, c)
		}
		groups[c] = append(groups[c], gr.Label(id))
	}

	out := make([][]string, 0, len(order))
	for _, c := range order {
		if len(groups[c]) > 0 {
			out = append(out, groups[c])
		}
	}
	return out
}
