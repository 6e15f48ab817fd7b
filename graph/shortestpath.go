package graph

import (
	"container/heap"
	"math"
)

type pqItem struct {
	id   int64
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPaths runs Dijkstra from sourceID, treating edge weights
// literally as non-negative path costs. Unreachable nodes are absent from
// the result. An unknown sourceID yields an empty result.
func (gr *Graph) ShortestPaths(sourceID string) map[string]float64 {
	result := make(map[string]float64)

	srcID, ok := gr.ID(sourceID)
	if !ok {
		return result
	}

	dist := make(map[int64]float64)
	visited := make(map[int64]bool)
	dist[srcID] = 0.0

	pq := &priorityQueue{{id: srcID, dist: 0.0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true

		for _, nb := range gr.Neighbors(item.id) {
			w, ok := gr.Weight(item.id, nb)
			if !ok {
				continue
			}
			newDist := item.dist + w
			if existing, seen := dist[nb]; !seen || newDist < existing {
				if newDist < math.Inf(1) {
					dist[nb] = newDist
					heap.Push(pq, pqItem{id: nb, dist: newDist})
				}
			}
		}
	}

	for id, d := range dist {
		result[gr.Label(id)] = d
	}
	return result
}
