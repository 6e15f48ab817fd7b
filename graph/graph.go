// Package graph implements the undirected weighted cognate-network layer:
// construction from thresholded similarity edges, connected components,
// greedy modularity-ascent community detection, PageRank, Dijkstra
// shortest paths, JSON export, and summary statistics.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Edge is a (source, target, weight) similarity triple, the raw input
// unit every graph-layer operation builds from.
type Edge struct {
	Source string
	Target string
	Weight float64
}

// Graph is an undirected, weighted, string-labeled graph backed by a
// gonum simple.WeightedUndirectedGraph. Insertion of an edge creates any
// absent endpoint. At most one edge is stored per pair: adding an edge
// between an already-connected pair replaces the stored weight, so
// multi-edges are not kept.
type Graph struct {
	g      *simple.WeightedUndirectedGraph
	labels map[int64]string
	ids    map[string]int64
	next   int64
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		g:      simple.NewWeightedUndirectedGraph(0, 0),
		labels: make(map[int64]string),
		ids:    make(map[string]int64),
	}
}

// FromEdges builds a graph from similarity edges, keeping only those at or
// above threshold.
func FromEdges(edges []Edge, threshold float64) *Graph {
	g := New()
	for _, e := range edges {
		if e.Weight >= threshold {
			g.AddEdge(e.Source, e.Target, e.Weight)
		}
	}
	return g
}

// AddEdge inserts an edge, creating either endpoint if it is new.
func (gr *Graph) AddEdge(source, target string, weight float64) {
	s := gr.nodeFor(source)
	t := gr.nodeFor(target)
	gr.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(s), T: simple.Node(t), W: weight})
}

func (gr *Graph) nodeFor(label string) int64 {
	if id, ok := gr.ids[label]; ok {
		return id
	}
	id := gr.next
	gr.next++
	gr.ids[label] = id
	gr.labels[id] = label
	gr.g.AddNode(simple.Node(id))
	return id
}

// NodeIDs returns every node's internal id, in ascending (insertion) order.
func (gr *Graph) NodeIDs() []int64 {
	ids := make([]int64, 0, len(gr.labels))
	for id := range gr.labels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Label returns the string label for an internal node id.
func (gr *Graph) Label(id int64) string {
	return gr.labels[id]
}

// ID returns the internal node id for a label, if present.
func (gr *Graph) ID(label string) (int64, bool) {
	id, ok := gr.ids[label]
	return id, ok
}

// NumNodes returns the node count.
func (gr *Graph) NumNodes() int {
	return len(gr.labels)
}

// NumEdges returns the edge count.
func (gr *Graph) NumEdges() int {
	return gr.g.Edges().Len()
}

// Neighbors returns the node ids adjacent to id, in the iteration order
// gonum's adjacency storage produces.
func (gr *Graph) Neighbors(id int64) []int64 {
	it := gr.g.From(id)
	var out []int64
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}

// Degree returns the number of edges incident to id.
func (gr *Graph) Degree(id int64) int {
	return gr.g.From(id).Len()
}

// Weight returns the weight of the edge between x and y, if one exists.
func (gr *Graph) Weight(x, y int64) (float64, bool) {
	return gr.g.Weight(x, y)
}

// Stats summarizes structural properties: avg_degree = 2|E|/|V|,
// density = 2|E|/(|V|(|V|-1)), both 0 when there are no nodes (or a
// single node, for density).
type Stats struct {
	NumNodes      int
	NumEdges      int
	AvgDegree     float64
	Density       float64
	NumComponents int
}

// ComputeStats returns Stats for the current graph.
func (gr *Graph) ComputeStats() Stats {
	n := gr.NumNodes()
	m := gr.NumEdges()

	var avgDegree, density float64
	if n > 0 {
		avgDegree = 2 * float64(m) / float64(n)
	}
	if n > 1 {
		density = 2 * float64(m) / float64(n*(n-1))
	}

	return Stats{
		NumNodes:      n,
		NumEdges:      m,
		AvgDegree:     avgDegree,
		Density:       density,
		NumComponents: len(gr.ConnectedComponents()),
	}
}
