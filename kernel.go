package langviz

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/griffincancode/langviz/cluster"
	"github.com/griffincancode/langviz/graph"
	"github.com/griffincancode/langviz/sparse"
)

// logger is the package-level structured logger every boundary operation
// writes a span to. Replace with SetLogger for a caller-supplied instance
// (e.g. a no-op logger in tests); defaults to zap's production config.
var logger = mustDefaultLogger()

func mustDefaultLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger overrides the package-level logger used by boundary
// operations.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// span logs entry/exit of a single boundary operation with a fresh
// correlation id, mirroring fulmenhq's correlation-middleware convention:
// every call gets a random (version 4) UUID threaded through the log fields.
func span(operation string, fields ...zap.Field) func() {
	id := uuid.New().String()
	start := time.Now()
	base := append([]zap.Field{zap.String("operation", operation), zap.String("correlation_id", id)}, fields...)
	logger.Debug("langviz: operation start", base...)
	return func() {
		logger.Debug("langviz: operation end",
			append(base, zap.Duration("duration", time.Since(start)))...)
	}
}

// edgesToSparse adapts the public SimilarityEdge shape to sparse.Edge.
func edgesToSparse(edges []SimilarityEdge) []sparse.Edge {
	out := make([]sparse.Edge, len(edges))
	for i, e := range edges {
		out[i] = sparse.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return out
}

func edgesToGraph(edges []SimilarityEdge) []graph.Edge {
	out := make([]graph.Edge, len(edges))
	for i, e := range edges {
		out[i] = graph.Edge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return out
}

// FindCognateSets builds the similarity graph from edges at threshold tau
// and returns its connected components as CognateSets.
func FindCognateSets(edges []SimilarityEdge, tau float64) []CognateSet {
	defer span("find_cognate_sets", zap.Int("edges", len(edges)), zap.Float64("tau", tau))()

	g := graph.FromEdges(edgesToGraph(edges), tau)
	components := g.ConnectedComponents()

	out := make([]CognateSet, len(components))
	for i, c := range components {
		out[i] = CognateSet{ID: c.ID, Members: c.Members}
	}
	return out
}

// DetectCommunities builds the similarity graph at threshold tau and
// returns greedy modularity-ascent communities at the given resolution.
func DetectCommunities(edges []SimilarityEdge, tau, gamma float64) [][]string {
	defer span("detect_communities", zap.Int("edges", len(edges)), zap.Float64("tau", tau), zap.Float64("gamma", gamma))()

	g := graph.FromEdges(edgesToGraph(edges), tau)
	return g.DetectCommunities(gamma)
}

// RankedNode is one entry of a sorted PageRank result.
type RankedNode struct {
	ID   string
	Rank float64
}

// ComputePageRank builds the similarity graph at threshold tau and
// returns PageRank centrality, sorted descending by rank. Negative
// iterations is a programming error (see ValidationError) and returns nil.
func ComputePageRank(edges []SimilarityEdge, tau, damping float64, iterations int) ([]RankedNode, error) {
	defer span("compute_pagerank", zap.Int("edges", len(edges)), zap.Float64("tau", tau), zap.Int("iterations", iterations))()

	if iterations < 0 {
		return nil, NewValidationError("iterations", "must be non-negative", iterations)
	}

	g := graph.FromEdges(edgesToGraph(edges), tau)
	ranked := g.PageRankSorted(damping, iterations)

	out := make([]RankedNode, len(ranked))
	for i, r := range ranked {
		out[i] = RankedNode{ID: r.ID, Rank: r.Rank}
	}
	return out, nil
}

// GraphStatsFor builds the similarity graph at threshold tau and returns
// summary statistics.
func GraphStatsFor(edges []SimilarityEdge, tau float64) GraphStats {
	defer span("graph_stats", zap.Int("edges", len(edges)), zap.Float64("tau", tau))()

	g := graph.FromEdges(edgesToGraph(edges), tau)
	s := g.ComputeStats()
	return GraphStats{
		NumNodes:      s.NumNodes,
		NumEdges:      s.NumEdges,
		AvgDegree:     s.AvgDegree,
		Density:       s.Density,
		NumComponents: s.NumComponents,
	}
}

// GraphToJSON builds the similarity graph at threshold tau and exports it
// as {nodes: [{id}], edges: [{source, target, weight}]}.
func GraphToJSON(edges []SimilarityEdge, tau float64) (string, error) {
	defer span("graph_to_json", zap.Int("edges", len(edges)), zap.Float64("tau", tau))()

	g := graph.FromEdges(edgesToGraph(edges), tau)
	return g.ToJSON()
}

// ShortestPathsFrom builds the similarity graph from edges at threshold
// tau and returns Dijkstra distances from source.
func ShortestPathsFrom(edges []SimilarityEdge, tau float64, source string) map[string]float64 {
	defer span("shortest_paths", zap.Int("edges", len(edges)), zap.Float64("tau", tau), zap.String("source", source))()

	g := graph.FromEdges(edgesToGraph(edges), tau)
	return g.ShortestPaths(source)
}

// ThresholdClusteringByID clusters string ids by similarity threshold
// using disjoint-set union over a lexicographically sorted id index.
func ThresholdClusteringByID(sims []SimilarityEdge, tau float64) [][]string {
	defer span("threshold_clustering", zap.Int("edges", len(sims)), zap.Float64("tau", tau))()

	triples := make([]cluster.StringTriple, len(sims))
	for i, s := range sims {
		triples[i] = cluster.StringTriple{A: s.Source, B: s.Target, Weight: s.Weight}
	}
	return cluster.ThresholdClusteringWithIDs(triples, tau)
}

// IndexedSimilarity is a (i, j, weight) observation over integer indices,
// the shape SilhouetteScore and WithinClusterVariance consume.
type IndexedSimilarity struct {
	I, J   int
	Weight float64
}

// SilhouetteScore computes the mean silhouette coefficient of clusters
// (integer-index membership lists) given pairwise similarities.
func SilhouetteScore(sims []IndexedSimilarity, clusters [][]int) float64 {
	defer span("silhouette_score", zap.Int("sims", len(sims)), zap.Int("clusters", len(clusters)))()

	triples := make([]cluster.Triple, len(sims))
	for i, s := range sims {
		triples[i] = cluster.Triple{I: s.I, J: s.J, Weight: s.Weight}
	}
	return cluster.SilhouetteScore(triples, clusters)
}

// WithinClusterVariance computes aggregate within-cluster similarity
// variance given pairwise similarities and integer-index clusters.
func WithinClusterVariance(sims []IndexedSimilarity, clusters [][]int) float64 {
	defer span("within_cluster_variance", zap.Int("sims", len(sims)), zap.Int("clusters", len(clusters)))()

	triples := make([]cluster.Triple, len(sims))
	for i, s := range sims {
		triples[i] = cluster.Triple{I: s.I, J: s.J, Weight: s.Weight}
	}
	return cluster.WithinClusterVariance(triples, clusters)
}

// SparseMatrixFromEdges builds a sparse similarity matrix from edges at
// threshold tau.
func SparseMatrixFromEdges(edges []SimilarityEdge, tau float64) *sparse.Matrix {
	defer span("sparse_matrix_from_edges", zap.Int("edges", len(edges)), zap.Float64("tau", tau))()

	return sparse.FromEdges(edgesToSparse(edges), tau)
}

// ThresholdFilterEdges keeps only edges with weight >= tau.
func ThresholdFilterEdges(edges []SimilarityEdge, tau float64) []SimilarityEdge {
	defer span("threshold_filter", zap.Int("edges", len(edges)), zap.Float64("tau", tau))()

	filtered := sparse.ThresholdFilter(edgesToSparse(edges), tau)
	out := make([]SimilarityEdge, len(filtered))
	for i, e := range filtered {
		out[i] = SimilarityEdge{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return out
}
