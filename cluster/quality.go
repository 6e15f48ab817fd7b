package cluster

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type pairKey struct{ i, j int }

func simLookup(similarities []Triple) map[pairKey]float64 {
	m := make(map[pairKey]float64, len(similarities))
	for _, t := range similarities {
		lo, hi := t.I, t.J
		if lo > hi {
			lo, hi = hi, lo
		}
		m[pairKey{lo, hi}] = t.Weight
	}
	return m
}

func lookupSim(m map[pairKey]float64, a, b int) (float64, bool) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	v, ok := m[pairKey{lo, hi}]
	return v, ok
}

// SilhouetteScore computes the mean silhouette coefficient across every
// point assigned to a (non-empty) cluster. a(p) is the mean distance
// (1 - similarity) to other members of p's cluster; b(p) is the minimum
// mean distance to any other cluster's members. Missing similarity
// entries are skipped, not imputed. Singleton clusters score 0. Empty
// input scores 0.
func SilhouetteScore(similarities []Triple, clusters [][]int) float64 {
	simMap := simLookup(similarities)

	assignment := make(map[int]int)
	for clusterID, members := range clusters {
		for _, p := range members {
			assignment[p] = clusterID
		}
	}

	points := make([]int, 0, len(assignment))
	for p := range assignment {
		points = append(points, p)
	}
	if len(points) == 0 {
		return 0.0
	}

	scores := parallelMapFloat(len(points), func(idx int) float64 {
		p := points[idx]
		clusterID := assignment[p]
		cluster := clusters[clusterID]
		if len(cluster) == 1 {
			return 0.0
		}

		var intraSum float64
		var intraCount int
		for _, other := range cluster {
			if other == p {
				continue
			}
			if sim, ok := lookupSim(simMap, p, other); ok {
				intraSum += 1.0 - sim
				intraCount++
			}
		}
		a := 0.0
		if intraCount > 0 {
			a = intraSum / float64(intraCount)
		}

		minInter := math.Inf(1)
		for otherClusterID, otherCluster := range clusters {
			if otherClusterID == clusterID || len(otherCluster) == 0 {
				continue
			}
			var interSum float64
			var interCount int
			for _, other := range otherCluster {
				if sim, ok := lookupSim(simMap, p, other); ok {
					interSum += 1.0 - sim
					interCount++
				}
			}
			if interCount > 0 {
				meanInter := interSum / float64(interCount)
				if meanInter < minInter {
					minInter = meanInter
				}
			}
		}
		b := minInter

		switch {
		case a < b:
			return 1.0 - (a / b)
		case a > b:
			return (b / a) - 1.0
		default:
			return 0.0
		}
	})

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// WithinClusterVariance aggregates sum((sim - mean)^2) across every
// cluster of size >= 2, using only stored similarity entries, divided by
// the total number of pairs that contributed a value.
func WithinClusterVariance(similarities []Triple, clusters [][]int) float64 {
	simMap := simLookup(similarities)

	var totalVariance float64
	var totalPairs int

	for _, cluster := range clusters {
		if len(cluster) < 2 {
			continue
		}

		var sum float64
		var count int
		for i := 0; i < len(cluster); i++ {
			for j := i + 1; j < len(cluster); j++ {
				if sim, ok := lookupSim(simMap, cluster[i], cluster[j]); ok {
					sum += sim
					count++
				}
			}
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)

		var varianceSum float64
		for i := 0; i < len(cluster); i++ {
			for j := i + 1; j < len(cluster); j++ {
				if sim, ok := lookupSim(simMap, cluster[i], cluster[j]); ok {
					d := sim - mean
					varianceSum += d * d
				}
			}
		}
		totalVariance += varianceSum
		totalPairs += count
	}

	if totalPairs == 0 {
		return 0.0
	}
	return totalVariance / float64(totalPairs)
}

// parallelMapFloat evaluates fn(i) for i in [0,n) across a bounded worker
// pool, each goroutine owning a disjoint output slot.
func parallelMapFloat(n int, fn func(i int) float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			out[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
