package cluster

import "github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"

// Finder splits a surface into clusters.
type Finder struct {
	Connectivity Connectivity
}

// Find returns the connected components of s's filled cells using
// four-way adjacency.
func Find(s grid.Surface) []*Cluster {
	return Finder{}.Find(s)
}

// Find returns the connected components of s's filled cells, ordered by their
// first cell in row-major order. The clusters are disjoint and cover every
// filled cell exactly once.
func (f Finder) Find(s grid.Surface) []*Cluster {
	positions := grid.FilledPositions(s)
	if len(positions) == 0 {
		return nil
	}
	filled := indexOf(positions)
	visited := make(map[grid.Position]bool, len(positions))

	var clusters []*Cluster
	for _, seed := range positions {
		if visited[seed] {
			continue
		}
		clusters = append(clusters, New(flood(seed, filled, f.Connectivity, visited), f.Connectivity))
	}
	return clusters
}
