package searchengine

import (
	"testing"

	"github.com/MarioFengW/route-planning/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// newGridGraph builds an n x n street grid with randomized positive edge
// weights, bidirectional streets.
func newGridGraph(t *testing.T, n int, rng *rand.Rand) *datastructure.Graph {
	t.Helper()

	id := func(row, col int) int64 { return int64(row*n + col) }

	vertices := make([]datastructure.Vertex, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			vertices = append(vertices, datastructure.NewVertex(id(row, col), float64(row)*0.001, float64(col)*0.001))
		}
	}

	edges := make([]datastructure.Edge, 0, 4*n*n)
	addStreet := func(a, b int64) {
		w := 100 + rng.Float64()*100
		edges = append(edges, datastructure.NewEdge(a, b, w), datastructure.NewEdge(b, a, w))
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if col+1 < n {
				addStreet(id(row, col), id(row, col+1))
			}
			if row+1 < n {
				addStreet(id(row, col), id(row+1, col))
			}
		}
	}

	g, err := datastructure.NewGraph(vertices, edges)
	assert.NoError(t, err)
	return g
}

func TestGridUCSAndAStarAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	g := newGridGraph(t, 8, rng)
	e := NewSearchEngine(g)

	for i := 0; i < 30; i++ {
		start := int64(rng.Intn(64))
		goal := int64(rng.Intn(64))

		ucs, err := e.Run(start, goal, UCS, HeuristicNone)
		assert.NoError(t, err)
		astar, err := e.Run(start, goal, AStar, HeuristicHaversine)
		assert.NoError(t, err)

		assert.Equal(t, ucs.Success, astar.Success)
		assert.InDelta(t, ucs.Cost, astar.Cost, 1e-9, "pair %d -> %d", start, goal)
	}
}

func TestGridIDDFSHopCountEqualsBFS(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	g := newGridGraph(t, 6, rng)
	e := NewSearchEngine(g)

	for i := 0; i < 20; i++ {
		start := int64(rng.Intn(36))
		goal := int64(rng.Intn(36))

		bfs, err := e.Run(start, goal, BFS, HeuristicNone)
		assert.NoError(t, err)
		iddfs, err := e.Run(start, goal, IDDFS, HeuristicNone)
		assert.NoError(t, err)

		assert.True(t, bfs.Success)
		assert.True(t, iddfs.Success)
		assert.Equal(t, len(bfs.Path), len(iddfs.Path), "pair %d -> %d", start, goal)
	}
}

func TestGridEveryStrategyReturnsValidWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	g := newGridGraph(t, 5, rng)
	e := NewSearchEngine(g)

	for _, s := range Strategies() {
		result, err := e.Run(0, 24, s, heuristicFor(s))
		assert.NoError(t, err)
		assert.True(t, result.Success, s.String())

		// every consecutive pair in the path must be a real edge, and the
		// reported cost must match the walked weights
		walked := 0.0
		for i := 1; i < len(result.Path); i++ {
			w, ok := g.EdgeWeight(result.Path[i-1], result.Path[i])
			assert.True(t, ok, "%s: missing edge %d->%d", s, result.Path[i-1], result.Path[i])
			walked += w
		}
		assert.InDelta(t, result.Cost, walked, 1e-9, s.String())
	}
}

func BenchmarkGridUCS(b *testing.B) {
	rng := rand.New(rand.NewSource(23))
	g, _ := func() (*datastructure.Graph, error) {
		n := 20
		id := func(row, col int) int64 { return int64(row*n + col) }
		vertices := make([]datastructure.Vertex, 0, n*n)
		edges := make([]datastructure.Edge, 0, 4*n*n)
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				vertices = append(vertices, datastructure.NewVertex(id(row, col), float64(row)*0.001, float64(col)*0.001))
				if col+1 < n {
					w := 100 + rng.Float64()*100
					edges = append(edges, datastructure.NewEdge(id(row, col), id(row, col+1), w), datastructure.NewEdge(id(row, col+1), id(row, col), w))
				}
				if row+1 < n {
					w := 100 + rng.Float64()*100
					edges = append(edges, datastructure.NewEdge(id(row, col), id(row+1, col), w), datastructure.NewEdge(id(row+1, col), id(row, col), w))
				}
			}
		}
		return datastructure.NewGraph(vertices, edges)
	}()
	e := NewSearchEngine(g)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Run(0, int64(20*20-1), UCS, HeuristicNone)
	}
}
