package datastructure

import (
	"fmt"
	"sort"
)

type Vertex struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewVertex(id int64, lat, lon float64) Vertex {
	return Vertex{ID: id, Lat: lat, Lon: lon}
}

func (v Vertex) Coordinate() Coordinate {
	return NewCoordinate(v.Lat, v.Lon)
}

type Edge struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Weight float64 `json:"weight"` // meter
}

func NewEdge(from, to int64, weight float64) Edge {
	return Edge{From: from, To: to, Weight: weight}
}

// Graph is a directed weighted road network. Vertices and adjacency are
// frozen at construction, queries never mutate it, so a single Graph is safe
// to share across sequential searches.
type Graph struct {
	vertices  map[int64]Vertex
	adjacency map[int64][]Edge
	sortedIDs []int64
	numEdges  int
}

// NewGraph validates and freezes a road network snapshot. Vertex ids must be
// unique, edges must join existing vertices, self-loops and negative weights
// are rejected. Parallel edges between the same pair are kept as-is.
func NewGraph(vertices []Vertex, edges []Edge) (*Graph, error) {
	g := &Graph{
		vertices:  make(map[int64]Vertex, len(vertices)),
		adjacency: make(map[int64][]Edge, len(vertices)),
	}

	for _, v := range vertices {
		if _, ok := g.vertices[v.ID]; ok {
			return nil, fmt.Errorf("duplicate vertex id %d", v.ID)
		}
		g.vertices[v.ID] = v
	}

	for _, e := range edges {
		if e.From == e.To {
			return nil, fmt.Errorf("self-loop on vertex %d", e.From)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("negative weight %f on edge %d->%d", e.Weight, e.From, e.To)
		}
		if _, ok := g.vertices[e.From]; !ok {
			return nil, fmt.Errorf("edge source vertex %d not in graph", e.From)
		}
		if _, ok := g.vertices[e.To]; !ok {
			return nil, fmt.Errorf("edge target vertex %d not in graph", e.To)
		}
		g.adjacency[e.From] = append(g.adjacency[e.From], e)
		g.numEdges++
	}

	g.sortedIDs = make([]int64, 0, len(g.vertices))
	for id := range g.vertices {
		g.sortedIDs = append(g.sortedIDs, id)
	}
	sort.Slice(g.sortedIDs, func(i, j int) bool { return g.sortedIDs[i] < g.sortedIDs[j] })

	return g, nil
}

func (g *Graph) HasVertex(id int64) bool {
	_, ok := g.vertices[id]
	return ok
}

func (g *Graph) GetVertex(id int64) (Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// GetOutEdges returns the outgoing edges of a vertex in insertion order.
// Callers must not mutate the returned slice.
func (g *Graph) GetOutEdges(id int64) []Edge {
	return g.adjacency[id]
}

// EdgeWeight returns the minimum weight among parallel edges from u to v.
func (g *Graph) EdgeWeight(u, v int64) (float64, bool) {
	best := 0.0
	found := false
	for _, e := range g.adjacency[u] {
		if e.To != v {
			continue
		}
		if !found || e.Weight < best {
			best = e.Weight
			found = true
		}
	}
	return best, found
}

// VertexIDs returns all vertex ids in ascending order. The slice is a copy.
func (g *Graph) VertexIDs() []int64 {
	ids := make([]int64, len(g.sortedIDs))
	copy(ids, g.sortedIDs)
	return ids
}

func (g *Graph) NumVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumEdges() int {
	return g.numEdges
}
