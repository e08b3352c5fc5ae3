package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func squareGraph(t *testing.T) *Graph {
	t.Helper()
	vertices := []Vertex{
		NewVertex(1, 0, 0),
		NewVertex(2, 0, 1),
		NewVertex(3, 1, 1),
		NewVertex(4, 1, 0),
	}
	edges := []Edge{
		NewEdge(1, 2, 1), NewEdge(2, 1, 1),
		NewEdge(2, 3, 1), NewEdge(3, 2, 1),
		NewEdge(3, 4, 1), NewEdge(4, 3, 1),
		NewEdge(1, 4, 5), NewEdge(4, 1, 5),
	}
	g, err := NewGraph(vertices, edges)
	assert.NoError(t, err)
	return g
}

func TestNewGraph(t *testing.T) {
	g := squareGraph(t)
	assert.Equal(t, 4, g.NumVertices())
	assert.Equal(t, 8, g.NumEdges())
	assert.Equal(t, []int64{1, 2, 3, 4}, g.VertexIDs())

	w, ok := g.EdgeWeight(1, 4)
	assert.True(t, ok)
	assert.Equal(t, 5.0, w)

	_, ok = g.EdgeWeight(1, 3)
	assert.False(t, ok)
}

func TestNewGraphRejectsSelfLoop(t *testing.T) {
	_, err := NewGraph(
		[]Vertex{NewVertex(1, 0, 0)},
		[]Edge{NewEdge(1, 1, 1)},
	)
	assert.Error(t, err)
}

func TestNewGraphRejectsDanglingEdge(t *testing.T) {
	_, err := NewGraph(
		[]Vertex{NewVertex(1, 0, 0)},
		[]Edge{NewEdge(1, 99, 1)},
	)
	assert.Error(t, err)
}

func TestNewGraphRejectsNegativeWeight(t *testing.T) {
	_, err := NewGraph(
		[]Vertex{NewVertex(1, 0, 0), NewVertex(2, 0, 1)},
		[]Edge{NewEdge(1, 2, -3)},
	)
	assert.Error(t, err)
}

func TestNewGraphRejectsDuplicateVertex(t *testing.T) {
	_, err := NewGraph(
		[]Vertex{NewVertex(1, 0, 0), NewVertex(1, 2, 2)},
		nil,
	)
	assert.Error(t, err)
}

func TestParallelEdgesKeepMinWeight(t *testing.T) {
	g, err := NewGraph(
		[]Vertex{NewVertex(1, 0, 0), NewVertex(2, 0, 1)},
		[]Edge{NewEdge(1, 2, 7), NewEdge(1, 2, 3)},
	)
	assert.NoError(t, err)

	w, ok := g.EdgeWeight(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 3.0, w)
	assert.Len(t, g.GetOutEdges(1), 2)
}
