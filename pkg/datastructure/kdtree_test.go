package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func gridPoints() []KDPoint {
	return []KDPoint{
		NewKDPoint(1, 0, 0),
		NewKDPoint(2, 0, 1),
		NewKDPoint(3, 1, 0),
		NewKDPoint(4, 1, 1),
		NewKDPoint(5, 5, 5),
	}
}

func TestBuildKDTreeEmpty(t *testing.T) {
	_, err := BuildKDTree(nil)
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestNearestCorner(t *testing.T) {
	tree, err := BuildKDTree(gridPoints())
	assert.NoError(t, err)

	id, dist, err := tree.Nearest(NewCoordinate(0.1, 0.1))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.InDelta(t, 0.1414, dist, 0.001)
}

func TestNearestSinglePoint(t *testing.T) {
	tree, err := BuildKDTree([]KDPoint{NewKDPoint(42, -7.55, 110.77)})
	assert.NoError(t, err)

	id, _, err := tree.Nearest(NewCoordinate(90, 180))
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestNearestMatchesExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	points := make([]KDPoint, 0, 500)
	for i := 0; i < 500; i++ {
		lat := -8.0 + rng.Float64()*0.5
		lon := 110.0 + rng.Float64()*0.5
		points = append(points, NewKDPoint(int64(i), lat, lon))
	}

	tree, err := BuildKDTree(points)
	assert.NoError(t, err)

	for i := 0; i < 200; i++ {
		query := NewCoordinate(-8.0+rng.Float64()*0.5, 110.0+rng.Float64()*0.5)

		gotID, gotDist, err := tree.Nearest(query)
		assert.NoError(t, err)

		wantID, wantDist, err := tree.ExhaustiveNearest(query)
		assert.NoError(t, err)

		assert.Equal(t, wantID, gotID)
		assert.InDelta(t, wantDist, gotDist, 1e-12)
	}
}

func TestKNearestOrdered(t *testing.T) {
	tree, err := BuildKDTree(gridPoints())
	assert.NoError(t, err)

	neighbors, err := tree.KNearest(NewCoordinate(0.1, 0.1), 3)
	assert.NoError(t, err)
	assert.Len(t, neighbors, 3)

	assert.Equal(t, int64(1), neighbors[0].ID)
	for i := 1; i < len(neighbors); i++ {
		assert.LessOrEqual(t, neighbors[i-1].Distance, neighbors[i].Distance)
	}
}

func TestKNearestMoreThanIndexed(t *testing.T) {
	tree, err := BuildKDTree(gridPoints())
	assert.NoError(t, err)

	neighbors, err := tree.KNearest(NewCoordinate(0, 0), 20)
	assert.NoError(t, err)
	assert.Len(t, neighbors, 5)
}

func TestBuildDeterministic(t *testing.T) {
	points := gridPoints()

	shuffled := make([]KDPoint, len(points))
	copy(shuffled, points)
	shuffled[0], shuffled[4] = shuffled[4], shuffled[0]
	shuffled[1], shuffled[3] = shuffled[3], shuffled[1]

	a, err := BuildKDTree(points)
	assert.NoError(t, err)
	b, err := BuildKDTree(shuffled)
	assert.NoError(t, err)

	queries := []Coordinate{
		NewCoordinate(0.4, 0.4), NewCoordinate(0.9, 0.1),
		NewCoordinate(3, 3), NewCoordinate(0.5, 0.5),
	}
	for _, q := range queries {
		idA, _, _ := a.Nearest(q)
		idB, _, _ := b.Nearest(q)
		assert.Equal(t, idA, idB)
	}
}

func BenchmarkKDTreeNearest(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	points := make([]KDPoint, 0, 10000)
	for i := 0; i < 10000; i++ {
		points = append(points, NewKDPoint(int64(i), rng.Float64(), rng.Float64()))
	}
	tree, _ := BuildKDTree(points)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Nearest(NewCoordinate(rng.Float64(), rng.Float64()))
	}
}
