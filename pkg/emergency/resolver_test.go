package emergency

import (
	"testing"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

// 5x5 grid road network spanning (0,0)..(12,12), plus road index and engine
func newTestResolver(t *testing.T) (*Resolver, *datastructure.Graph) {
	t.Helper()

	n := 5
	step := 3.0
	id := func(row, col int) int64 { return int64(row*n + col) }

	vertices := make([]datastructure.Vertex, 0, n*n)
	edges := make([]datastructure.Edge, 0, 4*n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			vertices = append(vertices, datastructure.NewVertex(id(row, col), float64(row)*step, float64(col)*step))
			if col+1 < n {
				edges = append(edges,
					datastructure.NewEdge(id(row, col), id(row, col+1), 1000),
					datastructure.NewEdge(id(row, col+1), id(row, col), 1000))
			}
			if row+1 < n {
				edges = append(edges,
					datastructure.NewEdge(id(row, col), id(row+1, col), 1000),
					datastructure.NewEdge(id(row+1, col), id(row, col), 1000))
			}
		}
	}
	g, err := datastructure.NewGraph(vertices, edges)
	assert.NoError(t, err)

	points := make([]datastructure.KDPoint, 0, len(vertices))
	for _, v := range vertices {
		points = append(points, datastructure.NewKDPoint(v.ID, v.Lat, v.Lon))
	}
	roadIndex, err := datastructure.BuildKDTree(points)
	assert.NoError(t, err)

	return NewResolver(g, roadIndex, searchengine.NewSearchEngine(g)), g
}

func TestResolveBeforeRegister(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(datastructure.NewCoordinate(1, 1), searchengine.UCS, searchengine.HeuristicNone)
	assert.ErrorIs(t, err, ErrNoFacilities)

	_, _, err = r.NearestFacility(datastructure.NewCoordinate(1, 1))
	assert.ErrorIs(t, err, ErrNoFacilities)
}

func TestRegisterEmpty(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Register(nil)
	assert.ErrorIs(t, err, ErrNoFacilities)
}

func TestResolvePicksNearestFacility(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Register([]FacilityInput{
		{Name: "South General", Lat: 0, Lon: 0},
		{Name: "North General", Lat: 10, Lon: 10},
	})
	assert.NoError(t, err)

	route, err := r.Resolve(datastructure.NewCoordinate(1, 1), searchengine.UCS, searchengine.HeuristicNone)
	assert.NoError(t, err)
	assert.Equal(t, "South General", route.Facility.Name)
	assert.True(t, route.Route.Success)
	assert.Greater(t, route.TravelTimeMinutes, 0.0)
}

func TestResolveNeverProvablySuboptimal(t *testing.T) {
	r, g := newTestResolver(t)
	engine := searchengine.NewSearchEngine(g)

	facilities, err := r.Register([]FacilityInput{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "B", Lat: 12, Lon: 0},
		{Name: "C", Lat: 0, Lon: 12},
		{Name: "D", Lat: 12, Lon: 12},
	})
	assert.NoError(t, err)

	rng := rand.New(rand.NewSource(29))
	for i := 0; i < 20; i++ {
		query := datastructure.NewCoordinate(rng.Float64()*12, rng.Float64()*12)

		route, err := r.Resolve(query, searchengine.UCS, searchengine.HeuristicNone)
		assert.NoError(t, err)
		assert.True(t, route.Route.Success)

		// brute force: route to every facility and keep the cheapest
		bestCost := route.Route.Cost
		for _, f := range facilities {
			alt, err := engine.Run(route.StartVertex, f.SnapVertex, searchengine.UCS, searchengine.HeuristicNone)
			assert.NoError(t, err)
			if alt.Success {
				assert.GreaterOrEqual(t, alt.Cost+1e-9, 0.0)
				if alt.Cost < bestCost {
					bestCost = alt.Cost
				}
			}
		}
		assert.InDelta(t, bestCost, route.Route.Cost, 1e-9, "query (%f, %f)", query.Lat, query.Lon)
	}
}

func TestRegisterAssignsUniqueVertices(t *testing.T) {
	r, _ := newTestResolver(t)

	// three facilities on the exact same corner must claim distinct vertices
	facilities, err := r.Register([]FacilityInput{
		{Name: "A", Lat: 0, Lon: 0},
		{Name: "B", Lat: 0, Lon: 0},
		{Name: "C", Lat: 0, Lon: 0},
	})
	assert.NoError(t, err)
	assert.Len(t, facilities, 3)

	seen := make(map[int64]struct{})
	for _, f := range facilities {
		_, dup := seen[f.SnapVertex]
		assert.False(t, dup, "vertex %d assigned twice", f.SnapVertex)
		seen[f.SnapVertex] = struct{}{}
	}
}

func TestRegisterReplacesWholesale(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Register([]FacilityInput{{Name: "Old", Lat: 0, Lon: 0}})
	assert.NoError(t, err)

	facilities, err := r.Register([]FacilityInput{{Name: "New", Lat: 12, Lon: 12}})
	assert.NoError(t, err)
	assert.Len(t, facilities, 1)
	assert.Equal(t, "New", facilities[0].Name)

	f, _, err := r.NearestFacility(datastructure.NewCoordinate(0, 0))
	assert.NoError(t, err)
	assert.Equal(t, "New", f.Name)
}

func TestRegisterDefaultName(t *testing.T) {
	r, _ := newTestResolver(t)

	facilities, err := r.Register([]FacilityInput{{Lat: 3, Lon: 3}})
	assert.NoError(t, err)
	assert.Equal(t, "Hospital 1", facilities[0].Name)
}
