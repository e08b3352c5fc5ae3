package service

import (
	"context"
	"testing"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
	"github.com/MarioFengW/route-planning/pkg/evaluation"
	"github.com/MarioFengW/route-planning/pkg/geo"
	"github.com/MarioFengW/route-planning/pkg/kv"
	"github.com/MarioFengW/route-planning/pkg/osmparser"
	"github.com/MarioFengW/route-planning/pkg/server"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid around Surakarta, roughly 550m between neighbors
func buildServiceGraph(t *testing.T, n int) *datastructure.Graph {
	t.Helper()
	const (
		baseLat = -7.56
		baseLon = 110.82
		step    = 0.005
	)

	var vertices []datastructure.Vertex
	var edges []datastructure.Edge
	id := func(row, col int) int64 { return int64(row*n + col) }
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			vertices = append(vertices, datastructure.NewVertex(
				id(row, col), baseLat+float64(row)*step, baseLon+float64(col)*step))
		}
	}
	addEdge := func(a, b int64) {
		u := vertices[a]
		v := vertices[b]
		w := geo.HaversineMeters(u.Lat, u.Lon, v.Lat, v.Lon)
		edges = append(edges, datastructure.NewEdge(a, b, w), datastructure.NewEdge(b, a, w))
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if col+1 < n {
				addEdge(id(row, col), id(row, col+1))
			}
			if row+1 < n {
				addEdge(id(row, col), id(row+1, col))
			}
		}
	}

	graph, err := datastructure.NewGraph(vertices, edges)
	require.NoError(t, err)
	return graph
}

func newTestService(t *testing.T) (*RoutePlanningService, *datastructure.Graph, *kv.KVDB) {
	t.Helper()
	graph := buildServiceGraph(t, 6)

	ids := graph.VertexIDs()
	points := make([]datastructure.KDPoint, 0, len(ids))
	for _, id := range ids {
		v, _ := graph.GetVertex(id)
		points = append(points, datastructure.NewKDPoint(v.ID, v.Lat, v.Lon))
	}
	index, err := datastructure.BuildKDTree(points)
	require.NoError(t, err)

	engine := searchengine.NewSearchEngine(graph)
	resolver := emergency.NewResolver(graph, index, engine)

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	kvdb := kv.NewKVDB(db)
	t.Cleanup(kvdb.Close)

	svc := NewRoutePlanningService(graph, index, engine, resolver, kvdb, kvdb,
		evaluation.NewSearchEvaluator(graph, engine, 11),
		evaluation.NewKDTreeEvaluator(graph, 11))
	return svc, graph, kvdb
}

func TestShortestPathService(t *testing.T) {
	svc, graph, _ := newTestService(t)

	src, _ := graph.GetVertex(0)
	dst, _ := graph.GetVertex(35)

	result, route, err := svc.ShortestPath(context.Background(), src.Lat, src.Lon,
		dst.Lat, dst.Lon, "ucs", "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "ucs", result.Algorithm)
	assert.Greater(t, result.Cost, 0.0)
	assert.Len(t, route, result.PathLength())
	assert.Equal(t, int64(0), result.Path[0])
	assert.Equal(t, int64(35), result.Path[len(result.Path)-1])
}

func TestShortestPathDefaultsToUCS(t *testing.T) {
	svc, graph, _ := newTestService(t)

	src, _ := graph.GetVertex(0)
	dst, _ := graph.GetVertex(7)
	result, _, err := svc.ShortestPath(context.Background(), src.Lat, src.Lon,
		dst.Lat, dst.Lon, "", "")
	require.NoError(t, err)
	assert.Equal(t, "ucs", result.Algorithm)
}

func TestShortestPathAStarDefaultsToHaversine(t *testing.T) {
	svc, graph, _ := newTestService(t)

	src, _ := graph.GetVertex(0)
	dst, _ := graph.GetVertex(35)
	astar, _, err := svc.ShortestPath(context.Background(), src.Lat, src.Lon,
		dst.Lat, dst.Lon, "astar", "")
	require.NoError(t, err)

	ucs, _, err := svc.ShortestPath(context.Background(), src.Lat, src.Lon,
		dst.Lat, dst.Lon, "ucs", "")
	require.NoError(t, err)
	assert.InDelta(t, ucs.Cost, astar.Cost, 1e-6)
}

func TestShortestPathUnknownAlgorithm(t *testing.T) {
	svc, graph, _ := newTestService(t)

	src, _ := graph.GetVertex(0)
	_, _, err := svc.ShortestPath(context.Background(), src.Lat, src.Lon,
		src.Lat+0.01, src.Lon, "dijkstra", "")
	require.Error(t, err)

	var serverErr *server.Error
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, server.ErrInvalidArgument, serverErr.Code())
}

func TestSnapToVertexService(t *testing.T) {
	svc, graph, _ := newTestService(t)

	v, _ := graph.GetVertex(14)
	snapped, dist, err := svc.SnapToVertex(context.Background(), v.Lat+0.0001, v.Lon-0.0001)
	require.NoError(t, err)
	assert.Equal(t, v.ID, snapped.ID)
	assert.Less(t, dist, 100.0)
}

func TestStatsService(t *testing.T) {
	svc, graph, _ := newTestService(t)

	stats := svc.Stats(context.Background())
	assert.Equal(t, graph.NumVertices(), stats.Vertices)
	assert.Equal(t, graph.NumEdges(), stats.Edges)
	assert.Equal(t, graph.NumVertices(), stats.IndexedNodes)
}

func TestFacilityLifecycleService(t *testing.T) {
	svc, graph, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.NearestFacility(ctx, -7.56, 110.82)
	var serverErr *server.Error
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, server.ErrNotFound, serverErr.Code())

	corner, _ := graph.GetVertex(0)
	center, _ := graph.GetVertex(21)
	registered, err := svc.RegisterFacilities(ctx, []emergency.FacilityInput{
		{Name: "RS Pusat", Lat: center.Lat, Lon: center.Lon},
		{Name: "RS Pojok", Lat: corner.Lat, Lon: corner.Lon},
	})
	require.NoError(t, err)
	require.Len(t, registered, 2)

	listed := svc.Facilities(ctx)
	assert.Len(t, listed, 2)

	facility, _, err := svc.NearestFacility(ctx, center.Lat+0.001, center.Lon)
	require.NoError(t, err)
	assert.Equal(t, "RS Pusat", facility.Name)

	route, coords, err := svc.EmergencyRoute(ctx, corner.Lat+0.001, corner.Lon+0.001, "astar", "haversine")
	require.NoError(t, err)
	assert.Equal(t, "RS Pojok", route.Facility.Name)
	assert.True(t, route.Route.Success)
	assert.Greater(t, route.TravelTimeMinutes, 0.0)
	assert.Len(t, coords, route.Route.PathLength())
}

func TestRestoreFacilitiesService(t *testing.T) {
	svc, graph, _ := newTestService(t)
	ctx := context.Background()

	center, _ := graph.GetVertex(21)
	_, err := svc.RegisterFacilities(ctx, []emergency.FacilityInput{
		{Name: "RS Pusat", Lat: center.Lat, Lon: center.Lon},
	})
	require.NoError(t, err)

	// a fresh resolver over the same store sees the persisted set
	ids := graph.VertexIDs()
	points := make([]datastructure.KDPoint, 0, len(ids))
	for _, id := range ids {
		v, _ := graph.GetVertex(id)
		points = append(points, datastructure.NewKDPoint(v.ID, v.Lat, v.Lon))
	}
	index, err := datastructure.BuildKDTree(points)
	require.NoError(t, err)
	engine := searchengine.NewSearchEngine(graph)
	fresh := NewRoutePlanningService(graph, index, engine,
		emergency.NewResolver(graph, index, engine), svc.store, svc.hospitals,
		evaluation.NewSearchEvaluator(graph, engine, 1),
		evaluation.NewKDTreeEvaluator(graph, 1))

	require.NoError(t, fresh.RestoreFacilities(ctx))
	assert.Len(t, fresh.Facilities(ctx), 1)
}

func TestEvaluationServices(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	searchEval, err := svc.EvaluateSearch(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, searchEval.PairsPerBucket)
	// the 6x6 grid spans under 5km, so short and medium fill their quota
	// and long stays empty
	assert.Equal(t, 4, searchEval.PerBucket[0].Pairs)
	assert.Equal(t, 4, searchEval.PerBucket[1].Pairs)
	assert.Equal(t, 0, searchEval.PerBucket[2].Pairs)

	kdEval, err := svc.EvaluateKDTree(ctx, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 10, kdEval.NumSamples)
	assert.Equal(t, 1.0, kdEval.AgreementRate)
}

func TestNearbyHospitalsService(t *testing.T) {
	svc, graph, kvdb := newTestService(t)
	ctx := context.Background()

	_, err := svc.NearbyHospitals(ctx, -7.56, 110.82)
	var serverErr *server.Error
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, server.ErrNotFound, serverErr.Code())

	center, _ := graph.GetVertex(21)
	require.NoError(t, kvdb.BuildH3IndexedHospitals(ctx, []osmparser.HospitalPOI{
		{ID: 1, Name: "RSUD Dr. Moewardi", Lat: center.Lat, Lon: center.Lon},
	}))

	hospitals, err := svc.NearbyHospitals(ctx, center.Lat+0.001, center.Lon)
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
	assert.Equal(t, "RSUD Dr. Moewardi", hospitals[0].Name)
}
