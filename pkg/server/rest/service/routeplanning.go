package service

import (
	"context"
	"errors"
	"log"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
	"github.com/MarioFengW/route-planning/pkg/evaluation"
	"github.com/MarioFengW/route-planning/pkg/geo"
	"github.com/MarioFengW/route-planning/pkg/kv"
	"github.com/MarioFengW/route-planning/pkg/osmparser"
	"github.com/MarioFengW/route-planning/pkg/server"
)

func snapOffsetMeters(v datastructure.Vertex, lat, lon float64) float64 {
	return geo.HaversineMeters(v.Lat, v.Lon, lat, lon)
}

type SearchEngine interface {
	Run(start, goal int64, strategy searchengine.Strategy, heuristic searchengine.Heuristic) (datastructure.SearchResult, error)
}

type RoadIndex interface {
	Nearest(query datastructure.Coordinate) (int64, float64, error)
	Size() int
}

type FacilityResolver interface {
	Register(inputs []emergency.FacilityInput) ([]emergency.Facility, error)
	Facilities() []emergency.Facility
	NearestFacility(query datastructure.Coordinate) (emergency.Facility, float64, error)
	Resolve(query datastructure.Coordinate, strategy searchengine.Strategy, heuristic searchengine.Heuristic) (emergency.FacilityRoute, error)
}

type FacilityStore interface {
	SaveFacilities(facilities []emergency.FacilityInput) error
	LoadFacilities() ([]emergency.FacilityInput, error)
}

type HospitalLocator interface {
	GetNearbyHospitals(lat, lon float64) ([]osmparser.HospitalPOI, error)
}

type SearchEvaluator interface {
	Run(perBucket int) (evaluation.SearchEvaluation, error)
}

type KDTreeEvaluator interface {
	Run(numSamples int, useRealLocations bool) (evaluation.KDTreeEvaluation, error)
}

type RoutePlanningService struct {
	graph      *datastructure.Graph
	roadIndex  RoadIndex
	engine     SearchEngine
	resolver   FacilityResolver
	store      FacilityStore
	hospitals  HospitalLocator
	searchEval SearchEvaluator
	kdtreeEval KDTreeEvaluator
}

func NewRoutePlanningService(graph *datastructure.Graph, roadIndex RoadIndex, engine SearchEngine,
	resolver FacilityResolver, store FacilityStore, hospitals HospitalLocator,
	searchEval SearchEvaluator, kdtreeEval KDTreeEvaluator) *RoutePlanningService {
	return &RoutePlanningService{
		graph:      graph,
		roadIndex:  roadIndex,
		engine:     engine,
		resolver:   resolver,
		store:      store,
		hospitals:  hospitals,
		searchEval: searchEval,
		kdtreeEval: kdtreeEval,
	}
}

// RestoreFacilities replays the persisted facility set into the resolver.
// Called once at startup, before the router starts serving.
func (uc *RoutePlanningService) RestoreFacilities(ctx context.Context) error {
	if uc.store == nil {
		return nil
	}
	saved, err := uc.store.LoadFacilities()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		return nil
	}
	if _, err := uc.resolver.Register(saved); err != nil {
		return err
	}
	log.Printf("restored %d facilities from key-value db", len(saved))
	return nil
}

// ShortestPath snaps both coordinates to road vertices and runs the requested
// strategy between them. The returned coordinates follow the vertex path.
func (uc *RoutePlanningService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	algorithm, heuristicName string) (datastructure.SearchResult, []datastructure.Coordinate, error) {
	strategy, heuristic, err := parseStrategyHeuristic(algorithm, heuristicName)
	if err != nil {
		return datastructure.SearchResult{}, nil, err
	}

	fromVertex, _, err := uc.roadIndex.Nearest(datastructure.NewCoordinate(srcLat, srcLon))
	if err != nil {
		return datastructure.SearchResult{}, nil, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! the location you entered is not covered on my map :(")
	}
	toVertex, _, err := uc.roadIndex.Nearest(datastructure.NewCoordinate(dstLat, dstLon))
	if err != nil {
		return datastructure.SearchResult{}, nil, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! the location you entered is not covered on my map :(")
	}

	result, err := uc.engine.Run(fromVertex, toVertex, strategy, heuristic)
	if err != nil {
		return datastructure.SearchResult{}, nil, mapSearchError(err)
	}
	if !result.Success {
		return datastructure.SearchResult{}, nil, server.NewErrorf(server.ErrNotFound,
			"no route between the given locations")
	}

	return result, uc.pathCoordinates(result.Path), nil
}

// SnapToVertex returns the nearest road vertex to a coordinate and the
// straight-line offset to it in meter.
func (uc *RoutePlanningService) SnapToVertex(ctx context.Context, lat, lon float64) (datastructure.Vertex, float64, error) {
	vertexID, _, err := uc.roadIndex.Nearest(datastructure.NewCoordinate(lat, lon))
	if err != nil {
		return datastructure.Vertex{}, 0, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! the location you entered is not covered on my map :(")
	}
	vertex, _ := uc.graph.GetVertex(vertexID)
	dist := snapOffsetMeters(vertex, lat, lon)
	return vertex, dist, nil
}

type GraphStats struct {
	Vertices     int `json:"vertices"`
	Edges        int `json:"edges"`
	IndexedNodes int `json:"indexed_nodes"`
}

func (uc *RoutePlanningService) Stats(ctx context.Context) GraphStats {
	return GraphStats{
		Vertices:     uc.graph.NumVertices(),
		Edges:        uc.graph.NumEdges(),
		IndexedNodes: uc.roadIndex.Size(),
	}
}

// RegisterFacilities replaces the registered facility set and persists the
// new set so it survives restarts.
func (uc *RoutePlanningService) RegisterFacilities(ctx context.Context, inputs []emergency.FacilityInput) ([]emergency.Facility, error) {
	registered, err := uc.resolver.Register(inputs)
	if err != nil {
		if errors.Is(err, emergency.ErrNoFacilities) {
			return nil, server.WrapErrorf(err, server.ErrInvalidArgument, "no facility could be registered")
		}
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	if uc.store != nil {
		if err := uc.store.SaveFacilities(inputs); err != nil {
			log.Printf("error persisting facilities: %v", err)
		}
	}
	return registered, nil
}

func (uc *RoutePlanningService) Facilities(ctx context.Context) []emergency.Facility {
	return uc.resolver.Facilities()
}

// NearbyHospitals lists the hospital POIs indexed around a coordinate,
// widening the cell search until something is found.
func (uc *RoutePlanningService) NearbyHospitals(ctx context.Context, lat, lon float64) ([]osmparser.HospitalPOI, error) {
	if uc.hospitals == nil {
		return nil, server.NewErrorf(server.ErrNotFound, "no hospitals indexed for this map")
	}
	pois, err := uc.hospitals.GetNearbyHospitals(lat, lon)
	if err != nil {
		if errors.Is(err, kv.ErrPOIsNotFound) {
			return nil, server.WrapErrorf(err, server.ErrNotFound, "no hospitals indexed for this map")
		}
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return pois, nil
}

func (uc *RoutePlanningService) NearestFacility(ctx context.Context, lat, lon float64) (emergency.Facility, float64, error) {
	facility, dist, err := uc.resolver.NearestFacility(datastructure.NewCoordinate(lat, lon))
	if err != nil {
		if errors.Is(err, emergency.ErrNoFacilities) {
			return emergency.Facility{}, 0, server.WrapErrorf(err, server.ErrNotFound, "no facilities registered yet")
		}
		return emergency.Facility{}, 0, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return facility, dist, nil
}

// EmergencyRoute routes from a coordinate to its nearest registered facility.
func (uc *RoutePlanningService) EmergencyRoute(ctx context.Context, lat, lon float64,
	algorithm, heuristicName string) (emergency.FacilityRoute, []datastructure.Coordinate, error) {
	strategy, heuristic, err := parseStrategyHeuristic(algorithm, heuristicName)
	if err != nil {
		return emergency.FacilityRoute{}, nil, err
	}

	route, err := uc.resolver.Resolve(datastructure.NewCoordinate(lat, lon), strategy, heuristic)
	if err != nil {
		switch {
		case errors.Is(err, emergency.ErrNoFacilities):
			return emergency.FacilityRoute{}, nil, server.WrapErrorf(err, server.ErrNotFound, "no facilities registered yet")
		case errors.Is(err, datastructure.ErrEmptyIndex):
			return emergency.FacilityRoute{}, nil, server.WrapErrorf(err, server.ErrNotFound,
				"sorry!! the location you entered is not covered on my map :(")
		default:
			return emergency.FacilityRoute{}, nil, mapSearchError(err)
		}
	}
	if !route.Route.Success {
		return emergency.FacilityRoute{}, nil, server.NewErrorf(server.ErrNotFound,
			"no route to the nearest facility")
	}

	return route, uc.pathCoordinates(route.Route.Path), nil
}

func (uc *RoutePlanningService) EvaluateSearch(ctx context.Context, pairsPerBucket int) (evaluation.SearchEvaluation, error) {
	eval, err := uc.searchEval.Run(pairsPerBucket)
	if err != nil {
		return evaluation.SearchEvaluation{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return eval, nil
}

func (uc *RoutePlanningService) EvaluateKDTree(ctx context.Context, numSamples int, useRealLocations bool) (evaluation.KDTreeEvaluation, error) {
	eval, err := uc.kdtreeEval.Run(numSamples, useRealLocations)
	if err != nil {
		return evaluation.KDTreeEvaluation{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
	return eval, nil
}

func (uc *RoutePlanningService) pathCoordinates(path []int64) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, len(path))
	for _, id := range path {
		v, ok := uc.graph.GetVertex(id)
		if !ok {
			continue
		}
		coords = append(coords, v.Coordinate())
	}
	return coords
}

func parseStrategyHeuristic(algorithm, heuristicName string) (searchengine.Strategy, searchengine.Heuristic, error) {
	if algorithm == "" {
		algorithm = "ucs"
	}
	strategy, err := searchengine.ParseStrategy(algorithm)
	if err != nil {
		return 0, 0, server.WrapErrorf(err, server.ErrInvalidArgument, "unknown algorithm %q", algorithm)
	}

	heuristic := searchengine.HeuristicNone
	if strategy == searchengine.AStar && heuristicName == "" {
		heuristicName = "haversine"
	}
	if heuristicName != "" {
		heuristic, err = searchengine.ParseHeuristic(heuristicName)
		if err != nil {
			return 0, 0, server.WrapErrorf(err, server.ErrInvalidArgument, "unknown heuristic %q", heuristicName)
		}
	}
	return strategy, heuristic, nil
}

func mapSearchError(err error) error {
	switch {
	case errors.Is(err, searchengine.ErrInvalidVertex):
		return server.WrapErrorf(err, server.ErrInvalidArgument, "vertex not in road network")
	case errors.Is(err, searchengine.ErrUnsupportedStrategy),
		errors.Is(err, searchengine.ErrUnsupportedHeuristic):
		return server.WrapErrorf(err, server.ErrInvalidArgument, "unsupported search configuration")
	default:
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
}
