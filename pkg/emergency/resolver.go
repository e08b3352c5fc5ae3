package emergency

import (
	"errors"
	"fmt"
	"log"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
)

var ErrNoFacilities = errors.New("no facilities registered")

const (
	// how many nearest road vertices to probe when snapping a facility;
	// lets every facility claim a vertex of its own even when several sit
	// on the same block
	snapProbeK = 20

	// assumed urban travel speed for the arrival estimate
	travelSpeedKMH = 50.0
)

type Facility struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	SnapVertex   int64   `json:"nearest_vertex"`
	SnapDistance float64 `json:"distance_to_vertex"` // degree space
}

type FacilityInput struct {
	Name string
	Lat  float64
	Lon  float64
}

// FacilityRoute is the full answer to "which facility and how do I get
// there": the chosen facility, both snapped endpoints, and the route between
// them.
type FacilityRoute struct {
	Facility          Facility                   `json:"facility"`
	StartVertex       int64                      `json:"start_vertex"`
	FacilityVertex    int64                      `json:"facility_vertex"`
	Route             datastructure.SearchResult `json:"route"`
	TravelTimeMinutes float64                    `json:"travel_time_minutes"`
}

// Resolver assigns any query point to its nearest registered facility and
// routes to it. Nearest-facility selection is a direct distance comparison
// against a facility-scoped spatial index; no partition polygons are computed
// or consulted.
type Resolver struct {
	graph     *datastructure.Graph
	roadIndex *datastructure.KDTree
	engine    *searchengine.SearchEngine

	facilities    []Facility
	facilityIndex *datastructure.KDTree
}

func NewResolver(graph *datastructure.Graph, roadIndex *datastructure.KDTree, engine *searchengine.SearchEngine) *Resolver {
	return &Resolver{
		graph:     graph,
		roadIndex: roadIndex,
		engine:    engine,
	}
}

// Register replaces the facility set wholesale. Each facility is snapped to
// its nearest unclaimed road vertex, probing up to snapProbeK neighbors so no
// two facilities share a vertex; facilities with no free vertex nearby are
// skipped. The facility index is fully rebuilt before the old set is
// replaced, so readers never observe a half-built index.
func (r *Resolver) Register(inputs []FacilityInput) ([]Facility, error) {
	assigned := make(map[int64]struct{}, len(inputs))
	registered := make([]Facility, 0, len(inputs))

	for i, in := range inputs {
		neighbors, err := r.roadIndex.KNearest(datastructure.NewCoordinate(in.Lat, in.Lon), snapProbeK)
		if err != nil {
			return nil, fmt.Errorf("snapping facility %q: %w", in.Name, err)
		}

		snapped := false
		for _, nb := range neighbors {
			if _, taken := assigned[nb.ID]; taken {
				continue
			}
			assigned[nb.ID] = struct{}{}

			name := in.Name
			if name == "" {
				name = fmt.Sprintf("Hospital %d", i+1)
			}
			registered = append(registered, Facility{
				ID:           int64(len(registered)),
				Name:         name,
				Lat:          in.Lat,
				Lon:          in.Lon,
				SnapVertex:   nb.ID,
				SnapDistance: nb.Distance,
			})
			snapped = true
			break
		}
		if !snapped {
			log.Printf("no free road vertex near facility %q (%f, %f), skipping", in.Name, in.Lat, in.Lon)
		}
	}

	if len(registered) == 0 {
		return nil, ErrNoFacilities
	}

	points := make([]datastructure.KDPoint, 0, len(registered))
	for _, f := range registered {
		points = append(points, datastructure.NewKDPoint(f.ID, f.Lat, f.Lon))
	}
	index, err := datastructure.BuildKDTree(points)
	if err != nil {
		return nil, err
	}

	r.facilities = registered
	r.facilityIndex = index

	log.Printf("registered %d facilities", len(registered))
	return r.Facilities(), nil
}

// Facilities returns a copy of the registered set.
func (r *Resolver) Facilities() []Facility {
	out := make([]Facility, len(r.facilities))
	copy(out, r.facilities)
	return out
}

// NearestFacility picks the registered facility closest to the query by
// direct coordinate distance.
func (r *Resolver) NearestFacility(query datastructure.Coordinate) (Facility, float64, error) {
	if len(r.facilities) == 0 {
		return Facility{}, 0, ErrNoFacilities
	}

	id, dist, err := r.facilityIndex.Nearest(query)
	if err != nil {
		return Facility{}, 0, err
	}
	return r.facilities[id], dist, nil
}

// Resolve snaps the query point to the road network, picks the nearest
// registered facility, and routes between the two snapped vertices with the
// chosen strategy.
func (r *Resolver) Resolve(query datastructure.Coordinate, strategy searchengine.Strategy, heuristic searchengine.Heuristic) (FacilityRoute, error) {
	facility, _, err := r.NearestFacility(query)
	if err != nil {
		return FacilityRoute{}, err
	}

	startVertex, _, err := r.roadIndex.Nearest(query)
	if err != nil {
		return FacilityRoute{}, err
	}

	route, err := r.engine.Run(startVertex, facility.SnapVertex, strategy, heuristic)
	if err != nil {
		return FacilityRoute{}, err
	}

	travelMinutes := 0.0
	if route.Success {
		travelMinutes = route.Cost / 1000.0 / travelSpeedKMH * 60.0
	}

	return FacilityRoute{
		Facility:          facility,
		StartVertex:       startVertex,
		FacilityVertex:    facility.SnapVertex,
		Route:             route,
		TravelTimeMinutes: travelMinutes,
	}, nil
}
