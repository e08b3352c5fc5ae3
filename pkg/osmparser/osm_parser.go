package osmparser

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

type nodeCoord struct {
	lat float64
	lon float64
}

// HospitalPOI is an amenity=hospital node or way extracted from the map file.
// Way hospitals are reduced to the centroid of their member nodes.
type HospitalPOI struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type OsmParser struct {
	wayNodeSet      map[int64]struct{}
	hospitalWayNode map[int64]struct{}
	acceptedNodeMap map[int64]nodeCoord
}

func NewOSMParser() *OsmParser {
	return &OsmParser{
		wayNodeSet:      make(map[int64]struct{}),
		hospitalWayNode: make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]nodeCoord),
	}
}

var skipHighway = map[string]struct{}{
	"footway":                {},
	"construction":           {},
	"cycleway":               {},
	"path":                   {},
	"pedestrian":             {},
	"busway":                 {},
	"steps":                  {},
	"bridleway":              {},
	"corridor":               {},
	"street_lamp":            {},
	"bus_stop":               {},
	"crossing":               {},
	"elevator":               {},
	"emergency_bay":          {},
	"emergency_access_point": {},
	"give_way":               {},
	"platform":               {},
	"speed_camera":           {},
	"track":                  {},
	"bus_guideway":           {},
	"stop":                   {},
	"toll_gantry":            {},
	"traffic_mirror":         {},
	"traffic_signals":        {},
	"trailhead":              {},
}

// Parse reads a .osm.pbf file in two sequential scans. The first scan marks
// every node referenced by an accepted road way (and by hospital ways); the
// second collects node coordinates and hospital nodes, then turns accepted
// ways into directed edges weighted by haversine distance in meter. Relies on
// pbf block ordering: nodes precede ways.
func (p *OsmParser) Parse(mapFile string) ([]datastructure.Vertex, []datastructure.Edge, []HospitalPOI, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	countWays := 0
	hospitalWays := make(map[int64]*osm.Way)
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeWay:
			way := o.(*osm.Way)
			if len(way.Nodes) < 2 {
				continue
			}

			if way.Tags.Find("amenity") == "hospital" {
				hospitalWays[int64(way.ID)] = way
				for _, wayNode := range way.Nodes {
					p.hospitalWayNode[int64(wayNode.ID)] = struct{}{}
				}
				continue
			}
			if !acceptOsmWay(way) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				log.Printf("reading openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			for _, wayNode := range way.Nodes {
				p.wayNodeSet[int64(wayNode.ID)] = struct{}{}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, nil, nil, err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	// must not be parallel
	defer scanner.Close()

	edges := []datastructure.Edge{}
	hospitals := []HospitalPOI{}
	hospitalWayCoords := make(map[int64]nodeCoord)
	countNodes := 0
	countWays = 0
	for scanner.Scan() {
		o := scanner.Object()

		switch o.ObjectID().Type() {
		case osm.TypeNode:
			if (countNodes+1)%50000 == 0 {
				log.Printf("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			node := o.(*osm.Node)

			if _, ok := p.wayNodeSet[int64(node.ID)]; ok {
				p.acceptedNodeMap[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
			}
			if _, ok := p.hospitalWayNode[int64(node.ID)]; ok {
				hospitalWayCoords[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
			}

			if node.Tags.Find("amenity") == "hospital" {
				hospitals = append(hospitals, HospitalPOI{
					ID:   int64(node.ID),
					Name: node.Tags.Find("name"),
					Lat:  node.Lat,
					Lon:  node.Lon,
				})
			}
		case osm.TypeWay:
			way := o.(*osm.Way)
			if len(way.Nodes) < 2 || !acceptOsmWay(way) {
				continue
			}
			if way.Tags.Find("amenity") == "hospital" {
				continue
			}
			if (countWays+1)%50000 == 0 {
				log.Printf("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++

			p.processWay(way, &edges)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}

	for wayID, way := range hospitalWays {
		poi, ok := hospitalWayCentroid(wayID, way, hospitalWayCoords)
		if ok {
			hospitals = append(hospitals, poi)
		}
	}

	vertices := make([]datastructure.Vertex, 0, len(p.acceptedNodeMap))
	for nodeID, coord := range p.acceptedNodeMap {
		vertices = append(vertices, datastructure.NewVertex(nodeID, coord.lat, coord.lon))
	}

	log.Printf("total vertices: %d", len(vertices))
	log.Printf("total edges: %d", len(edges))
	log.Printf("total hospitals: %d", len(hospitals))

	return vertices, edges, hospitals, nil
}

// processWay emits one directed edge per consecutive node pair, both
// directions unless the way is oneway.
func (p *OsmParser) processWay(way *osm.Way, edges *[]datastructure.Edge) {
	oneWay, forward := onewayDirection(way)

	for i := 1; i < len(way.Nodes); i++ {
		fromID := int64(way.Nodes[i-1].ID)
		toID := int64(way.Nodes[i].ID)
		if fromID == toID {
			continue
		}
		from, okFrom := p.acceptedNodeMap[fromID]
		to, okTo := p.acceptedNodeMap[toID]
		if !okFrom || !okTo {
			continue
		}
		weight := geo.HaversineMeters(from.lat, from.lon, to.lat, to.lon)

		if !oneWay {
			*edges = append(*edges,
				datastructure.NewEdge(fromID, toID, weight),
				datastructure.NewEdge(toID, fromID, weight))
		} else if forward {
			*edges = append(*edges, datastructure.NewEdge(fromID, toID, weight))
		} else {
			*edges = append(*edges, datastructure.NewEdge(toID, fromID, weight))
		}
	}
}

func isRestricted(value string) bool {
	switch value {
	case "no", "restricted", "military", "emergency", "private", "permit":
		return true
	}
	return false
}

func onewayDirection(way *osm.Way) (oneWay bool, forward bool) {
	vehicleForward := isRestricted(way.Tags.Find("vehicle:forward")) ||
		isRestricted(way.Tags.Find("motor_vehicle:forward"))
	vehicleBackward := isRestricted(way.Tags.Find("vehicle:backward")) ||
		isRestricted(way.Tags.Find("motor_vehicle:backward"))

	onewayTag := way.Tags.Find("oneway")
	if onewayTag == "" && !vehicleForward && !vehicleBackward {
		return false, true
	}
	if onewayTag == "no" {
		return false, true
	}
	if onewayTag == "-1" || vehicleForward {
		return true, false
	}
	return true, true
}

func hospitalWayCentroid(wayID int64, way *osm.Way, coords map[int64]nodeCoord) (HospitalPOI, bool) {
	sumLat, sumLon := 0.0, 0.0
	count := 0
	for _, wayNode := range way.Nodes {
		coord, ok := coords[int64(wayNode.ID)]
		if !ok {
			continue
		}
		sumLat += coord.lat
		sumLon += coord.lon
		count++
	}
	if count == 0 {
		return HospitalPOI{}, false
	}
	return HospitalPOI{
		ID:   wayID,
		Name: way.Tags.Find("name"),
		Lat:  sumLat / float64(count),
		Lon:  sumLon / float64(count),
	}, true
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway != "" {
		if _, ok := skipHighway[highway]; !ok {
			return true
		}
		return false
	}
	if way.Tags.Find("route") == "road" {
		return true
	}
	return way.Tags.Find("junction") != ""
}
