package osmparser

import (
	"testing"

	"github.com/MarioFengW/route-planning/pkg/datastructure"

	"github.com/paulmach/osm"

	"github.com/stretchr/testify/assert"
)

func wayWithTags(tags map[string]string) *osm.Way {
	way := &osm.Way{}
	for k, v := range tags {
		way.Tags = append(way.Tags, osm.Tag{Key: k, Value: v})
	}
	return way
}

func TestAcceptOsmWay(t *testing.T) {
	assert.True(t, acceptOsmWay(wayWithTags(map[string]string{"highway": "residential"})))
	assert.True(t, acceptOsmWay(wayWithTags(map[string]string{"highway": "motorway"})))
	assert.True(t, acceptOsmWay(wayWithTags(map[string]string{"route": "road"})))
	assert.True(t, acceptOsmWay(wayWithTags(map[string]string{"junction": "roundabout"})))

	assert.False(t, acceptOsmWay(wayWithTags(map[string]string{"highway": "footway"})))
	assert.False(t, acceptOsmWay(wayWithTags(map[string]string{"highway": "cycleway"})))
	assert.False(t, acceptOsmWay(wayWithTags(map[string]string{"waterway": "river"})))
	assert.False(t, acceptOsmWay(wayWithTags(nil)))
}

func TestOnewayDirection(t *testing.T) {
	cases := []struct {
		name    string
		tags    map[string]string
		oneWay  bool
		forward bool
	}{
		{"no tags", nil, false, true},
		{"oneway yes", map[string]string{"oneway": "yes"}, true, true},
		{"oneway no", map[string]string{"oneway": "no"}, false, true},
		{"oneway reversed", map[string]string{"oneway": "-1"}, true, false},
		{"vehicle forward restricted", map[string]string{"vehicle:forward": "no"}, true, false},
		{"motor vehicle forward restricted", map[string]string{"motor_vehicle:forward": "private"}, true, false},
		{"vehicle backward restricted", map[string]string{"vehicle:backward": "no"}, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			oneWay, forward := onewayDirection(wayWithTags(c.tags))
			assert.Equal(t, c.oneWay, oneWay)
			assert.Equal(t, c.forward, forward)
		})
	}
}

func TestProcessWayEmitsBothDirections(t *testing.T) {
	p := NewOSMParser()
	p.acceptedNodeMap[1] = nodeCoord{lat: 0, lon: 0}
	p.acceptedNodeMap[2] = nodeCoord{lat: 0, lon: 0.001}
	p.acceptedNodeMap[3] = nodeCoord{lat: 0, lon: 0.002}

	way := wayWithTags(map[string]string{"highway": "residential"})
	way.Nodes = osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}}

	var edges []datastructure.Edge
	p.processWay(way, &edges)

	assert.Len(t, edges, 4)
	for _, e := range edges {
		assert.Greater(t, e.Weight, 0.0)
	}
}

func TestProcessWayOnewaySkipsBackward(t *testing.T) {
	p := NewOSMParser()
	p.acceptedNodeMap[1] = nodeCoord{lat: 0, lon: 0}
	p.acceptedNodeMap[2] = nodeCoord{lat: 0, lon: 0.001}

	way := wayWithTags(map[string]string{"highway": "primary", "oneway": "yes"})
	way.Nodes = osm.WayNodes{{ID: 1}, {ID: 2}}

	var edges []datastructure.Edge
	p.processWay(way, &edges)

	assert.Len(t, edges, 1)
	assert.Equal(t, int64(1), edges[0].From)
	assert.Equal(t, int64(2), edges[0].To)

	way = wayWithTags(map[string]string{"highway": "primary", "oneway": "-1"})
	way.Nodes = osm.WayNodes{{ID: 1}, {ID: 2}}
	edges = nil
	p.processWay(way, &edges)

	assert.Len(t, edges, 1)
	assert.Equal(t, int64(2), edges[0].From)
	assert.Equal(t, int64(1), edges[0].To)
}

func TestProcessWaySkipsRepeatedAndUnknownNodes(t *testing.T) {
	p := NewOSMParser()
	p.acceptedNodeMap[1] = nodeCoord{lat: 0, lon: 0}
	p.acceptedNodeMap[2] = nodeCoord{lat: 0, lon: 0.001}

	way := wayWithTags(map[string]string{"highway": "residential"})
	way.Nodes = osm.WayNodes{{ID: 1}, {ID: 1}, {ID: 2}, {ID: 99}}

	var edges []datastructure.Edge
	p.processWay(way, &edges)

	// only the 1->2 pair survives, in both directions
	assert.Len(t, edges, 2)
}

func TestHospitalWayCentroid(t *testing.T) {
	way := wayWithTags(map[string]string{"amenity": "hospital", "name": "RSUD Kota"})
	way.Nodes = osm.WayNodes{{ID: 10}, {ID: 11}, {ID: 12}}

	coords := map[int64]nodeCoord{
		10: {lat: -6.0, lon: 106.0},
		11: {lat: -6.002, lon: 106.002},
		12: {lat: -6.001, lon: 106.001},
	}

	poi, ok := hospitalWayCentroid(77, way, coords)
	assert.True(t, ok)
	assert.Equal(t, int64(77), poi.ID)
	assert.Equal(t, "RSUD Kota", poi.Name)
	assert.InDelta(t, -6.001, poi.Lat, 1e-9)
	assert.InDelta(t, 106.001, poi.Lon, 1e-9)

	_, ok = hospitalWayCentroid(78, way, map[int64]nodeCoord{})
	assert.False(t, ok)
}
