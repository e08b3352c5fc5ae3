package kv

import (
	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/osmparser"

	"github.com/kelindar/binary"
)

func encodePOIs(pois []osmparser.HospitalPOI) ([]byte, error) {
	return binary.Marshal(pois)
}

func decodePOIs(bb []byte) ([]osmparser.HospitalPOI, error) {
	var pois []osmparser.HospitalPOI
	err := binary.Unmarshal(bb, &pois)
	return pois, err
}

func encodeFacilities(facilities []emergency.FacilityInput) ([]byte, error) {
	return binary.Marshal(facilities)
}

func decodeFacilities(bb []byte) ([]emergency.FacilityInput, error) {
	var facilities []emergency.FacilityInput
	err := binary.Unmarshal(bb, &facilities)
	return facilities, err
}

func encodeVertices(vertices []datastructure.Vertex) ([]byte, error) {
	bb, err := binary.Marshal(vertices)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeVertices(bbCompressed []byte) ([]datastructure.Vertex, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var vertices []datastructure.Vertex
	err = binary.Unmarshal(bb, &vertices)
	return vertices, err
}

func encodeEdges(edges []datastructure.Edge) ([]byte, error) {
	bb, err := binary.Marshal(edges)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeEdges(bbCompressed []byte) ([]datastructure.Edge, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var edges []datastructure.Edge
	err = binary.Unmarshal(bb, &edges)
	return edges, err
}
