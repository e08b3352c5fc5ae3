package kv

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/emergency"
	"github.com/MarioFengW/route-planning/pkg/osmparser"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"
)

var (
	ErrPOIsNotFound     = errors.New("hospital POIs not found")
	ErrSnapshotNotFound = errors.New("graph snapshot not found")
)

const (
	h3Resolution = 9

	facilitiesKey       = "facilities"
	snapshotVerticesKey = "snapshot/vertices"
	snapshotEdgesKey    = "snapshot/edges"
	snapshotPOIsKey     = "snapshot/hospitals"
	hospitalCellPrefix  = "hospital/"
)

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// BuildH3IndexedHospitals buckets hospital POIs by their h3 resolution-9 cell
// and writes one key per cell.
func (k *KVDB) BuildH3IndexedHospitals(ctx context.Context, pois []osmparser.HospitalPOI) error {
	log.Printf("creating & saving h3 indexed hospitals to key-value db...")
	buckets := make(map[string][]osmparser.HospitalPOI)
	for _, poi := range pois {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		cell := h3.LatLngToCell(h3.NewLatLng(poi.Lat, poi.Lon), h3Resolution)
		buckets[cell.String()] = append(buckets[cell.String()], poi)
	}

	batchSize := 1000
	batches := make([]batchData, 0, batchSize)
	for key, value := range buckets {
		batches = append(batches, batchData{key: key, value: value})
		if len(batches) == batchSize {
			if err := k.saveBatchPOIs(ctx, batches); err != nil {
				return err
			}
			batches = make([]batchData, 0, batchSize)
		}
	}
	if len(batches) > 0 {
		if err := k.saveBatchPOIs(ctx, batches); err != nil {
			return err
		}
	}

	log.Printf("creating & saving h3 indexed hospitals to key-value db done...")
	return nil
}

type batchData struct {
	key   string
	value []osmparser.HospitalPOI
}

func (k *KVDB) saveBatchPOIs(ctx context.Context, batchData []batchData) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, data := range batchData {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		val, err := encodePOIs(data.value)
		if err != nil {
			return err
		}
		if err := batch.Set([]byte(hospitalCellPrefix+data.key), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving hospital POIs: %v", err)
		return err
	}
	return nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *KVDB) set(key, val []byte) error {
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// GetNearbyHospitals returns the hospital POIs bucketed around a coordinate,
// widening the h3 grid disk until something is found.
func (k *KVDB) GetNearbyHospitals(lat, lon float64) ([]osmparser.HospitalPOI, error) {
	pois := []osmparser.HospitalPOI{}

	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	val, err := k.get([]byte(hospitalCellPrefix + cell.String()))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if err == nil {
		cellPOIs, err := decodePOIs(val)
		if err != nil {
			return nil, err
		}
		pois = append(pois, cellPOIs...)
	}

	for lev := 1; lev <= 10 && len(pois) == 0; lev++ {
		for _, currCell := range h3.GridDisk(cell, lev) {
			if currCell == cell {
				continue
			}
			val, err := k.get([]byte(hospitalCellPrefix + currCell.String()))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			cellPOIs, err := decodePOIs(val)
			if err != nil {
				return nil, err
			}
			pois = append(pois, cellPOIs...)
		}
	}

	if len(pois) == 0 {
		return nil, ErrPOIsNotFound
	}
	return pois, nil
}

// SaveFacilities persists the registered facility set so a restart can replay
// the registration.
func (k *KVDB) SaveFacilities(facilities []emergency.FacilityInput) error {
	val, err := encodeFacilities(facilities)
	if err != nil {
		return err
	}
	return k.set([]byte(facilitiesKey), val)
}

// LoadFacilities returns the persisted facility set, empty when none was
// saved.
func (k *KVDB) LoadFacilities() ([]emergency.FacilityInput, error) {
	val, err := k.get([]byte(facilitiesKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []emergency.FacilityInput{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeFacilities(val)
}

// SaveGraphSnapshot caches the parsed road network so later runs skip the pbf
// scan. Payloads are zstd compressed, edges dominate the size.
func (k *KVDB) SaveGraphSnapshot(vertices []datastructure.Vertex, edges []datastructure.Edge,
	pois []osmparser.HospitalPOI) error {
	log.Printf("saving graph snapshot (%d vertices, %d edges) to key-value db...", len(vertices), len(edges))

	vertexBytes, err := encodeVertices(vertices)
	if err != nil {
		return err
	}
	edgeBytes, err := encodeEdges(edges)
	if err != nil {
		return err
	}
	poiBytes, err := encodePOIs(pois)
	if err != nil {
		return err
	}

	if err := k.set([]byte(snapshotVerticesKey), vertexBytes); err != nil {
		return err
	}
	if err := k.set([]byte(snapshotEdgesKey), edgeBytes); err != nil {
		return err
	}
	return k.set([]byte(snapshotPOIsKey), poiBytes)
}

// LoadGraphSnapshot returns the cached road network, ErrSnapshotNotFound when
// no snapshot was saved yet.
func (k *KVDB) LoadGraphSnapshot() ([]datastructure.Vertex, []datastructure.Edge,
	[]osmparser.HospitalPOI, error) {
	vertexBytes, err := k.get([]byte(snapshotVerticesKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil, nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}
	edgeBytes, err := k.get([]byte(snapshotEdgesKey))
	if err != nil {
		return nil, nil, nil, err
	}
	poiBytes, err := k.get([]byte(snapshotPOIsKey))
	if err != nil {
		return nil, nil, nil, err
	}

	vertices, err := decodeVertices(vertexBytes)
	if err != nil {
		return nil, nil, nil, err
	}
	edges, err := decodeEdges(edgeBytes)
	if err != nil {
		return nil, nil, nil, err
	}
	pois, err := decodePOIs(poiBytes)
	if err != nil {
		return nil, nil, nil, err
	}
	return vertices, edges, pois, nil
}

func (k *KVDB) Close() {
	k.db.Close()
}
