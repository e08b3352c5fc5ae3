package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
	"github.com/MarioFengW/route-planning/pkg/evaluation"
	"github.com/MarioFengW/route-planning/pkg/kv"
	"github.com/MarioFengW/route-planning/pkg/osmparser"

	"github.com/dgraph-io/badger/v4"
)

var (
	mapFile    = flag.String("f", "solo.osm.pbf", "openstreetmap file for the road network graph")
	dbPath     = flag.String("db", "./routeplanning-db", "badger key-value db directory")
	outDir     = flag.String("out", ".", "directory for the evaluation json reports")
	numPairs   = flag.Int("pairs", 30, "number of start/goal pairs sampled per distance bucket")
	numSamples = flag.Int("samples", 200, "number of nearest-neighbor queries per kd-tree evaluation run")
	realCoords = flag.Bool("real", false, "sample kd-tree queries at real vertex coordinates instead of random points")
	seed       = flag.Uint64("seed", 42, "rng seed for pair and query sampling")
)

func main() {
	flag.Parse()

	vertices, edges, err := loadRoadNetwork()
	if err != nil {
		log.Fatal(err)
	}

	graph, err := datastructure.NewGraph(vertices, edges)
	if err != nil {
		log.Fatal(err)
	}
	graph, err = graph.LargestComponent()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("road network loaded: %d vertices, %d edges", graph.NumVertices(), graph.NumEdges())

	engine := searchengine.NewSearchEngine(graph)

	searchEval, err := evaluation.NewSearchEvaluator(graph, engine, *seed).Run(*numPairs)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeReport(filepath.Join(*outDir, "search_evaluation.json"), searchEval); err != nil {
		log.Fatal(err)
	}
	for _, report := range searchEval.PerBucket {
		log.Printf("bucket %s: %d pairs, recommended strategy %q", report.Bucket, report.Pairs, report.Recommended)
	}

	kdEval, err := evaluation.NewKDTreeEvaluator(graph, *seed).Run(*numSamples, *realCoords)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeReport(filepath.Join(*outDir, "kdtree_evaluation.json"), kdEval); err != nil {
		log.Fatal(err)
	}
	log.Printf("kd-tree agreement rate %.4f, speedup %.2fx", kdEval.AgreementRate, kdEval.Speedup)
}

// loadRoadNetwork prefers the cached snapshot written by the engine; without
// one it parses the pbf file directly and leaves the cache alone.
func loadRoadNetwork() ([]datastructure.Vertex, []datastructure.Edge, error) {
	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true))
	if err == nil {
		kvDB := kv.NewKVDB(db)
		defer kvDB.Close()

		vertices, edges, _, err := kvDB.LoadGraphSnapshot()
		if err == nil {
			log.Printf("loaded graph snapshot from key-value db")
			return vertices, edges, nil
		}
		if !errors.Is(err, kv.ErrSnapshotNotFound) {
			return nil, nil, err
		}
	}

	log.Printf("reading osm file %s", *mapFile)
	parser := osmparser.NewOSMParser()
	vertices, edges, _, err := parser.Parse(*mapFile)
	return vertices, edges, err
}

func writeReport(path string, report interface{}) error {
	bb, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bb, 0644); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}
