package evaluation

import (
	"log"
	"time"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/geo"

	"golang.org/x/exp/rand"
)

// KDTreeQueryRecord is one nearest-neighbor query measured against the
// exhaustive baseline.
type KDTreeQueryRecord struct {
	Query           datastructure.Coordinate `json:"query"`
	KDTreeVertex    int64                    `json:"kdtree_vertex"`
	ExhaustiveVertex int64                   `json:"exhaustive_vertex"`
	Agree           bool                     `json:"agree"`
	KDTreeSeconds   float64                  `json:"kdtree_time"`
	ExhaustiveSeconds float64                `json:"exhaustive_time"`
}

type KDTreeEvaluation struct {
	IndexedPoints       int                 `json:"indexed_points"`
	ConstructionSeconds float64             `json:"construction_time"`
	NumSamples          int                 `json:"num_samples"`
	UsedRealLocations   bool                `json:"used_real_locations"`
	Records             []KDTreeQueryRecord `json:"records"`
	KDTreeAvgSeconds    float64             `json:"kdtree_avg_time"`
	ExhaustiveAvgSeconds float64            `json:"exhaustive_avg_time"`
	Speedup             float64             `json:"speedup"`
	AgreementRate       float64             `json:"agreement_rate"`
}

// KDTreeEvaluator benchmarks indexed nearest-neighbor queries against the
// exhaustive scan over the same point set. One evaluator owns its rng and
// produces a fresh KDTreeEvaluation per run; nothing is shared between runs.
type KDTreeEvaluator struct {
	graph *datastructure.Graph
	rng   *rand.Rand
}

func NewKDTreeEvaluator(graph *datastructure.Graph, seed uint64) *KDTreeEvaluator {
	return &KDTreeEvaluator{
		graph: graph,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Run builds the index over all graph vertices, samples numSamples query
// coordinates (real vertex positions, or uniform points in the graph's
// bounding rectangle), and compares Nearest against ExhaustiveNearest per
// query.
func (e *KDTreeEvaluator) Run(numSamples int, useRealLocations bool) (KDTreeEvaluation, error) {
	ids := e.graph.VertexIDs()

	points := make([]datastructure.KDPoint, 0, len(ids))
	coords := make([]datastructure.Coordinate, 0, len(ids))
	for _, id := range ids {
		v, _ := e.graph.GetVertex(id)
		points = append(points, datastructure.NewKDPoint(v.ID, v.Lat, v.Lon))
		coords = append(coords, v.Coordinate())
	}

	index, err := datastructure.BuildKDTree(points)
	if err != nil {
		return KDTreeEvaluation{}, err
	}
	log.Printf("built kd-tree over %d vertices in %s", index.Size(), index.ConstructionTime())

	queries := make([]datastructure.Coordinate, 0, numSamples)
	if useRealLocations {
		for i := 0; i < numSamples; i++ {
			v, _ := e.graph.GetVertex(ids[e.rng.Intn(len(ids))])
			queries = append(queries, v.Coordinate())
		}
	} else {
		rect := geo.BoundingRect(coords)
		for i := 0; i < numSamples; i++ {
			queries = append(queries, geo.RandomPointInRect(rect, e.rng))
		}
	}

	eval := KDTreeEvaluation{
		IndexedPoints:       index.Size(),
		ConstructionSeconds: index.ConstructionTime().Seconds(),
		NumSamples:          len(queries),
		UsedRealLocations:   useRealLocations,
		Records:             make([]KDTreeQueryRecord, 0, len(queries)),
	}

	agree := 0
	var kdTotal, exTotal time.Duration
	for _, q := range queries {
		kdStart := time.Now()
		kdVertex, _, err := index.Nearest(q)
		kdElapsed := time.Since(kdStart)
		if err != nil {
			return KDTreeEvaluation{}, err
		}

		exStart := time.Now()
		exVertex, _, err := index.ExhaustiveNearest(q)
		exElapsed := time.Since(exStart)
		if err != nil {
			return KDTreeEvaluation{}, err
		}

		kdTotal += kdElapsed
		exTotal += exElapsed
		if kdVertex == exVertex {
			agree++
		}

		eval.Records = append(eval.Records, KDTreeQueryRecord{
			Query:            q,
			KDTreeVertex:     kdVertex,
			ExhaustiveVertex: exVertex,
			Agree:            kdVertex == exVertex,
			KDTreeSeconds:    kdElapsed.Seconds(),
			ExhaustiveSeconds: exElapsed.Seconds(),
		})
	}

	if len(queries) > 0 {
		eval.KDTreeAvgSeconds = kdTotal.Seconds() / float64(len(queries))
		eval.ExhaustiveAvgSeconds = exTotal.Seconds() / float64(len(queries))
		eval.AgreementRate = float64(agree) / float64(len(queries))
		if eval.KDTreeAvgSeconds > 0 {
			eval.Speedup = eval.ExhaustiveAvgSeconds / eval.KDTreeAvgSeconds
		}
	}

	return eval, nil
}
