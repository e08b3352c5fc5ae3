package evaluation

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/engine/searchengine"
	"github.com/MarioFengW/route-planning/pkg/geo"

	"golang.org/x/exp/rand"
)

// DistanceBucket classifies a query pair by straight-line haversine distance.
type DistanceBucket string

const (
	BucketShort  DistanceBucket = "short"  // < 1km
	BucketMedium DistanceBucket = "medium" // 1km - 5km
	BucketLong   DistanceBucket = "long"   // 5km - 50km

	shortUpperMeter  = 1000.0
	mediumUpperMeter = 5000.0
	longUpperMeter   = 50000.0
)

// Buckets returns all buckets in ascending distance order.
func Buckets() []DistanceBucket {
	return []DistanceBucket{BucketShort, BucketMedium, BucketLong}
}

func bucketFor(meters float64) (DistanceBucket, bool) {
	switch {
	case meters < shortUpperMeter:
		return BucketShort, true
	case meters < mediumUpperMeter:
		return BucketMedium, true
	case meters < longUpperMeter:
		return BucketLong, true
	default:
		return "", false
	}
}

// bucketRange returns the [min, max) straight-line distance of a bucket.
func bucketRange(bucket DistanceBucket) (float64, float64) {
	switch bucket {
	case BucketShort:
		return 0, shortUpperMeter
	case BucketMedium:
		return shortUpperMeter, mediumUpperMeter
	default:
		return mediumUpperMeter, longUpperMeter
	}
}

// QueryPair is one sampled start/goal vertex pair.
type QueryPair struct {
	Start              int64          `json:"start"`
	Goal               int64          `json:"goal"`
	StraightLineMeters float64        `json:"straight_line_meters"`
	Bucket             DistanceBucket `json:"bucket"`
}

// EvaluationRecord is one strategy run over one query pair.
type EvaluationRecord struct {
	Pair      QueryPair `json:"pair"`
	Algorithm string    `json:"algorithm"`
	Success   bool      `json:"success"`
	Cost      float64   `json:"cost"`
	PathHops  int       `json:"path_hops"`
	Expanded  int       `json:"expanded"`
	Seconds   float64   `json:"time"`
}

// StrategyAggregate folds every record of one (bucket, strategy) cell.
type StrategyAggregate struct {
	Algorithm     string  `json:"algorithm"`
	Runs          int     `json:"runs"`
	Successes     int     `json:"successes"`
	SuccessRate   float64 `json:"success_rate"`
	AvgCost       float64 `json:"avg_cost"`
	AvgHops       float64 `json:"avg_hops"`
	AvgExpanded   float64 `json:"avg_expanded"`
	AvgSeconds    float64 `json:"avg_time"`
	MinSeconds    float64 `json:"min_time"`
	MaxSeconds    float64 `json:"max_time"`
	CompositeScore float64 `json:"composite_score"`
}

// BucketReport holds the aggregates and the winner of one distance bucket.
type BucketReport struct {
	Bucket      DistanceBucket      `json:"bucket"`
	Pairs       int                 `json:"pairs"`
	Aggregates  []StrategyAggregate `json:"aggregates"`
	Recommended string              `json:"recommended"`
}

type SearchEvaluation struct {
	PairsPerBucket int                `json:"pairs_per_bucket"`
	Records        []EvaluationRecord `json:"records"`
	PerBucket      []BucketReport     `json:"per_bucket"`
}

// SearchEvaluator runs every search strategy over sampled vertex pairs and
// recommends a strategy per distance bucket.
type SearchEvaluator struct {
	graph  *datastructure.Graph
	engine *searchengine.SearchEngine
	rng    *rand.Rand
}

func NewSearchEvaluator(graph *datastructure.Graph, engine *searchengine.SearchEngine, seed uint64) *SearchEvaluator {
	return &SearchEvaluator{
		graph:  graph,
		engine: engine,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// samplePairs draws perBucket distinct-vertex pairs for every distance
// bucket, rejection-sampling against that bucket's [min, max) range. No pair
// is drawn twice across the whole sample. Each bucket gives up after
// perBucket*100 attempts so a graph too small for the long bucket still
// terminates; an underfilled bucket is logged and keeps whatever it found.
func (e *SearchEvaluator) samplePairs(perBucket int) []QueryPair {
	ids := e.graph.VertexIDs()
	if len(ids) < 2 {
		return nil
	}

	pairs := make([]QueryPair, 0, perBucket*len(Buckets()))
	seen := make(map[[2]int64]struct{})
	for _, bucket := range Buckets() {
		minMeter, maxMeter := bucketRange(bucket)
		found := 0
		maxAttempts := perBucket * 100
		for attempt := 0; attempt < maxAttempts && found < perBucket; attempt++ {
			start := ids[e.rng.Intn(len(ids))]
			goal := ids[e.rng.Intn(len(ids))]
			if start == goal {
				continue
			}
			if _, dup := seen[[2]int64{start, goal}]; dup {
				continue
			}
			u, _ := e.graph.GetVertex(start)
			v, _ := e.graph.GetVertex(goal)
			meters := geo.HaversineMeters(u.Lat, u.Lon, v.Lat, v.Lon)
			if meters < minMeter || meters >= maxMeter {
				continue
			}
			seen[[2]int64{start, goal}] = struct{}{}
			pairs = append(pairs, QueryPair{
				Start:              start,
				Goal:               goal,
				StraightLineMeters: meters,
				Bucket:             bucket,
			})
			found++
		}
		if found < perBucket {
			log.Printf("sampled only %d/%d %s pairs", found, perBucket, bucket)
		}
	}
	return pairs
}

// Run executes every strategy on perBucket sampled pairs per distance bucket.
// A* runs with the haversine heuristic; uninformed strategies run without one.
func (e *SearchEvaluator) Run(perBucket int) (SearchEvaluation, error) {
	pairs := e.samplePairs(perBucket)
	eval := SearchEvaluation{
		PairsPerBucket: perBucket,
		Records:        make([]EvaluationRecord, 0, len(pairs)*len(searchengine.Strategies())),
	}

	for _, pair := range pairs {
		for _, strategy := range searchengine.Strategies() {
			heuristic := searchengine.HeuristicNone
			if strategy == searchengine.AStar {
				heuristic = searchengine.HeuristicHaversine
			}
			result, err := e.engine.Run(pair.Start, pair.Goal, strategy, heuristic)
			if err != nil {
				return SearchEvaluation{}, fmt.Errorf("run %s on pair %d->%d: %w",
					strategy, pair.Start, pair.Goal, err)
			}
			eval.Records = append(eval.Records, EvaluationRecord{
				Pair:      pair,
				Algorithm: strategy.String(),
				Success:   result.Success,
				Cost:      result.Cost,
				PathHops:  result.PathLength(),
				Expanded:  result.Expanded,
				Seconds:   result.Duration.Seconds(),
			})
		}
	}

	eval.PerBucket = buildBucketReports(eval.Records)
	return eval, nil
}

func buildBucketReports(records []EvaluationRecord) []BucketReport {
	reports := make([]BucketReport, 0, len(Buckets()))
	for _, bucket := range Buckets() {
		var bucketRecords []EvaluationRecord
		pairSeen := make(map[[2]int64]struct{})
		for _, r := range records {
			if r.Pair.Bucket != bucket {
				continue
			}
			bucketRecords = append(bucketRecords, r)
			pairSeen[[2]int64{r.Pair.Start, r.Pair.Goal}] = struct{}{}
		}
		report := BucketReport{
			Bucket:     bucket,
			Pairs:      len(pairSeen),
			Aggregates: aggregate(bucketRecords),
		}
		report.Recommended = recommend(report.Aggregates)
		reports = append(reports, report)
	}
	return reports
}

func aggregate(records []EvaluationRecord) []StrategyAggregate {
	byAlgo := make(map[string]*StrategyAggregate)
	order := make([]string, 0, len(searchengine.Strategies()))
	for _, s := range searchengine.Strategies() {
		order = append(order, s.String())
		byAlgo[s.String()] = &StrategyAggregate{Algorithm: s.String(), MinSeconds: math.Inf(1)}
	}

	sumCost := make(map[string]float64)
	sumHops := make(map[string]float64)
	sumExpanded := make(map[string]float64)
	sumSeconds := make(map[string]float64)
	for _, r := range records {
		agg, ok := byAlgo[r.Algorithm]
		if !ok {
			continue
		}
		agg.Runs++
		sumSeconds[r.Algorithm] += r.Seconds
		sumExpanded[r.Algorithm] += float64(r.Expanded)
		if r.Seconds < agg.MinSeconds {
			agg.MinSeconds = r.Seconds
		}
		if r.Seconds > agg.MaxSeconds {
			agg.MaxSeconds = r.Seconds
		}
		if r.Success {
			agg.Successes++
			sumCost[r.Algorithm] += r.Cost
			sumHops[r.Algorithm] += float64(r.PathHops)
		}
	}

	out := make([]StrategyAggregate, 0, len(order))
	for _, algo := range order {
		agg := byAlgo[algo]
		if agg.Runs == 0 {
			agg.MinSeconds = 0
			out = append(out, *agg)
			continue
		}
		agg.SuccessRate = float64(agg.Successes) / float64(agg.Runs)
		agg.AvgSeconds = sumSeconds[algo] / float64(agg.Runs)
		agg.AvgExpanded = sumExpanded[algo] / float64(agg.Runs)
		if agg.Successes > 0 {
			agg.AvgCost = sumCost[algo] / float64(agg.Successes)
			agg.AvgHops = sumHops[algo] / float64(agg.Successes)
		}
		out = append(out, *agg)
	}

	scoreAggregates(out)
	return out
}

// scoreAggregates assigns a lower-is-better composite score weighting route
// distance 0.5, run time 0.3, expansions 0.2, each min-max normalized over
// the strategies that succeeded at least once.
func scoreAggregates(aggs []StrategyAggregate) {
	var scored []int
	for i, a := range aggs {
		if a.Successes > 0 {
			scored = append(scored, i)
		} else {
			aggs[i].CompositeScore = math.Inf(1)
		}
	}
	if len(scored) == 0 {
		return
	}

	normalize := func(value func(StrategyAggregate) float64) map[int]float64 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, i := range scored {
			v := value(aggs[i])
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		norm := make(map[int]float64, len(scored))
		for _, i := range scored {
			if hi > lo {
				norm[i] = (value(aggs[i]) - lo) / (hi - lo)
			} else {
				norm[i] = 0
			}
		}
		return norm
	}

	costNorm := normalize(func(a StrategyAggregate) float64 { return a.AvgCost })
	timeNorm := normalize(func(a StrategyAggregate) float64 { return a.AvgSeconds })
	expNorm := normalize(func(a StrategyAggregate) float64 { return a.AvgExpanded })
	for _, i := range scored {
		aggs[i].CompositeScore = 0.5*costNorm[i] + 0.3*timeNorm[i] + 0.2*expNorm[i]
	}
}

// recommend picks the lowest composite score; on a tie the cost-optimal
// strategies (UCS, A*) win over the uninformed ones.
func recommend(aggs []StrategyAggregate) string {
	candidates := make([]StrategyAggregate, 0, len(aggs))
	for _, a := range aggs {
		if a.Successes > 0 {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].CompositeScore != candidates[j].CompositeScore {
			return candidates[i].CompositeScore < candidates[j].CompositeScore
		}
		si, _ := searchengine.ParseStrategy(candidates[i].Algorithm)
		sj, _ := searchengine.ParseStrategy(candidates[j].Algorithm)
		return si.CostOptimal() && !sj.CostOptimal()
	})
	return candidates[0].Algorithm
}
