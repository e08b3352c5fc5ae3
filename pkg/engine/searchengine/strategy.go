package searchengine

import (
	"errors"
	"fmt"

	"github.com/MarioFengW/route-planning/pkg/geo"
)

var (
	ErrInvalidVertex        = errors.New("vertex not in graph")
	ErrUnsupportedStrategy  = errors.New("unsupported search strategy")
	ErrUnsupportedHeuristic = errors.New("unsupported heuristic")
)

type Strategy int

const (
	BFS Strategy = iota
	DFS
	UCS
	IDDFS
	AStar
)

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case DFS:
		return "dfs"
	case UCS:
		return "ucs"
	case IDDFS:
		return "iddfs"
	case AStar:
		return "astar"
	default:
		return "unknown"
	}
}

// CostOptimal reports whether the strategy guarantees a minimum-cost path on
// weighted graphs (assuming an admissible heuristic for astar).
func (s Strategy) CostOptimal() bool {
	return s == UCS || s == AStar
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	case "ucs":
		return UCS, nil
	case "iddfs":
		return IDDFS, nil
	case "astar":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
	}
}

func Strategies() []Strategy {
	return []Strategy{BFS, DFS, UCS, IDDFS, AStar}
}

type Heuristic int

const (
	HeuristicNone Heuristic = iota
	HeuristicHaversine
	HeuristicEuclidean
	HeuristicManhattan
)

func (h Heuristic) String() string {
	switch h {
	case HeuristicHaversine:
		return "haversine"
	case HeuristicEuclidean:
		return "euclidean"
	case HeuristicManhattan:
		return "manhattan"
	default:
		return "none"
	}
}

func ParseHeuristic(name string) (Heuristic, error) {
	switch name {
	case "haversine":
		return HeuristicHaversine, nil
	case "euclidean":
		return HeuristicEuclidean, nil
	case "manhattan":
		return HeuristicManhattan, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedHeuristic, name)
	}
}

// estimate is the remaining-cost lower bound in meter, matching edge-weight
// units. Haversine never overestimates road distance; euclidean/manhattan are
// degree-space approximations scaled by a fixed meters-per-degree factor.
func (h Heuristic) estimate(fromLat, fromLon, toLat, toLon float64) float64 {
	switch h {
	case HeuristicHaversine:
		return geo.HaversineMeters(fromLat, fromLon, toLat, toLon)
	case HeuristicEuclidean:
		return geo.EuclideanMeters(fromLat, fromLon, toLat, toLon)
	case HeuristicManhattan:
		return geo.ManhattanMeters(fromLat, fromLon, toLat, toLon)
	default:
		return 0
	}
}
