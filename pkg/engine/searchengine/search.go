package searchengine

import (
	"fmt"
	"time"

	"github.com/MarioFengW/route-planning/pkg/datastructure"
	"github.com/MarioFengW/route-planning/pkg/util"
)

const (
	// hard cap on iddfs bound growth, the fail-safe against unbounded
	// iteration when the goal sits in another component
	maxDepthBound = 512
)

// SearchEngine runs all five strategies through one frontier-driven traversal
// over a shared read-only graph. Safe for sequential reuse across queries.
type SearchEngine struct {
	graph       *datastructure.Graph
	maxExpanded int // 0 means unlimited
}

func NewSearchEngine(graph *datastructure.Graph) *SearchEngine {
	return &SearchEngine{graph: graph}
}

// SetExpansionLimit bounds how many states one query may expand. Exceeding it
// ends the search as unsuccessful rather than erroring, mirroring frontier
// exhaustion.
func (e *SearchEngine) SetExpansionLimit(n int) {
	e.maxExpanded = n
}

// Run finds a path from start to goal under the selected strategy. heuristic
// is consulted only by astar and must not be HeuristicNone there. Unknown
// vertex ids fail before any search; an unreachable goal is a normal
// Success=false result, never an error.
func (e *SearchEngine) Run(start, goal int64, strategy Strategy, heuristic Heuristic) (datastructure.SearchResult, error) {
	if !e.graph.HasVertex(start) {
		return datastructure.SearchResult{}, fmt.Errorf("%w: start %d", ErrInvalidVertex, start)
	}
	if !e.graph.HasVertex(goal) {
		return datastructure.SearchResult{}, fmt.Errorf("%w: goal %d", ErrInvalidVertex, goal)
	}
	if strategy == AStar && heuristic == HeuristicNone {
		return datastructure.SearchResult{}, fmt.Errorf("%w: astar requires a heuristic", ErrUnsupportedHeuristic)
	}

	began := time.Now()

	if start == goal {
		return datastructure.SearchResult{
			Algorithm: strategy.String(),
			Path:      []int64{start},
			Cost:      0,
			Expanded:  0,
			Duration:  time.Since(began),
			Success:   true,
		}, nil
	}

	var result datastructure.SearchResult
	if strategy == IDDFS {
		result = e.runIterativeDeepening(start, goal)
	} else {
		result = e.runFrontier(start, goal, strategy, heuristic)
	}

	result.Algorithm = strategy.String()
	result.Duration = time.Since(began)
	return result, nil
}

// runFrontier is the shared expand-until-goal loop. The strategy only decides
// the frontier discipline and the priority of a pushed node; the visited-set
// handling and stable tie-break live here, in exactly one place.
func (e *SearchEngine) runFrontier(start, goal int64, strategy Strategy, heuristic Heuristic) datastructure.SearchResult {
	var front frontier
	switch strategy {
	case BFS:
		front = &fifoFrontier{}
	case DFS:
		front = &lifoFrontier{}
	default:
		front = newPriorityFrontier()
	}

	goalVertex, _ := e.graph.GetVertex(goal)

	visited := make(map[int64]struct{})
	expanded := 0

	front.push(&searchNode{vertex: start}, e.priority(0, start, goalVertex, strategy, heuristic))

	for {
		current, ok := front.pop()
		if !ok {
			return datastructure.SearchResult{Path: []int64{}, Expanded: expanded}
		}
		if _, seen := visited[current.vertex]; seen {
			continue
		}
		visited[current.vertex] = struct{}{}

		if current.vertex == goal {
			return datastructure.SearchResult{
				Path:     reconstructPath(current),
				Cost:     current.g,
				Expanded: expanded,
				Success:  true,
			}
		}

		expanded++
		if e.maxExpanded > 0 && expanded > e.maxExpanded {
			return datastructure.SearchResult{Path: []int64{}, Expanded: expanded}
		}

		for _, edge := range e.graph.GetOutEdges(current.vertex) {
			if _, seen := visited[edge.To]; seen {
				continue
			}
			next := &searchNode{
				vertex: edge.To,
				parent: current,
				g:      current.g + edge.Weight,
				depth:  current.depth + 1,
			}
			front.push(next, e.priority(next.g, edge.To, goalVertex, strategy, heuristic))
		}
	}
}

func (e *SearchEngine) priority(g float64, vertex int64, goal datastructure.Vertex, strategy Strategy, heuristic Heuristic) float64 {
	switch strategy {
	case UCS:
		return g
	case AStar:
		v, _ := e.graph.GetVertex(vertex)
		return g + heuristic.estimate(v.Lat, v.Lon, goal.Lat, goal.Lon)
	default:
		return 0
	}
}

// runIterativeDeepening repeats depth-bounded dfs with a growing bound. A
// vertex is re-expandable within one iteration when reached at a shallower
// depth than before, which keeps the first successful bound equal to the
// minimum hop distance. Expansions accumulate across iterations.
func (e *SearchEngine) runIterativeDeepening(start, goal int64) datastructure.SearchResult {
	totalExpanded := 0

	for bound := 1; bound <= maxDepthBound; bound++ {
		result, anyAtBound := e.depthBounded(start, goal, bound)
		totalExpanded += result.Expanded

		if result.Success {
			result.Expanded = totalExpanded
			return result
		}
		if !anyAtBound {
			// no node was cut off at the bound, so deeper bounds cannot
			// reach anything new: the goal is unreachable
			break
		}
	}

	return datastructure.SearchResult{Path: []int64{}, Expanded: totalExpanded}
}

func (e *SearchEngine) depthBounded(start, goal int64, bound int) (datastructure.SearchResult, bool) {
	front := &lifoFrontier{}
	front.push(&searchNode{vertex: start}, 0)

	// shallowest depth a vertex was reached at in this iteration
	seenAtDepth := make(map[int64]int)
	seenAtDepth[start] = 0

	expanded := 0
	cutoff := false

	for {
		current, ok := front.pop()
		if !ok {
			return datastructure.SearchResult{Path: []int64{}, Expanded: expanded}, cutoff
		}

		if current.vertex == goal {
			return datastructure.SearchResult{
				Path:     reconstructPath(current),
				Cost:     current.g,
				Expanded: expanded,
				Success:  true,
			}, cutoff
		}

		if current.depth >= bound {
			cutoff = true
			continue
		}

		expanded++
		if e.maxExpanded > 0 && expanded > e.maxExpanded {
			return datastructure.SearchResult{Path: []int64{}, Expanded: expanded}, false
		}

		for _, edge := range e.graph.GetOutEdges(current.vertex) {
			nextDepth := current.depth + 1
			if prev, seen := seenAtDepth[edge.To]; seen && prev <= nextDepth {
				continue
			}
			seenAtDepth[edge.To] = nextDepth
			front.push(&searchNode{
				vertex: edge.To,
				parent: current,
				g:      current.g + edge.Weight,
				depth:  nextDepth,
			}, 0)
		}
	}
}

func reconstructPath(n *searchNode) []int64 {
	path := make([]int64, 0)
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur.vertex)
	}
	return util.ReverseG(path)
}
