package datastructure

import (
	"errors"
	"math"
	"sort"
	"time"
)

var ErrEmptyIndex = errors.New("kd-tree has no indexed points")

const kdDimensions = 2

type KDPoint struct {
	ID    int64
	Coord Coordinate
}

func NewKDPoint(id int64, lat, lon float64) KDPoint {
	return KDPoint{ID: id, Coord: NewCoordinate(lat, lon)}
}

// axisValue returns lat for axis 0, lon for axis 1. The split axis alternates
// with tree depth.
func (p KDPoint) axisValue(axis int) float64 {
	if axis == 0 {
		return p.Coord.Lat
	}
	return p.Coord.Lon
}

// squaredDistance is planar squared distance in raw (lat, lon) degree space.
// A deliberate approximation: only relative nearest-neighbor ranking matters
// here, and queries are always local, so geodesic correction is skipped.
func (p KDPoint) squaredDistance(q Coordinate) float64 {
	dLat := p.Coord.Lat - q.Lat
	dLon := p.Coord.Lon - q.Lon
	return dLat*dLat + dLon*dLon
}

type KDNode struct {
	Point KDPoint
	Left  *KDNode
	Right *KDNode
	Axis  int
}

// KDTree is a balanced 2d spatial index over graph vertices. It owns its
// nodes exclusively; indexed vertices are referenced by id only. Read-only
// after build.
type KDTree struct {
	root             *KDNode
	points           []KDPoint // flat copy kept for the exhaustive baseline
	constructionTime time.Duration
}

// BuildKDTree builds a balanced index by recursive median split. At depth d
// the subset is ordered by (axis value, id) — the id tie-break makes the tree
// shape reproducible for any input ordering — and the median element becomes
// the node, left/right recursing on the halves before/after it.
func BuildKDTree(points []KDPoint) (*KDTree, error) {
	if len(points) == 0 {
		return nil, ErrEmptyIndex
	}

	start := time.Now()

	owned := make([]KDPoint, len(points))
	copy(owned, points)

	scratch := make([]KDPoint, len(points))
	copy(scratch, points)

	t := &KDTree{
		root:   buildRecursive(scratch, 0),
		points: owned,
	}
	t.constructionTime = time.Since(start)
	return t, nil
}

func buildRecursive(points []KDPoint, depth int) *KDNode {
	if len(points) == 0 {
		return nil
	}

	axis := depth % kdDimensions
	sort.SliceStable(points, func(i, j int) bool {
		vi, vj := points[i].axisValue(axis), points[j].axisValue(axis)
		if vi != vj {
			return vi < vj
		}
		return points[i].ID < points[j].ID
	})

	median := len(points) / 2
	return &KDNode{
		Point: points[median],
		Axis:  axis,
		Left:  buildRecursive(points[:median], depth+1),
		Right: buildRecursive(points[median+1:], depth+1),
	}
}

// Nearest returns the indexed point closest to the query in degree space,
// with branch-and-bound pruning of far subtrees. Equidistant candidates
// resolve to whichever the descent reaches first.
func (t *KDTree) Nearest(query Coordinate) (int64, float64, error) {
	if t == nil || t.root == nil {
		return 0, 0, ErrEmptyIndex
	}

	bestID := int64(0)
	bestSq := math.Inf(1)
	nearestRecursive(t.root, query, &bestID, &bestSq)

	return bestID, math.Sqrt(bestSq), nil
}

func nearestRecursive(node *KDNode, query Coordinate, bestID *int64, bestSq *float64) {
	if node == nil {
		return
	}

	if sq := node.Point.squaredDistance(query); sq < *bestSq {
		*bestSq = sq
		*bestID = node.Point.ID
	}

	var queryAxis float64
	if node.Axis == 0 {
		queryAxis = query.Lat
	} else {
		queryAxis = query.Lon
	}
	diff := queryAxis - node.Point.axisValue(node.Axis)

	near, far := node.Left, node.Right
	if diff >= 0 {
		near, far = node.Right, node.Left
	}

	nearestRecursive(near, query, bestID, bestSq)

	// the far subtree can only hold a closer point if the splitting plane
	// is nearer than the best match so far
	if diff*diff < *bestSq {
		nearestRecursive(far, query, bestID, bestSq)
	}
}

type KDNeighbor struct {
	ID       int64
	Distance float64 // degree space
}

// KNearest returns up to k nearest indexed points ordered by ascending
// distance. Used by facility registration to probe for an unoccupied snap
// vertex.
func (t *KDTree) KNearest(query Coordinate, k int) ([]KDNeighbor, error) {
	if t == nil || t.root == nil {
		return nil, ErrEmptyIndex
	}
	if k <= 0 {
		return nil, nil
	}

	best := make([]kdCandidate, 0, k)
	kNearestRecursive(t.root, query, k, &best)

	neighbors := make([]KDNeighbor, len(best))
	for i, c := range best {
		neighbors[i] = KDNeighbor{ID: c.id, Distance: math.Sqrt(c.sq)}
	}
	return neighbors, nil
}

type kdCandidate struct {
	id int64
	sq float64
}

func kNearestRecursive(node *KDNode, query Coordinate, k int, best *[]kdCandidate) {
	if node == nil {
		return
	}

	sq := node.Point.squaredDistance(query)
	if len(*best) < k {
		*best = insertCandidate(*best, kdCandidate{id: node.Point.ID, sq: sq})
	} else if sq < (*best)[len(*best)-1].sq {
		*best = insertCandidate((*best)[:len(*best)-1], kdCandidate{id: node.Point.ID, sq: sq})
	}

	var queryAxis float64
	if node.Axis == 0 {
		queryAxis = query.Lat
	} else {
		queryAxis = query.Lon
	}
	diff := queryAxis - node.Point.axisValue(node.Axis)

	near, far := node.Left, node.Right
	if diff >= 0 {
		near, far = node.Right, node.Left
	}

	kNearestRecursive(near, query, k, best)

	if len(*best) < k || diff*diff < (*best)[len(*best)-1].sq {
		kNearestRecursive(far, query, k, best)
	}
}

func insertCandidate(best []kdCandidate, c kdCandidate) []kdCandidate {
	pos := sort.Search(len(best), func(i int) bool { return best[i].sq > c.sq })
	best = append(best, kdCandidate{})
	copy(best[pos+1:], best[pos:])
	best[pos] = c
	return best
}

// ExhaustiveNearest scans every indexed point and keeps the minimum. Baseline
// for correctness cross-checks and speedup measurements, not for production
// queries.
func (t *KDTree) ExhaustiveNearest(query Coordinate) (int64, float64, error) {
	if t == nil || len(t.points) == 0 {
		return 0, 0, ErrEmptyIndex
	}

	bestID := int64(0)
	bestSq := math.Inf(1)
	for _, p := range t.points {
		if sq := p.squaredDistance(query); sq < bestSq {
			bestSq = sq
			bestID = p.ID
		}
	}
	return bestID, math.Sqrt(bestSq), nil
}

func (t *KDTree) Size() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

func (t *KDTree) ConstructionTime() time.Duration {
	if t == nil {
		return 0
	}
	return t.constructionTime
}
