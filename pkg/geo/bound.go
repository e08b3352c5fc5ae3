package geo

import (
	"github.com/MarioFengW/route-planning/pkg/datastructure"

	"github.com/golang/geo/s2"
	"golang.org/x/exp/rand"
)

// BoundingRect returns the lat/lon rectangle enclosing all coordinates.
func BoundingRect(coords []datastructure.Coordinate) s2.Rect {
	bounder := s2.NewRectBounder()
	for _, c := range coords {
		bounder.AddPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon)))
	}
	return bounder.RectBound()
}

// RandomPointInRect samples a uniform point inside the rectangle. Uniform in
// degree space, which is fine for the city-scale extents evaluations use.
func RandomPointInRect(rect s2.Rect, rng *rand.Rand) datastructure.Coordinate {
	lo, hi := rect.Lo(), rect.Hi()
	lat := lo.Lat.Degrees() + rng.Float64()*(hi.Lat.Degrees()-lo.Lat.Degrees())
	lon := lo.Lng.Degrees() + rng.Float64()*(hi.Lng.Degrees()-lo.Lng.Degrees())
	return datastructure.NewCoordinate(lat, lon)
}
