package geo

import "math"

// circleSegments is the default resolution for circle approximation.
const circleSegments = 64

// ApproximateCircle returns a polygon approximating a circle with the given
// center, radius, and number of segments. Vertices are in CCW order.
func ApproximateCircle(center Point2D, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point2D, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return Polygon{Vertices: pts}
}

// CirclePolygon approximates a circle at the default resolution.
func CirclePolygon(center Point2D, radius float64) Polygon {
	return ApproximateCircle(center, radius, circleSegments)
}

// CirclesOverlap returns true if two circles intersect or touch.
func CirclesOverlap(c1 Point2D, r1 float64, c2 Point2D, r2 float64) bool {
	return c1.Distance(c2) < r1+r2
}
