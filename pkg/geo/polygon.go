package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateGeometry is returned when a polygon cannot describe a room
// boundary: fewer than 3 distinct vertices, zero area, or non-finite points.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Rect is a convenience constructor for an axis-aligned rectangle.
func Rect(minX, minY, maxX, maxY float64) Polygon {
	return NewPolygon(Pt(minX, minY), Pt(maxX, minY), Pt(maxX, maxY), Pt(minX, maxY))
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Validate checks that the polygon is a usable room boundary.
func (p Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return fmt.Errorf("%w: %d vertices", ErrDegenerateGeometry, len(p.Vertices))
	}
	for i, v := range p.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is not finite", ErrDegenerateGeometry, i)
		}
	}
	if p.Area() < 1e-9 {
		return fmt.Errorf("%w: zero area", ErrDegenerateGeometry)
	}
	return nil
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Centroid returns the centroid of the polygon.
func (p Polygon) Centroid() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	a := p.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return average.
		sum := Point2D{}
		for _, v := range p.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cy += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	if len(p.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return minP, maxP
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}

// MaxDistanceTo returns the maximum distance from any vertex to the given point.
func (p Polygon) MaxDistanceTo(pt Point2D) float64 {
	maxDist := 0.0
	for _, v := range p.Vertices {
		d := v.Distance(pt)
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

// EdgePoints returns points sampled along the polygon boundary at roughly the
// given spacing, excluding the vertices themselves. Used by coverage checks
// that must walk room walls between corners.
func (p Polygon) EdgePoints(spacing float64) []Point2D {
	n := len(p.Vertices)
	if n < 2 || spacing <= 0 {
		return nil
	}
	var pts []Point2D
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		length := a.Distance(b)
		steps := int(math.Floor(length / spacing))
		for s := 1; s < steps; s++ {
			pts = append(pts, a.Lerp(b, float64(s)/float64(steps)))
		}
	}
	return pts
}
