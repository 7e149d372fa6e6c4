// Package scale converts between drawing-space coordinates, as authored at a
// given sheet scale, and real-world feet.
package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
)

// ErrInvalidScale is returned when a coordinate system is constructed with a
// non-positive or non-finite scale factor.
var ErrInvalidScale = errors.New("invalid scale")

// CoordinateSystem maps drawing units to real-world feet. It is created once
// per floor plan from the sheet scale annotation and is immutable.
type CoordinateSystem struct {
	// ScaleFactor is real-world feet per drawing unit. Always > 0.
	ScaleFactor float64 `json:"scale_factor"`
	// Origin is the real-world point corresponding to drawing (0,0).
	Origin geo.Point2D `json:"origin"`
	// NorthAngle is the drawing's north offset in degrees, normalized to
	// [0,360). Display-only: it never enters coverage math.
	NorthAngle float64 `json:"north_angle"`
}

// New builds a coordinate system from a sheet scale annotation.
func New(scaleFactor float64, origin geo.Point2D, northAngleDeg float64) (CoordinateSystem, error) {
	if math.IsNaN(scaleFactor) || math.IsInf(scaleFactor, 0) {
		return CoordinateSystem{}, fmt.Errorf("%w: scale factor is not finite", ErrInvalidScale)
	}
	if scaleFactor <= 0 {
		return CoordinateSystem{}, fmt.Errorf("%w: scale factor %g must be > 0", ErrInvalidScale, scaleFactor)
	}
	if !origin.IsFinite() {
		return CoordinateSystem{}, fmt.Errorf("%w: origin is not finite", ErrInvalidScale)
	}
	return CoordinateSystem{
		ScaleFactor: scaleFactor,
		Origin:      origin,
		NorthAngle:  normalizeAngle(northAngleDeg),
	}, nil
}

// ToReal converts a drawing-space point to real-world feet.
func (cs CoordinateSystem) ToReal(drawing geo.Point2D) geo.Point2D {
	return drawing.Scale(cs.ScaleFactor).Add(cs.Origin)
}

// ToDrawing converts a real-world point back to drawing space. Exact inverse
// of ToReal to floating-point tolerance.
func (cs CoordinateSystem) ToDrawing(real geo.Point2D) geo.Point2D {
	return real.Sub(cs.Origin).Scale(1 / cs.ScaleFactor)
}

// ToRealPolygon converts every vertex of a drawing-space polygon.
func (cs CoordinateSystem) ToRealPolygon(p geo.Polygon) geo.Polygon {
	pts := make([]geo.Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = cs.ToReal(v)
	}
	return geo.Polygon{Vertices: pts}
}

func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}
