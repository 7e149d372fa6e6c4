// Package coverage computes device coverage footprints from the code tables
// and evaluates whether a set of footprints covers a zone polygon.
package coverage

import (
	"math"

	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
)

// Shape distinguishes footprint geometries.
type Shape string

const (
	ShapeCircle Shape = "circle"
	ShapeRect   Shape = "rect"
)

// Footprint is the 2D region a single device is certified to protect or
// notify. Immutable once computed for a device instance.
type Footprint struct {
	Shape    Shape            `json:"shape"`
	Center   geo.Point2D      `json:"center"`
	Radius   float64          `json:"radius,omitempty"`
	HalfW    float64          `json:"half_w,omitempty"`
	HalfH    float64          `json:"half_h,omitempty"`
	Device   rules.DeviceType `json:"device"`
	Mounting rules.Mounting   `json:"mounting"`
}

// For computes the footprint for a device subtype at the given center.
// Candela applies to strobes, watts to speakers; rule-table misses surface
// as UnsupportedCandelaError / UnsupportedSubtypeError.
func For(device rules.DeviceType, mounting rules.Mounting, candela int, watts float64, center geo.Point2D) (Footprint, error) {
	fp := Footprint{Center: center, Device: device, Mounting: mounting}
	switch device {
	case rules.DeviceStrobe, rules.DeviceHornStrobe:
		r, err := rules.StrobeRadius(mounting, candela)
		if err != nil {
			return Footprint{}, err
		}
		fp.Shape = ShapeCircle
		fp.Radius = r
	case rules.DeviceSmokeDetector, rules.DeviceHeatDetector:
		r, err := rules.DetectorRadius(device)
		if err != nil {
			return Footprint{}, err
		}
		fp.Shape = ShapeCircle
		fp.Radius = r
	case rules.DeviceSpeaker:
		hw, hh, err := rules.SpeakerExtents(watts)
		if err != nil {
			return Footprint{}, err
		}
		fp.Shape = ShapeRect
		fp.HalfW = hw
		fp.HalfH = hh
	case rules.DevicePullStation:
		// Pull stations cover by travel distance, not sensing; half the
		// max spacing models the reachable span.
		s, err := rules.SpacingFor(device)
		if err != nil {
			return Footprint{}, err
		}
		fp.Shape = ShapeCircle
		fp.Radius = s.MaxSpacing / 2
	case rules.DeviceControlPanel:
		fp.Shape = ShapeCircle
		fp.Radius = 1
	default:
		return Footprint{}, &rules.UnsupportedSubtypeError{Subtype: device}
	}
	return fp, nil
}

// Contains reports whether the point lies within the footprint.
func (f Footprint) Contains(pt geo.Point2D) bool {
	switch f.Shape {
	case ShapeCircle:
		return f.Center.Distance(pt) <= f.Radius
	case ShapeRect:
		return math.Abs(pt.X-f.Center.X) <= f.HalfW &&
			math.Abs(pt.Y-f.Center.Y) <= f.HalfH
	}
	return false
}

// MinExtent returns the smallest coverage dimension, used to derive the
// sampling density for containment checks.
func (f Footprint) MinExtent() float64 {
	if f.Shape == ShapeRect {
		return math.Min(f.HalfW, f.HalfH)
	}
	return f.Radius
}

// Polygon approximates the footprint boundary for rendering and reports.
func (f Footprint) Polygon() geo.Polygon {
	if f.Shape == ShapeRect {
		return geo.Rect(f.Center.X-f.HalfW, f.Center.Y-f.HalfH,
			f.Center.X+f.HalfW, f.Center.Y+f.HalfH)
	}
	return geo.CirclePolygon(f.Center, f.Radius)
}
