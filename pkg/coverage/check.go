package coverage

import "github.com/Obayne/AutoFireBase-sub001/pkg/geo"

// SampleKind classifies where a coverage sample sits.
type SampleKind string

const (
	SampleCorner   SampleKind = "corner"
	SampleEdge     SampleKind = "edge"
	SampleInterior SampleKind = "interior"
)

// Sample is one evaluated coverage point.
type Sample struct {
	Point geo.Point2D `json:"point"`
	Kind  SampleKind  `json:"kind"`
}

// Result reports a sampling-based containment check. The check is
// conservative: a covered zone may occasionally be reported uncovered near
// footprint boundaries, never the reverse.
type Result struct {
	Covered bool `json:"covered"`
	// Total is the number of samples evaluated.
	Total int `json:"total"`
	// Failed lists every uncovered sample so compliance reporting can
	// name the specific corners and spans that leave a gap.
	Failed []Sample `json:"failed,omitempty"`
	// CornerFailures counts failed samples on polygon vertices.
	CornerFailures int `json:"corner_failures"`
	// SampleSpacing is the interior grid spacing used, in feet.
	SampleSpacing float64 `json:"sample_spacing"`
}

// minSampleSpacing keeps pathological divisors from exploding the grid.
const minSampleSpacing = 0.5

// Check evaluates whether the union of footprints contains the zone polygon.
// Every polygon vertex is always sampled (the corner rule inspectors check),
// plus boundary points and a regular interior grid. Sample spacing is the
// smallest footprint extent divided by divisor.
func Check(zone geo.Polygon, footprints []Footprint, divisor float64) Result {
	if divisor <= 0 {
		divisor = 10
	}
	spacing := minSampleSpacing
	if len(footprints) > 0 {
		minExtent := footprints[0].MinExtent()
		for _, f := range footprints[1:] {
			if e := f.MinExtent(); e < minExtent {
				minExtent = e
			}
		}
		spacing = minExtent / divisor
		if spacing < minSampleSpacing {
			spacing = minSampleSpacing
		}
	}

	res := Result{SampleSpacing: spacing}

	covered := func(pt geo.Point2D) bool {
		for _, f := range footprints {
			if f.Contains(pt) {
				return true
			}
		}
		return false
	}

	// Corners first: always checked, reported individually.
	for _, v := range zone.Vertices {
		res.Total++
		if !covered(v) {
			res.Failed = append(res.Failed, Sample{Point: v, Kind: SampleCorner})
			res.CornerFailures++
		}
	}

	// Boundary walk between corners.
	for _, pt := range zone.EdgePoints(spacing) {
		res.Total++
		if !covered(pt) {
			res.Failed = append(res.Failed, Sample{Point: pt, Kind: SampleEdge})
		}
	}

	// Interior grid over the bounding box, filtered to the polygon.
	minP, maxP := zone.BoundingBox()
	for x := minP.X + spacing/2; x < maxP.X; x += spacing {
		for y := minP.Y + spacing/2; y < maxP.Y; y += spacing {
			pt := geo.Pt(x, y)
			if !zone.Contains(pt) {
				continue
			}
			res.Total++
			if !covered(pt) {
				res.Failed = append(res.Failed, Sample{Point: pt, Kind: SampleInterior})
			}
		}
	}

	res.Covered = len(res.Failed) == 0
	return res
}
