package coverage

import (
	"errors"
	"testing"

	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
)

func TestCenterDetectorCoversRoomCorners(t *testing.T) {
	// 24x18 ft room, ceiling smoke detector at center (12,9). Farthest
	// corner is 15 ft away, inside the 21 ft coverage radius.
	zone := geo.Rect(0, 0, 24, 18)
	fp, err := For(rules.DeviceSmokeDetector, rules.MountCeiling, 0, 0, geo.Pt(12, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp.Radius != 21 {
		t.Fatalf("expected 21 ft radius, got %f", fp.Radius)
	}

	res := Check(zone, []Footprint{fp}, 10)
	if !res.Covered {
		t.Errorf("expected full coverage, got %d failed samples", len(res.Failed))
	}
	if res.CornerFailures != 0 {
		t.Errorf("expected all four corners covered, %d failed", res.CornerFailures)
	}
}

func TestUndersizedFootprintFailsCorners(t *testing.T) {
	// 40x40 room, one 15cd wall strobe at center covers r=14.1: all four
	// corners (28.3 ft out) must be reported uncovered, individually.
	zone := geo.Rect(0, 0, 40, 40)
	fp, err := For(rules.DeviceStrobe, rules.MountWall, 15, 0, geo.Pt(20, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Check(zone, []Footprint{fp}, 10)
	if res.Covered {
		t.Fatal("expected coverage failure")
	}
	if res.CornerFailures != 4 {
		t.Errorf("expected 4 corner failures, got %d", res.CornerFailures)
	}
	corners := 0
	for _, s := range res.Failed {
		if s.Kind == SampleCorner {
			corners++
		}
	}
	if corners != 4 {
		t.Errorf("expected 4 corner samples in failure list, got %d", corners)
	}
}

func TestUnsupportedCandelaSurfaces(t *testing.T) {
	_, err := For(rules.DeviceStrobe, rules.MountWall, 999, 0, geo.Origin)
	var ucErr *rules.UnsupportedCandelaError
	if !errors.As(err, &ucErr) {
		t.Fatalf("expected UnsupportedCandelaError, got %v", err)
	}
}

func TestCoverageMonotonicInRadius(t *testing.T) {
	zone := geo.Rect(0, 0, 60, 60)
	center := geo.Pt(30, 30)

	prevFailed := -1
	for _, candela := range []int{15, 30, 75, 110, 185} {
		fp, err := For(rules.DeviceStrobe, rules.MountWall, candela, 0, center)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Fixed divisor base so the grids are comparable across radii.
		res := Check(zone, []Footprint{fp}, fp.Radius/1.41)
		if prevFailed >= 0 && len(res.Failed) > prevFailed {
			t.Errorf("%dcd: failed samples grew from %d to %d with larger radius",
				candela, prevFailed, len(res.Failed))
		}
		prevFailed = len(res.Failed)
	}
}

func TestRectFootprintContains(t *testing.T) {
	fp, err := For(rules.DeviceSpeaker, rules.MountCeiling, 0, 1, geo.Pt(10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp.Shape != ShapeRect {
		t.Fatalf("expected rect footprint, got %s", fp.Shape)
	}
	if !fp.Contains(geo.Pt(29, 20)) {
		t.Error("expected point inside 20x16 half-extent rect")
	}
	if fp.Contains(geo.Pt(31, 10)) {
		t.Error("expected point past half-width excluded")
	}
	if fp.Contains(geo.Pt(10, 27)) {
		t.Error("expected point past half-height excluded")
	}
}

func TestRectCoverageCheck(t *testing.T) {
	// 1W speaker rectangle (40x32) centered in a 30x20 room.
	zone := geo.Rect(0, 0, 30, 20)
	fp, err := For(rules.DeviceSpeaker, rules.MountCeiling, 0, 1, geo.Pt(15, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := Check(zone, []Footprint{fp}, 10)
	if !res.Covered {
		t.Errorf("expected speaker rectangle to cover room, %d failed", len(res.Failed))
	}
}

func TestNoFootprintsEverythingFails(t *testing.T) {
	zone := geo.Rect(0, 0, 10, 10)
	res := Check(zone, nil, 10)
	if res.Covered {
		t.Fatal("zone with no footprints cannot be covered")
	}
	if res.CornerFailures != 4 {
		t.Errorf("expected all corners uncovered, got %d", res.CornerFailures)
	}
}

func TestMultipleFootprintsUnion(t *testing.T) {
	// Two 30cd wall strobes side by side cover a 40x20 corridor segment
	// that neither covers alone.
	zone := geo.Rect(0, 0, 40, 20)
	left, _ := For(rules.DeviceStrobe, rules.MountWall, 30, 0, geo.Pt(10, 10))
	right, _ := For(rules.DeviceStrobe, rules.MountWall, 30, 0, geo.Pt(30, 10))

	if res := Check(zone, []Footprint{left}, 10); res.Covered {
		t.Fatal("one strobe should not cover the corridor")
	}
	if res := Check(zone, []Footprint{left, right}, 10); !res.Covered {
		t.Errorf("two strobes should cover the corridor")
	}
}
