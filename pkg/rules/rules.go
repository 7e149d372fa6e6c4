// Package rules holds the static life-safety code tables the placement and
// compliance engines consult: strobe candela coverage, detector spacing,
// device clearances, and mounting heights. Tables are exact lookups; an
// unlisted rating is an error, never an interpolated guess, so the engine
// cannot silently certify unverified coverage.
package rules

import (
	"fmt"
	"sort"
)

// Mounting identifies how a device is installed.
type Mounting string

const (
	MountWall    Mounting = "wall"
	MountCeiling Mounting = "ceiling"
)

// DeviceType tags a device subtype from the catalog.
type DeviceType string

const (
	DeviceSmokeDetector DeviceType = "smoke_detector"
	DeviceHeatDetector  DeviceType = "heat_detector"
	DeviceStrobe        DeviceType = "strobe"
	DeviceHornStrobe    DeviceType = "horn_strobe"
	DeviceSpeaker       DeviceType = "speaker"
	DevicePullStation   DeviceType = "pull_station"
	DeviceControlPanel  DeviceType = "control_panel"
)

// UnsupportedCandelaError reports a candela rating missing from the coverage
// tables for the requested mounting condition.
type UnsupportedCandelaError struct {
	Candela  int
	Mounting Mounting
}

func (e *UnsupportedCandelaError) Error() string {
	return fmt.Sprintf("unsupported candela rating %d for %s mount", e.Candela, e.Mounting)
}

// UnsupportedSubtypeError reports a device subtype with no rule-table entry.
type UnsupportedSubtypeError struct {
	Subtype DeviceType
}

func (e *UnsupportedSubtypeError) Error() string {
	return fmt.Sprintf("unsupported device subtype %q", e.Subtype)
}

// strobeWallRadius maps candela rating to effective coverage radius in feet
// for wall-mounted strobes (half diagonal of the listed square room size).
var strobeWallRadius = map[int]float64{
	15:  14.1, // 20x20 ft room
	30:  19.8, // 28x28
	75:  28.3, // 40x40
	95:  31.8, // 45x45
	110: 35.4, // 50x50
	135: 38.9, // 55x55
	185: 49.5, // 70x70
}

// strobeCeilingRadius is the ceiling-mount equivalent. Ceiling tables list
// different rating steps than wall tables.
var strobeCeilingRadius = map[int]float64{
	15:  10.6, // 15x15 ft room
	30:  15.6, // 22x22
	60:  21.2, // 30x30
	95:  24.7, // 35x35
	115: 28.3, // 40x40
	150: 31.8, // 45x45
	177: 35.4, // 50x50
}

// StrobeRadius returns the coverage radius in feet for a strobe of the given
// candela rating and mounting condition.
func StrobeRadius(mounting Mounting, candela int) (float64, error) {
	var table map[int]float64
	switch mounting {
	case MountWall:
		table = strobeWallRadius
	case MountCeiling:
		table = strobeCeilingRadius
	default:
		return 0, fmt.Errorf("unknown mounting condition %q", mounting)
	}
	r, ok := table[candela]
	if !ok {
		return 0, &UnsupportedCandelaError{Candela: candela, Mounting: mounting}
	}
	return r, nil
}

// StrobeCandelas returns the supported candela ratings for a mounting
// condition in ascending order.
func StrobeCandelas(mounting Mounting) []int {
	var table map[int]float64
	if mounting == MountCeiling {
		table = strobeCeilingRadius
	} else {
		table = strobeWallRadius
	}
	out := make([]int, 0, len(table))
	for cd := range table {
		out = append(out, cd)
	}
	sort.Ints(out)
	return out
}

// detectorListedSpacing is the code-listed smooth-ceiling spacing in feet per
// detector subtype. Coverage radius is 0.7 x listed spacing, which models the
// circular coverage circumscribing the spacing square.
var detectorListedSpacing = map[DeviceType]float64{
	DeviceSmokeDetector: 30,
	DeviceHeatDetector:  50,
}

// DetectorRadius returns the coverage radius in feet for a spacing-rated
// detector subtype.
func DetectorRadius(subtype DeviceType) (float64, error) {
	s, ok := detectorListedSpacing[subtype]
	if !ok {
		return 0, &UnsupportedSubtypeError{Subtype: subtype}
	}
	return 0.7 * s, nil
}

// speakerExtents maps rated wattage tap to the rectangular footprint half
// extents (feet) of adequate SPL, reduced from the distance-falloff model.
var speakerExtents = map[float64][2]float64{
	0.25: {10, 8},
	0.5:  {14, 11},
	1:    {20, 16},
	2:    {28, 22},
}

// SpeakerExtents returns the half-width and half-height in feet of the
// adequate-signal rectangle for a speaker at the given wattage tap.
func SpeakerExtents(watts float64) (float64, float64, error) {
	e, ok := speakerExtents[watts]
	if !ok {
		return 0, 0, &UnsupportedSubtypeError{Subtype: DeviceSpeaker}
	}
	return e[0], e[1], nil
}

// Spacing bounds the distance between two devices of the same subtype.
type Spacing struct {
	// MinClearance is the collision radius: two devices closer than this
	// are a physical/visual overlap.
	MinClearance float64
	// MaxSpacing is the largest allowed gap between adjacent devices on
	// the same circuit; 0 means no maximum applies.
	MaxSpacing float64
}

var subtypeSpacing = map[DeviceType]Spacing{
	DeviceSmokeDetector: {MinClearance: 3, MaxSpacing: 30},
	DeviceHeatDetector:  {MinClearance: 3, MaxSpacing: 50},
	DeviceStrobe:        {MinClearance: 4, MaxSpacing: 100},
	DeviceHornStrobe:    {MinClearance: 4, MaxSpacing: 100},
	DeviceSpeaker:       {MinClearance: 4, MaxSpacing: 80},
	DevicePullStation:   {MinClearance: 3, MaxSpacing: 200},
	DeviceControlPanel:  {MinClearance: 6, MaxSpacing: 0},
}

// SpacingFor returns the spacing bounds for a device subtype.
func SpacingFor(subtype DeviceType) (Spacing, error) {
	s, ok := subtypeSpacing[subtype]
	if !ok {
		return Spacing{}, &UnsupportedSubtypeError{Subtype: subtype}
	}
	return s, nil
}

// DefaultClearance is the collision radius used when a subtype carries no
// specific clearance entry.
const DefaultClearance = 3.0

// mountHeights is the installed height in feet above finished floor per
// subtype. Ceiling devices are listed as 0 (on the ceiling plane).
var mountHeights = map[DeviceType]float64{
	DeviceSmokeDetector: 0,
	DeviceHeatDetector:  0,
	DeviceStrobe:        6.67, // 80 in lens height
	DeviceHornStrobe:    6.67,
	DeviceSpeaker:       7.5,
	DevicePullStation:   4.0, // 48 in operable height
	DeviceControlPanel:  5.0,
}

// MountHeight returns the standard installed height for a subtype.
func MountHeight(subtype DeviceType) float64 {
	return mountHeights[subtype]
}

// ADAReach is the operable-height range in feet a device that must be
// reachable (pull stations in ADA-flagged zones) has to fall within.
var ADAReach = struct{ Min, Max float64 }{Min: 1.25, Max: 4.0}

// Operable reports whether the subtype is one a building occupant must be
// able to reach and operate.
func Operable(subtype DeviceType) bool {
	return subtype == DevicePullStation
}
