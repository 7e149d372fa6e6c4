// Package placement positions devices inside classified zones without
// overlap. Candidate generation and acceptance are fully deterministic:
// re-running placement on unchanged input reproduces an identical layout.
package placement

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Obayne/AutoFireBase-sub001/pkg/coverage"
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

// ErrCollisionUnresolvable marks a mandatory fixed-position device that
// cannot be placed without collision. Fatal for its zone only.
var ErrCollisionUnresolvable = errors.New("collision unresolvable")

// ErrPlacementExhausted marks a zone that could not be fully covered within
// the iteration bound. A warning-level result, not fatal.
var ErrPlacementExhausted = errors.New("placement exhausted")

// ZoneState is the per-zone placement state machine.
type ZoneState string

const (
	StatePending   ZoneState = "pending"
	StatePlacing   ZoneState = "placing"
	StateValidated ZoneState = "validated"
	StateExhausted ZoneState = "exhausted"
	StateFailed    ZoneState = "failed"
)

// Outcome records how placement ended for one zone.
type Outcome struct {
	ZoneID string    `json:"zone_id"`
	State  ZoneState `json:"state"`
	Placed int       `json:"placed"`
	// Reason explains exhausted and failed outcomes.
	Reason string `json:"reason,omitempty"`
}

// Config carries the tunable placement constants.
type Config struct {
	// MaxIterations bounds coverage-driven placement per requirement.
	MaxIterations int
	// SampleDivisor controls coverage-check sampling density.
	SampleDivisor float64
	// GridStep overrides the candidate grid step; 0 derives it from the
	// footprint radius (radius x sqrt2, the tangent-square tiling).
	GridStep float64
	// Clearance overrides the per-subtype collision radius; 0 keeps the
	// rule-table values.
	Clearance float64
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 256
	}
	if c.SampleDivisor <= 0 {
		c.SampleDivisor = 10
	}
	return c
}

// Engine places devices into zones against a shared collision index.
type Engine struct {
	cfg   Config
	index *Index
}

// NewEngine creates an engine with a fresh collision index.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg.withDefaults(),
		index: NewIndex(12),
	}
}

// PlaceZone works through a zone's outstanding requirements and commits
// accepted placements. The zone's DeviceIDs list is appended as devices
// commit. Safe to call concurrently for different zones.
func (e *Engine) PlaceZone(ctx context.Context, z *zoning.Zone) ([]PlacedDevice, Outcome) {
	out := Outcome{ZoneID: z.ID, State: StatePending}
	if z.Err != "" {
		out.State = StateFailed
		out.Reason = z.Err
		return nil, out
	}
	if len(z.Requirements) == 0 {
		out.State = StateValidated
		return nil, out
	}

	out.State = StatePlacing
	var placed []PlacedDevice
	exhausted := false

	for _, req := range z.Requirements {
		devs, err := e.placeRequirement(ctx, z, req, len(placed))
		placed = append(placed, devs...)
		if err != nil {
			if errors.Is(err, ErrCollisionUnresolvable) || ctx.Err() != nil {
				out.State = StateFailed
				out.Reason = err.Error()
				out.Placed = len(placed)
				e.recordDevices(z, placed)
				return placed, out
			}
			// Exhaustion on one requirement still lets the rest place.
			exhausted = true
			if out.Reason == "" {
				out.Reason = err.Error()
			}
		}
	}

	out.Placed = len(placed)
	if exhausted {
		out.State = StateExhausted
	} else {
		out.State = StateValidated
	}
	e.recordDevices(z, placed)
	return placed, out
}

func (e *Engine) recordDevices(z *zoning.Zone, devs []PlacedDevice) {
	for _, d := range devs {
		z.DeviceIDs = append(z.DeviceIDs, d.ID)
	}
}

// placeRequirement handles one device requirement, fixed-count or
// coverage-driven. seq offsets device numbering within the zone.
func (e *Engine) placeRequirement(ctx context.Context, z *zoning.Zone, req zoning.DeviceRequirement, seq int) ([]PlacedDevice, error) {
	proto, err := coverage.For(req.Device, req.Mounting, req.Candela, req.Watts, geo.Origin)
	if err != nil {
		return nil, fmt.Errorf("zone %s: footprint for %s: %w", z.ID, req.Device, err)
	}
	clearance := e.clearanceFor(req.Device)
	candidates := e.candidates(z, req.Mounting, proto.MinExtent())

	if !req.CoverageDriven {
		return e.placeFixed(ctx, z, req, proto, clearance, candidates, seq)
	}
	return e.placeForCoverage(ctx, z, req, proto, clearance, candidates, seq)
}

// placeFixed places an exact quantity, first surviving candidate each.
func (e *Engine) placeFixed(ctx context.Context, z *zoning.Zone, req zoning.DeviceRequirement, proto coverage.Footprint, clearance float64, candidates []geo.Point2D, seq int) ([]PlacedDevice, error) {
	var placed []PlacedDevice
	next := 0
	for unit := 0; unit < req.Quantity; unit++ {
		if err := ctx.Err(); err != nil {
			return placed, err
		}
		dev, used, ok := e.accept(z, req, proto, clearance, candidates, next, seq+len(placed))
		if !ok {
			if req.Mandatory {
				return placed, fmt.Errorf("zone %s: mandatory %s: %w", z.ID, req.Device, ErrCollisionUnresolvable)
			}
			return placed, fmt.Errorf("zone %s: %s unit %d/%d: %w", z.ID, req.Device, unit+1, req.Quantity, ErrPlacementExhausted)
		}
		placed = append(placed, dev)
		next = used + 1
	}
	return placed, nil
}

// placeForCoverage keeps placing until the coverage engine reports the zone
// covered, the candidate list runs out, or the iteration bound hits.
func (e *Engine) placeForCoverage(ctx context.Context, z *zoning.Zone, req zoning.DeviceRequirement, proto coverage.Footprint, clearance float64, candidates []geo.Point2D, seq int) ([]PlacedDevice, error) {
	var placed []PlacedDevice
	var footprints []coverage.Footprint
	next := 0

	for iter := 0; iter < e.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return placed, err
		}
		res := coverage.Check(z.Boundary, footprints, e.cfg.SampleDivisor)
		if res.Covered {
			return placed, nil
		}
		dev, used, ok := e.accept(z, req, proto, clearance, candidates, next, seq+len(placed))
		if !ok {
			return placed, fmt.Errorf("zone %s: %s after %d placed, %d samples uncovered: %w",
				z.ID, req.Device, len(placed), len(res.Failed), ErrPlacementExhausted)
		}
		placed = append(placed, dev)
		footprints = append(footprints, dev.Footprint)
		next = used + 1
	}

	res := coverage.Check(z.Boundary, footprints, e.cfg.SampleDivisor)
	if res.Covered {
		return placed, nil
	}
	return placed, fmt.Errorf("zone %s: %s hit iteration bound %d with %d samples uncovered: %w",
		z.ID, req.Device, e.cfg.MaxIterations, len(res.Failed), ErrPlacementExhausted)
}

// accept walks candidates from index start, applying the rejection chain:
// outside polygon, collision, restricted keep-out. On the first survivor it
// commits to the shared index and returns the placed device.
func (e *Engine) accept(z *zoning.Zone, req zoning.DeviceRequirement, proto coverage.Footprint, clearance float64, candidates []geo.Point2D, start, unit int) (PlacedDevice, int, bool) {
	for i := start; i < len(candidates); i++ {
		pos := candidates[i]
		if !z.Boundary.Contains(pos) {
			continue
		}
		if z.Type == zoning.ZoneRestricted && e.inKeepOut(z, pos) {
			continue
		}
		id := fmt.Sprintf("dev_%s_%s_%02d", z.ID, req.Device, unit+1)
		if !e.index.TryInsert(id, pos, clearance) {
			continue
		}
		fp := proto
		fp.Center = pos
		return PlacedDevice{
			ID:          id,
			Device:      req.Device,
			ZoneID:      z.ID,
			Position:    pos,
			Mounting:    req.Mounting,
			MountHeight: rules.MountHeight(req.Device),
			Clearance:   clearance,
			Footprint:   fp,
		}, i, true
	}
	return PlacedDevice{}, len(candidates), false
}

func (e *Engine) inKeepOut(z *zoning.Zone, pos geo.Point2D) bool {
	for _, ko := range z.KeepOuts {
		if ko.Contains(pos) {
			return true
		}
	}
	return false
}

func (e *Engine) clearanceFor(device rules.DeviceType) float64 {
	if e.cfg.Clearance > 0 {
		return e.cfg.Clearance
	}
	if s, err := rules.SpacingFor(device); err == nil && s.MinClearance > 0 {
		return s.MinClearance
	}
	return rules.DefaultClearance
}

// candidates generates the deterministic candidate list for a zone. Ceiling
// devices get a bounding-box grid whose origin is inset so the first
// footprints reach into the zone corners; wall devices walk the boundary
// edges nudged inward.
func (e *Engine) candidates(z *zoning.Zone, mounting rules.Mounting, extent float64) []geo.Point2D {
	if extent <= 0 {
		extent = 1
	}
	if mounting == rules.MountWall {
		return e.wallCandidates(z, extent)
	}
	return e.gridCandidates(z, extent)
}

func (e *Engine) gridCandidates(z *zoning.Zone, radius float64) []geo.Point2D {
	step := e.cfg.GridStep
	if step <= 0 {
		step = radius * math.Sqrt2
	}
	// Just under radius/sqrt2, so corner samples land strictly inside the
	// footprint rather than on its boundary.
	inset := radius * 0.7
	minP, maxP := z.Boundary.BoundingBox()

	var pts []geo.Point2D
	for y := minP.Y + inset; y <= maxP.Y; y += step {
		for x := minP.X + inset; x <= maxP.X; x += step {
			pts = append(pts, geo.Pt(x, y))
		}
	}
	// Zones smaller than the inset still get their center tried.
	if len(pts) == 0 {
		pts = append(pts, z.Boundary.Centroid())
	}
	// Centroid last as the code-fallback position.
	pts = append(pts, z.Boundary.Centroid())
	return pts
}

// wallCandidates samples positions along the zone boundary, nudged toward
// the centroid so ray-cast containment is unambiguous.
func (e *Engine) wallCandidates(z *zoning.Zone, extent float64) []geo.Point2D {
	const wallNudge = 0.5
	spacing := extent
	if e.cfg.GridStep > 0 {
		spacing = e.cfg.GridStep
	}
	centroid := z.Boundary.Centroid()
	nudge := func(p geo.Point2D) geo.Point2D {
		dir := centroid.Sub(p)
		l := dir.Length()
		if l < 1e-9 {
			return p
		}
		return p.Add(dir.Scale(wallNudge / l))
	}

	var pts []geo.Point2D
	for _, v := range z.Boundary.Vertices {
		pts = append(pts, nudge(v))
	}
	for _, p := range z.Boundary.EdgePoints(spacing) {
		pts = append(pts, nudge(p))
	}
	if len(pts) == 0 {
		pts = append(pts, centroid)
	}
	return pts
}
