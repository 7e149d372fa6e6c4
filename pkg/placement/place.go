package placement

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

// PlaceAll runs placement for every zone and returns the committed devices
// in stable zone order, one outcome per zone, and a validation report.
// Workers > 1 places zones concurrently in batches of mutually non-adjoining
// zones; a zone whose clearance envelope could reach a batch member waits
// for the next batch, so the shared index sees exactly the commit order a
// serial pass would and the layout is identical for every worker count.
//
// Idempotent: identical zones, catalog, and rules reproduce an identical
// layout.
func PlaceAll(ctx context.Context, zones []*zoning.Zone, cfg Config, workers int) ([]PlacedDevice, []Outcome, *validation.Report) {
	report := validation.NewReport()
	engine := NewEngine(cfg)
	if workers < 1 {
		workers = 1
	}

	// Stable processing order regardless of input order.
	order := make([]*zoning.Zone, len(zones))
	copy(order, zones)
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })

	perZone := make([][]PlacedDevice, len(order))
	outcomes := make([]Outcome, len(order))

	for _, batch := range batchZones(order, engine) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, j := range batch {
			j := j
			g.Go(func() error {
				devs, out := engine.PlaceZone(gctx, j.zone)
				perZone[j.pos] = devs
				outcomes[j.pos] = out
				return nil
			})
		}
		_ = g.Wait()
	}

	var placed []PlacedDevice
	for i, devs := range perZone {
		placed = append(placed, devs...)
		out := outcomes[i]
		switch out.State {
		case StateExhausted:
			report.AddWarning(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %s: placement exhausted: %s; manual placement required", out.ZoneID, out.Reason),
				ZoneID:  out.ZoneID,
			})
		case StateFailed:
			report.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %s: placement failed: %s", out.ZoneID, out.Reason),
				ZoneID:  out.ZoneID,
			})
		}
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("placed %d devices across %d zones", len(placed), len(order)),
	})
	return placed, outcomes, report
}

type zoneJob struct {
	pos  int
	zone *zoning.Zone
}

type zoneBox struct {
	minX, minY, maxX, maxY float64
}

func (a zoneBox) overlaps(b zoneBox) bool {
	return a.minX <= b.maxX && b.minX <= a.maxX &&
		a.minY <= b.maxY && b.minY <= a.maxY
}

// batchZones splits ID-ordered zones into consecutive groups that cannot
// constrain each other through the collision index. Each zone's bounding box
// is inflated by its largest clearance radius; two devices only collide
// within the sum of their clearances, so zones whose inflated boxes are
// disjoint place independently. A zone whose box touches the current batch
// closes it, which keeps adjoining zones in zone-ID commit order.
func batchZones(order []*zoning.Zone, engine *Engine) [][]zoneJob {
	inflate := func(z *zoning.Zone) zoneBox {
		var margin float64
		for _, req := range z.Requirements {
			if c := engine.clearanceFor(req.Device); c > margin {
				margin = c
			}
		}
		minP, maxP := z.Boundary.BoundingBox()
		return zoneBox{minP.X - margin, minP.Y - margin, maxP.X + margin, maxP.Y + margin}
	}

	var batches [][]zoneJob
	var batch []zoneJob
	var boxes []zoneBox
	for i, z := range order {
		// Errored and requirement-free zones never write to the index.
		if z.Err != "" || len(z.Requirements) == 0 {
			batch = append(batch, zoneJob{pos: i, zone: z})
			continue
		}
		zb := inflate(z)
		for _, b := range boxes {
			if zb.overlaps(b) {
				batches = append(batches, batch)
				batch = nil
				boxes = boxes[:0]
				break
			}
		}
		batch = append(batch, zoneJob{pos: i, zone: z})
		boxes = append(boxes, zb)
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}
