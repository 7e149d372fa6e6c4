package validation

import (
	"fmt"
	"math"

	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
)

// ValidateSchema performs schema-level validation on a parsed floor plan.
// It checks structural correctness before any geometry runs.
func ValidateSchema(p *plan.FloorPlan) *Report {
	r := NewReport()

	validateCoordinates(p, r)
	validateRegions(p, r)
	validateTunables(p, r)

	return r
}

func validateCoordinates(p *plan.FloorPlan, r *Report) {
	sf := p.Coordinates.ScaleFactor
	if sf <= 0 || math.IsNaN(sf) || math.IsInf(sf, 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("coordinate_system.scale_factor %v must be a positive finite number", sf),
			Path:        "coordinate_system.scale_factor",
			ActualValue: sf,
			Expected:    "> 0",
		})
	}
	for i, c := range p.Coordinates.Origin {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("coordinate_system.origin[%d] is not finite", i),
				Path:     "coordinate_system.origin",
				Expected: "finite number",
			})
		}
	}
}

func validateRegions(p *plan.FloorPlan, r *Report) {
	if len(p.Regions) == 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "regions must contain at least one room region",
			Path:     "regions",
			Expected: "at least 1 region",
		})
		return
	}

	for i, reg := range p.Regions {
		path := fmt.Sprintf("regions[%d]", i)
		if reg.Room == "" {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("%s: room name is empty", path),
				Path:    path + ".room",
			})
		}
		if len(reg.Boundary) < 3 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): boundary has %d vertices", path, reg.Room, len(reg.Boundary)),
				Path:        path + ".boundary",
				ActualValue: len(reg.Boundary),
				Expected:    ">= 3 vertices",
			})
			continue
		}
		if err := reg.BoundaryPolygon().Validate(); err != nil {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("%s (%s): %v", path, reg.Room, err),
				Path:    path + ".boundary",
			})
		}
		switch reg.TypeHint {
		case "", "coverage", "pathway", "equipment", "restricted":
		default:
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s (%s): unknown type_hint %q, classifier will decide from the room name", path, reg.Room, reg.TypeHint),
				Path:        path + ".type_hint",
				ActualValue: reg.TypeHint,
				Expected:    "coverage|pathway|equipment|restricted",
			})
		}
	}
}

func validateTunables(p *plan.FloorPlan, r *Report) {
	t := p.Tunables
	if t.MaxIterations < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "tunables.max_iterations must not be negative",
			Path:        "tunables.max_iterations",
			ActualValue: t.MaxIterations,
			Expected:    ">= 0 (0 = default)",
		})
	}
	if t.SampleDivisor < 0 || t.GridStep < 0 || t.Clearance < 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "tunables must not be negative",
			Path:     "tunables",
			Expected: ">= 0 (0 = default)",
		})
	}
	if t.Workers > 64 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("tunables.workers %d is unusually high", t.Workers),
			Path:        "tunables.workers",
			ActualValue: t.Workers,
			Expected:    "<= 64",
		})
	}
}
