package validation

import (
	"testing"

	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
)

func validPlan() *plan.FloorPlan {
	return &plan.FloorPlan{
		PlanVersion: "1.0",
		Name:        "Test Floor",
		Coordinates: plan.CoordinatesDef{ScaleFactor: 48},
		Regions: []plan.RegionDef{
			{Room: "Office 101", Boundary: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
			{Room: "Corridor A", TypeHint: "pathway", Boundary: [][2]float64{{2, 0}, {4, 0}, {4, 0.5}, {2, 0.5}}},
		},
	}
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validPlan())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateSchemaScaleFactorZero(t *testing.T) {
	p := validPlan()
	p.Coordinates.ScaleFactor = 0
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for scale_factor=0")
	}
	assertHasError(t, r, "coordinate_system.scale_factor")
}

func TestValidateSchemaNoRegions(t *testing.T) {
	p := validPlan()
	p.Regions = nil
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for empty regions")
	}
	assertHasError(t, r, "regions")
}

func TestValidateSchemaEmptyRoomName(t *testing.T) {
	p := validPlan()
	p.Regions[0].Room = ""
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for empty room name")
	}
	assertHasError(t, r, "regions[0].room")
}

func TestValidateSchemaTooFewVertices(t *testing.T) {
	p := validPlan()
	p.Regions[1].Boundary = [][2]float64{{0, 0}, {1, 1}}
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for 2-vertex boundary")
	}
	assertHasError(t, r, "regions[1].boundary")
}

func TestValidateSchemaZeroAreaBoundary(t *testing.T) {
	p := validPlan()
	p.Regions[0].Boundary = [][2]float64{{0, 0}, {1, 1}, {2, 2}}
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for collinear boundary")
	}
	assertHasError(t, r, "regions[0].boundary")
}

func TestValidateSchemaUnknownTypeHint(t *testing.T) {
	p := validPlan()
	p.Regions[0].TypeHint = "warehouse"
	r := ValidateSchema(p)
	if !r.Valid {
		t.Errorf("unknown type_hint should warn, not error: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for unknown type_hint")
	}
}

func TestValidateSchemaNegativeTunables(t *testing.T) {
	p := validPlan()
	p.Tunables.Clearance = -1
	r := ValidateSchema(p)
	if r.Valid {
		t.Error("expected invalid report for negative clearance")
	}
	assertHasError(t, r, "tunables")
}

func TestValidateSchemaHighWorkersWarns(t *testing.T) {
	p := validPlan()
	p.Tunables.Workers = 128
	r := ValidateSchema(p)
	if !r.Valid {
		t.Errorf("high workers should warn, not error: %v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for workers=128")
	}
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}
