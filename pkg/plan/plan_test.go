package plan

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProject(t *testing.T) {
	p, err := LoadProject("../../examples/default-floor")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if p.PlanVersion != "1.0" {
		t.Errorf("plan_version = %q, want %q", p.PlanVersion, "1.0")
	}
	if p.Name != "Default Floor" {
		t.Errorf("name = %q, want %q", p.Name, "Default Floor")
	}
	if p.Coordinates.ScaleFactor != 48 {
		t.Errorf("scale_factor = %v, want 48", p.Coordinates.ScaleFactor)
	}
	if len(p.Regions) != 7 {
		t.Fatalf("regions count = %d, want 7", len(p.Regions))
	}

	office := p.Regions[0]
	if office.Room != "Office 101" {
		t.Errorf("regions[0].room = %q, want %q", office.Room, "Office 101")
	}
	if len(office.Boundary) != 4 {
		t.Errorf("regions[0] boundary vertices = %d, want 4", len(office.Boundary))
	}

	boiler := p.Regions[5]
	if boiler.TypeHint != "restricted" {
		t.Errorf("regions[5].type_hint = %q, want restricted", boiler.TypeHint)
	}
	if len(boiler.KeepOuts) != 1 {
		t.Fatalf("regions[5] keep_outs = %d, want 1", len(boiler.KeepOuts))
	}
	ko := boiler.KeepOutPolygons()[0]
	if len(ko.Vertices) != 4 {
		t.Errorf("keep-out vertices = %d, want 4", len(ko.Vertices))
	}

	if p.Tunables.MaxIterations != 256 {
		t.Errorf("tunables.max_iterations = %d, want 256", p.Tunables.MaxIterations)
	}
	if p.Tunables.Workers != 1 {
		t.Errorf("tunables.workers = %d, want 1", p.Tunables.Workers)
	}
}

func TestBoundaryPolygonArea(t *testing.T) {
	r := RegionDef{
		Room:     "Square",
		Boundary: [][2]float64{{0, 0}, {2, 0}, {2, 2}, {0, 2}},
	}
	poly := r.BoundaryPolygon()
	if math.Abs(poly.Area()-4) > 1e-9 {
		t.Errorf("area = %v, want 4", poly.Area())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/plan.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte("regions: [not: {valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestTunablesDefaults(t *testing.T) {
	var tun Tunables
	d := tun.WithDefaults()
	if d.MaxIterations != DefaultMaxIterations {
		t.Errorf("max_iterations default = %d, want %d", d.MaxIterations, DefaultMaxIterations)
	}
	if d.SampleDivisor != DefaultSampleDivisor {
		t.Errorf("sample_divisor default = %v, want %v", d.SampleDivisor, float64(DefaultSampleDivisor))
	}
	if d.Workers != DefaultWorkers {
		t.Errorf("workers default = %d, want %d", d.Workers, DefaultWorkers)
	}

	set := Tunables{MaxIterations: 32, SampleDivisor: 5, GridStep: 7, Clearance: 4, Workers: 2}
	if got := set.WithDefaults(); got != set {
		t.Errorf("explicit tunables changed: %+v", got)
	}
}
