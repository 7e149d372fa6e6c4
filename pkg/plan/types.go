package plan

import "github.com/Obayne/AutoFireBase-sub001/pkg/geo"

// FloorPlan is the top-level input document for one floor: the sheet scale
// annotation, the room regions traced from the drawing, and the solver
// tunables.
type FloorPlan struct {
	PlanVersion string         `yaml:"plan_version" json:"plan_version"`
	Name        string         `yaml:"name" json:"name"`
	Coordinates CoordinatesDef `yaml:"coordinate_system" json:"coordinate_system"`
	Regions     []RegionDef    `yaml:"regions" json:"regions"`
	Tunables    Tunables       `yaml:"tunables" json:"tunables"`
}

// CoordinatesDef is the sheet scale annotation: real-world feet per drawing
// unit, the real-world origin, and the north arrow offset in degrees.
type CoordinatesDef struct {
	ScaleFactor float64    `yaml:"scale_factor" json:"scale_factor"`
	Origin      [2]float64 `yaml:"origin" json:"origin"`
	NorthAngle  float64    `yaml:"north_angle" json:"north_angle"`
}

// RegionDef is one room region traced from the floor plan, in drawing units.
type RegionDef struct {
	Room     string       `yaml:"room" json:"room"`
	TypeHint string       `yaml:"type_hint,omitempty" json:"type_hint,omitempty"`
	Boundary [][2]float64 `yaml:"boundary" json:"boundary"`
	// KeepOuts are sub-areas carved out of a restricted-access region
	// where no device may be placed.
	KeepOuts [][][2]float64 `yaml:"keep_outs,omitempty" json:"keep_outs,omitempty"`
}

// BoundaryPolygon returns the region boundary as a geo.Polygon in drawing units.
func (r RegionDef) BoundaryPolygon() geo.Polygon {
	return toPolygon(r.Boundary)
}

// KeepOutPolygons returns the keep-out sub-areas as polygons in drawing units.
func (r RegionDef) KeepOutPolygons() []geo.Polygon {
	if len(r.KeepOuts) == 0 {
		return nil
	}
	polys := make([]geo.Polygon, len(r.KeepOuts))
	for i, ko := range r.KeepOuts {
		polys[i] = toPolygon(ko)
	}
	return polys
}

func toPolygon(pts [][2]float64) geo.Polygon {
	vs := make([]geo.Point2D, len(pts))
	for i, b := range pts {
		vs[i] = geo.Pt(b[0], b[1])
	}
	return geo.NewPolygon(vs...)
}

// Tunables are the solver constants the code tables leave open. Zero values
// mean "use the default".
type Tunables struct {
	// MaxIterations bounds coverage-driven placement per zone.
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	// SampleDivisor sets interior sample spacing to smallest radius / divisor.
	SampleDivisor float64 `yaml:"sample_divisor" json:"sample_divisor"`
	// GridStep overrides the candidate grid step in feet; 0 derives it
	// from the footprint radius.
	GridStep float64 `yaml:"grid_step" json:"grid_step"`
	// Clearance overrides the minimum device-to-device distance in feet.
	Clearance float64 `yaml:"clearance" json:"clearance"`
	// Workers is the number of zones placed concurrently.
	Workers int `yaml:"workers" json:"workers"`
}

// Defaults as decided for the open tuning constants.
const (
	DefaultMaxIterations = 256
	DefaultSampleDivisor = 10
	DefaultWorkers       = 1
)

// WithDefaults returns the tunables with zero values replaced by defaults.
func (t Tunables) WithDefaults() Tunables {
	if t.MaxIterations <= 0 {
		t.MaxIterations = DefaultMaxIterations
	}
	if t.SampleDivisor <= 0 {
		t.SampleDivisor = DefaultSampleDivisor
	}
	if t.Workers <= 0 {
		t.Workers = DefaultWorkers
	}
	return t
}
