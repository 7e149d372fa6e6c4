// Package pipeline drives the full solve: schema validation, zone
// classification, device placement, and compliance verification, assembled
// into a report document. Both the CLI and the API server run plans through
// the same Runner.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Obayne/AutoFireBase-sub001/pkg/compliance"
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/placement"
	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/report"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/scale"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

// ErrInvalidPlan marks a plan the schema validator rejected. The validation
// report travels alongside on the Result.
var ErrInvalidPlan = errors.New("plan failed schema validation")

// Runner executes plan solves. It is stateless apart from the logger; the
// same Runner can serve concurrent solves, each with its own collision index.
type Runner struct {
	Logger *log.Logger
	// Workers overrides the plan's tunable worker count when > 0.
	Workers int
	// Catalog maps zone types to allowed device subtypes; nil means the
	// default code catalog.
	Catalog *rules.Catalog
}

// NewRunner creates a runner. A nil logger falls back to the default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Stats records per-stage wall time.
type Stats struct {
	ValidateTime time.Duration `json:"validate_time"`
	ClassifyTime time.Duration `json:"classify_time"`
	PlaceTime    time.Duration `json:"place_time"`
	VerifyTime   time.Duration `json:"verify_time"`
}

// Result is the outcome of one solve.
type Result struct {
	Document *report.Document
	Stats    Stats
}

// Run solves a floor plan end to end. A schema-invalid plan returns
// ErrInvalidPlan with the validation report attached to the Result; per-zone
// placement failures do not fail the run, they surface in the document.
func (r *Runner) Run(ctx context.Context, fp *plan.FloorPlan) (*Result, error) {
	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])
	result := &Result{}

	// Stage 1: schema validation.
	start := time.Now()
	rep := validation.ValidateSchema(fp)
	result.Stats.ValidateTime = time.Since(start)
	if !rep.Valid {
		result.Document = report.Assemble(runID, fp, nil, nil, nil, nil, rep)
		return result, fmt.Errorf("%w: %d error(s)", ErrInvalidPlan, len(rep.Errors))
	}
	logger.Info("plan validated",
		"regions", len(fp.Regions),
		"warnings", len(rep.Warnings),
		"duration", result.Stats.ValidateTime)

	cs, err := scale.New(fp.Coordinates.ScaleFactor,
		geo.Pt(fp.Coordinates.Origin[0], fp.Coordinates.Origin[1]),
		fp.Coordinates.NorthAngle)
	if err != nil {
		return nil, fmt.Errorf("coordinate system: %w", err)
	}
	tun := fp.Tunables.WithDefaults()
	workers := tun.Workers
	if r.Workers > 0 {
		workers = r.Workers
	}
	catalog := r.Catalog
	if catalog == nil {
		catalog = rules.DefaultCatalog()
	}

	// Stage 2: classification.
	start = time.Now()
	zones, classifyRep := zoning.Classify(fp.Regions, cs, catalog)
	result.Stats.ClassifyTime = time.Since(start)
	rep.Merge(classifyRep)
	logger.Info("zones classified",
		"zones", len(zones),
		"duration", result.Stats.ClassifyTime)

	// Stage 3: placement.
	start = time.Now()
	cfg := placement.Config{
		MaxIterations: tun.MaxIterations,
		SampleDivisor: tun.SampleDivisor,
		GridStep:      tun.GridStep,
		Clearance:     tun.Clearance,
	}
	devices, outcomes, placeRep := placement.PlaceAll(ctx, zones, cfg, workers)
	result.Stats.PlaceTime = time.Since(start)
	rep.Merge(placeRep)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Info("devices placed",
		"devices", len(devices),
		"workers", workers,
		"duration", result.Stats.PlaceTime)

	// Stage 4: compliance verification.
	start = time.Now()
	verdicts := compliance.Verify(zones, devices, outcomes, tun.SampleDivisor)
	result.Stats.VerifyTime = time.Since(start)
	fails := 0
	for _, v := range verdicts {
		if v.Status == compliance.StatusFail {
			fails++
		}
	}
	logger.Info("compliance verified",
		"verdicts", len(verdicts),
		"failures", fails,
		"duration", result.Stats.VerifyTime)

	result.Document = report.Assemble(runID, fp, zones, devices, outcomes, verdicts, rep)
	return result, nil
}

// RunFile loads a plan from disk and solves it.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	fp, err := plan.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, fp)
}
