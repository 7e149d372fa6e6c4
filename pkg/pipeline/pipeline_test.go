package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
)

func testPlan() *plan.FloorPlan {
	return &plan.FloorPlan{
		PlanVersion: "1.0",
		Name:        "Test Floor",
		Coordinates: plan.CoordinatesDef{ScaleFactor: 1},
		Regions: []plan.RegionDef{
			{Room: "Office 101", Boundary: [][2]float64{{0, 0}, {24, 0}, {24, 18}, {0, 18}}},
			{Room: "Corridor A", Boundary: [][2]float64{{50, 0}, {90, 0}, {90, 8}, {50, 8}}},
			{Room: "Electrical Room", Boundary: [][2]float64{{120, 0}, {135, 0}, {135, 12}, {120, 12}}},
		},
	}
}

func quietRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestRunProducesDocument(t *testing.T) {
	result, err := quietRunner().Run(context.Background(), testPlan())
	require.NoError(t, err)
	require.NotNil(t, result.Document)

	doc := result.Document
	assert.Equal(t, "Test Floor", doc.PlanName)
	assert.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Zones, 3)
	assert.Equal(t, 3, doc.Summary.Zones)
	assert.Greater(t, doc.Summary.Devices, 0)
	assert.Len(t, doc.Devices, doc.Summary.Devices)
	assert.NotEmpty(t, doc.Verdicts)
	require.NotNil(t, doc.Validation)
	assert.True(t, doc.Validation.Valid)
}

func TestRunInvalidPlan(t *testing.T) {
	fp := testPlan()
	fp.Coordinates.ScaleFactor = -1

	result, err := quietRunner().Run(context.Background(), fp)
	require.ErrorIs(t, err, ErrInvalidPlan)
	require.NotNil(t, result)
	require.NotNil(t, result.Document)
	assert.False(t, result.Document.Validation.Valid)
	assert.Empty(t, result.Document.Devices)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Run(ctx, testPlan())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	yaml := `plan_version: "1.0"
name: Yaml Floor
coordinate_system:
  scale_factor: 1
regions:
  - room: Office 101
    boundary: [[0, 0], [24, 0], [24, 18], [0, 18]]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	result, err := quietRunner().RunFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Yaml Floor", result.Document.PlanName)
	require.Len(t, result.Document.Zones, 1)
	assert.NotEmpty(t, result.Document.Zones[0].DeviceIDs)
}

func TestRunFileMissing(t *testing.T) {
	_, err := quietRunner().RunFile(context.Background(), "/does/not/exist.yaml")
	require.Error(t, err)
}
