package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obayne/AutoFireBase-sub001/pkg/compliance"
	"github.com/Obayne/AutoFireBase-sub001/pkg/coverage"
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/placement"
	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

func TestAssemble(t *testing.T) {
	fp := &plan.FloorPlan{Name: "Test Floor"}
	zones := []*zoning.Zone{
		{ID: "zone_001_office", Type: zoning.ZoneCoverage, RoomName: "Office", AreaSqFt: 432,
			Requirements: []zoning.DeviceRequirement{
				{Device: rules.DeviceSmokeDetector, Mounting: rules.MountCeiling,
					CoverageDriven: true, EstimatedCount: 1},
			},
			DeviceIDs: []string{"dev_zone_001_office_smoke_detector_01"}},
		{ID: "zone_002_hall", Type: zoning.ZonePathway, RoomName: "Hall", AreaSqFt: 320},
		{ID: "zone_003_bad", Err: "degenerate geometry"},
	}
	fpPrint, err := coverage.For(rules.DeviceSmokeDetector, rules.MountCeiling, 0, 0, geo.Pt(12, 9))
	require.NoError(t, err)
	devices := []placement.PlacedDevice{
		{ID: "dev_zone_001_office_smoke_detector_01", ZoneID: "zone_001_office",
			Device: rules.DeviceSmokeDetector, Mounting: rules.MountCeiling,
			Position: geo.Pt(12, 9), MountHeight: 9, Footprint: fpPrint},
	}
	outcomes := []placement.Outcome{
		{ZoneID: "zone_001_office", State: placement.StateValidated},
		{ZoneID: "zone_002_hall", State: placement.StateExhausted},
		{ZoneID: "zone_003_bad", State: placement.StateFailed},
	}
	verdicts := []compliance.Verdict{
		{Code: compliance.CodeDetectionCoverage, Scope: "zone_001_office", Status: compliance.StatusPass},
		{Code: compliance.CodePlacementComplete, Scope: "zone_002_hall", Status: compliance.StatusWarn},
		{Code: compliance.CodePlacementComplete, Scope: "zone_003_bad", Status: compliance.StatusFail},
	}

	doc := Assemble("run-123", fp, zones, devices, outcomes, verdicts, validation.NewReport())

	assert.Equal(t, "run-123", doc.RunID)
	assert.Equal(t, "Test Floor", doc.PlanName)
	assert.False(t, doc.GeneratedAt.IsZero())

	require.Len(t, doc.Zones, 3)
	assert.Equal(t, placement.StateValidated, doc.Zones[0].State)
	require.Len(t, doc.Zones[0].Requirements, 1)
	assert.Equal(t, 1, doc.Zones[0].Requirements[0].EstimatedCount)
	assert.Equal(t, "degenerate geometry", doc.Zones[2].Error)

	require.Len(t, doc.Devices, 1)
	assert.NotEmpty(t, doc.Devices[0].Coverage.Vertices, "device record should carry a rendered coverage outline")

	s := doc.Summary
	assert.Equal(t, 3, s.Zones)
	assert.Equal(t, 1, s.ZonesValidated)
	assert.Equal(t, 1, s.ZonesExhausted)
	assert.Equal(t, 1, s.ZonesFailed)
	assert.Equal(t, 1, s.Devices)
	assert.Equal(t, 1, s.VerdictsPass)
	assert.Equal(t, 1, s.VerdictsWarn)
	assert.Equal(t, 1, s.VerdictsFail)
}

func TestDocumentRoundTripsAsJSON(t *testing.T) {
	doc := Assemble("run-456", &plan.FloorPlan{Name: "Empty"}, nil, nil, nil, nil, validation.NewReport())

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.RunID, decoded.RunID)
	assert.Equal(t, doc.Summary, decoded.Summary)
}
