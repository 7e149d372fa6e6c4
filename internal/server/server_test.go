package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obayne/AutoFireBase-sub001/pkg/report"
)

func writePlan(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

const goodPlan = `plan_version: "1.0"
name: Server Floor
coordinate_system:
  scale_factor: 1
regions:
  - room: Office 101
    boundary: [[0, 0], [24, 0], [24, 18], [0, 18]]
`

func newTestServer(t *testing.T, yaml string) *Server {
	t.Helper()
	return New(writePlan(t, yaml), 0, log.New(io.Discard))
}

func TestReportBeforeSolve(t *testing.T) {
	s := newTestServer(t, goodPlan)
	rr := httptest.NewRecorder()
	s.handleReport(rr, nil)
	assert.Equal(t, 404, rr.Code)
}

func TestSolveAndFetch(t *testing.T) {
	s := newTestServer(t, goodPlan)

	rr := httptest.NewRecorder()
	s.handleSolve(rr, nil)
	require.Equal(t, 200, rr.Code)

	var doc report.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&doc))
	assert.Equal(t, "Server Floor", doc.PlanName)
	require.Len(t, doc.Zones, 1)
	assert.NotEmpty(t, doc.Devices)

	rr = httptest.NewRecorder()
	s.handleZones(rr, nil)
	require.Equal(t, 200, rr.Code)
	var zones []report.ZoneRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&zones))
	require.Len(t, zones, 1)
	assert.Equal(t, "Office 101", zones[0].RoomName)

	rr = httptest.NewRecorder()
	s.handleVerdicts(rr, nil)
	require.Equal(t, 200, rr.Code)
}

func TestSolveInvalidPlan(t *testing.T) {
	s := newTestServer(t, `plan_version: "1.0"
name: Broken Floor
coordinate_system:
  scale_factor: -1
regions:
  - room: Office 101
    boundary: [[0, 0], [24, 0], [24, 18], [0, 18]]
`)

	rr := httptest.NewRecorder()
	s.handleSolve(rr, nil)
	require.Equal(t, 422, rr.Code)

	var doc report.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&doc))
	require.NotNil(t, doc.Validation)
	assert.False(t, doc.Validation.Valid)
}

func TestSolveUnreadablePlan(t *testing.T) {
	s := New("/nonexistent/plan.yaml", 0, log.New(io.Discard))
	rr := httptest.NewRecorder()
	s.handleSolve(rr, nil)
	assert.Equal(t, 500, rr.Code)
}
