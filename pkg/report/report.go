// Package report assembles the solver output into a single serializable
// document: classified zones, committed devices with their footprint
// outlines, compliance verdicts, and summary counts.
package report

import (
	"time"

	"github.com/Obayne/AutoFireBase-sub001/pkg/compliance"
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/placement"
	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

// ZoneRecord is one zone's reported state after placement.
type ZoneRecord struct {
	ID           string                     `json:"id"`
	Type         zoning.ZoneType            `json:"type"`
	RoomName     string                     `json:"room_name"`
	AreaSqFt     float64                    `json:"area_sqft"`
	State        placement.ZoneState        `json:"state"`
	Special      []zoning.SpecialTag        `json:"special,omitempty"`
	ReviewNeeded bool                       `json:"review_needed,omitempty"`
	Requirements []zoning.DeviceRequirement `json:"requirements,omitempty"`
	DeviceIDs    []string                   `json:"device_ids,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

// DeviceRecord is one committed device with its rendered coverage outline.
type DeviceRecord struct {
	ID          string           `json:"id"`
	ZoneID      string           `json:"zone_id"`
	Device      rules.DeviceType `json:"device"`
	Mounting    rules.Mounting   `json:"mounting"`
	Position    geo.Point2D      `json:"position"`
	MountHeight float64          `json:"mount_height"`
	Coverage    geo.Polygon      `json:"coverage"`
}

// Summary aggregates the counts an inspector scans first.
type Summary struct {
	Zones          int `json:"zones"`
	ZonesValidated int `json:"zones_validated"`
	ZonesExhausted int `json:"zones_exhausted"`
	ZonesFailed    int `json:"zones_failed"`
	Devices        int `json:"devices"`
	VerdictsPass   int `json:"verdicts_pass"`
	VerdictsWarn   int `json:"verdicts_warn"`
	VerdictsFail   int `json:"verdicts_fail"`
}

// Document is the complete solver output for one floor plan run.
type Document struct {
	RunID       string               `json:"run_id"`
	PlanName    string               `json:"plan_name"`
	GeneratedAt time.Time            `json:"generated_at"`
	Zones       []ZoneRecord         `json:"zones"`
	Devices     []DeviceRecord       `json:"devices"`
	Verdicts    []compliance.Verdict `json:"verdicts"`
	Validation  *validation.Report   `json:"validation"`
	Summary     Summary              `json:"summary"`
}

// Assemble builds the output document from the run artifacts. The zone and
// device ordering of the inputs is preserved.
func Assemble(runID string, fp *plan.FloorPlan, zones []*zoning.Zone,
	devices []placement.PlacedDevice, outcomes []placement.Outcome,
	verdicts []compliance.Verdict, rep *validation.Report) *Document {

	stateByZone := make(map[string]placement.ZoneState, len(outcomes))
	for _, o := range outcomes {
		stateByZone[o.ZoneID] = o.State
	}

	doc := &Document{
		RunID:       runID,
		PlanName:    fp.Name,
		GeneratedAt: time.Now().UTC(),
		Verdicts:    verdicts,
		Validation:  rep,
	}

	for _, z := range zones {
		rec := ZoneRecord{
			ID:           z.ID,
			Type:         z.Type,
			RoomName:     z.RoomName,
			AreaSqFt:     z.AreaSqFt,
			State:        stateByZone[z.ID],
			Special:      z.Special,
			ReviewNeeded: z.ReviewNeeded,
			Requirements: z.Requirements,
			DeviceIDs:    z.DeviceIDs,
			Error:        z.Err,
		}
		doc.Zones = append(doc.Zones, rec)
		switch rec.State {
		case placement.StateValidated:
			doc.Summary.ZonesValidated++
		case placement.StateExhausted:
			doc.Summary.ZonesExhausted++
		case placement.StateFailed:
			doc.Summary.ZonesFailed++
		}
	}
	doc.Summary.Zones = len(zones)

	for _, d := range devices {
		doc.Devices = append(doc.Devices, DeviceRecord{
			ID:          d.ID,
			ZoneID:      d.ZoneID,
			Device:      d.Device,
			Mounting:    d.Mounting,
			Position:    d.Position,
			MountHeight: d.MountHeight,
			Coverage:    d.Footprint.Polygon(),
		})
	}
	doc.Summary.Devices = len(devices)

	for _, v := range verdicts {
		switch v.Status {
		case compliance.StatusPass:
			doc.Summary.VerdictsPass++
		case compliance.StatusWarn:
			doc.Summary.VerdictsWarn++
		case compliance.StatusFail:
			doc.Summary.VerdictsFail++
		}
	}
	return doc
}
