package zoning

import (
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
)

// ZoneType identifies the functional classification of a floor-plan region.
type ZoneType string

const (
	ZoneCoverage   ZoneType = "coverage"
	ZonePathway    ZoneType = "pathway"
	ZoneEquipment  ZoneType = "equipment"
	ZoneRestricted ZoneType = "restricted"
)

// SpecialTag marks a zone requirement beyond its base type.
type SpecialTag string

const (
	TagADA           SpecialTag = "ada"
	TagSecurity      SpecialTag = "security"
	TagEnvironmental SpecialTag = "environmental"
)

// DeviceRequirement is one outstanding device need for a zone. Consumed and
// exhausted by the placement engine.
type DeviceRequirement struct {
	Device   rules.DeviceType `json:"device"`
	Mounting rules.Mounting   `json:"mounting"`
	// Quantity is the fixed count to place; 0 when CoverageDriven.
	Quantity int `json:"quantity,omitempty"`
	// CoverageDriven means placement continues until the zone is covered.
	CoverageDriven bool `json:"coverage_driven,omitempty"`
	// EstimatedCount is the per-square-foot estimate recorded for reports.
	EstimatedCount int `json:"estimated_count,omitempty"`
	// Mandatory marks a requirement whose failure is fatal for the zone
	// (a required control panel that cannot be placed without collision).
	Mandatory bool `json:"mandatory,omitempty"`
	// Candela is the strobe rating used for coverage lookup, if any.
	Candela int `json:"candela,omitempty"`
	// Watts is the speaker tap used for footprint lookup, if any.
	Watts float64 `json:"watts,omitempty"`
}

// Zone is a classified floor-plan region with its device requirements.
// Never mutated after classification except to append placed-device ids.
type Zone struct {
	ID           string              `json:"id"`
	Type         ZoneType            `json:"type"`
	RoomName     string              `json:"room_name"`
	Boundary     geo.Polygon         `json:"boundary"` // real-world feet
	AreaSqFt     float64             `json:"area_sqft"`
	Requirements []DeviceRequirement `json:"requirements"`
	Special      []SpecialTag        `json:"special,omitempty"`
	// ReviewNeeded flags a room name no classification rule matched.
	ReviewNeeded bool `json:"review_needed,omitempty"`
	// KeepOuts are restricted sub-areas no candidate position may fall in.
	KeepOuts []geo.Polygon `json:"keep_outs,omitempty"`
	// Err captures a per-zone input failure; errored zones are reported
	// but skipped by placement. The run itself continues.
	Err string `json:"error,omitempty"`
	// DeviceIDs are weak back-references to devices placed in this zone.
	DeviceIDs []string `json:"device_ids,omitempty"`
}

// HasTag reports whether the zone carries the given special tag.
func (z *Zone) HasTag(tag SpecialTag) bool {
	for _, t := range z.Special {
		if t == tag {
			return true
		}
	}
	return false
}
