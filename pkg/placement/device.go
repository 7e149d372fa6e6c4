package placement

import (
	"github.com/Obayne/AutoFireBase-sub001/pkg/coverage"
	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
)

// PlacedDevice is one committed device position. Created on acceptance of a
// candidate and never relocated; a superseded placement is discarded and a
// new one created. ZoneID is a weak back-reference, not an ownership link.
type PlacedDevice struct {
	ID          string              `json:"id"`
	Device      rules.DeviceType    `json:"device"`
	ZoneID      string              `json:"zone_id"`
	Position    geo.Point2D         `json:"position"`
	Mounting    rules.Mounting      `json:"mounting"`
	MountHeight float64             `json:"mount_height"`
	Clearance   float64             `json:"clearance"`
	Footprint   coverage.Footprint  `json:"footprint"`
}
