package rules

// Catalog answers which device subtypes a zone classification calls for. It
// stands in for the external device-catalog collaborator; the zone classifier
// queries it by zone type tag.
type Catalog struct {
	byZoneType map[string][]DeviceType
}

// DefaultCatalog returns the built-in catalog covering the four zone types.
func DefaultCatalog() *Catalog {
	return &Catalog{
		byZoneType: map[string][]DeviceType{
			"coverage":   {DeviceSmokeDetector, DeviceStrobe, DevicePullStation},
			"pathway":    {DeviceSmokeDetector, DeviceHornStrobe},
			"equipment":  {DeviceHeatDetector, DeviceControlPanel},
			"restricted": {DeviceHeatDetector},
		},
	}
}

// DeviceSubtypesFor returns the subtypes applicable to a zone type, or nil
// when the zone type is unknown.
func (c *Catalog) DeviceSubtypesFor(zoneType string) []DeviceType {
	return c.byZoneType[zoneType]
}
