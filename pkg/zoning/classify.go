// Package zoning turns raw floor-plan regions into typed zones with device
// requirements. Classification is a deterministic rule table over normalized
// room-name tokens: identical input always yields an identical zone apart
// from the sequential id.
package zoning

import (
	"fmt"
	"math"
	"strings"

	"github.com/Obayne/AutoFireBase-sub001/pkg/plan"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/scale"
	"github.com/Obayne/AutoFireBase-sub001/pkg/validation"
)

// smokeCoverageSqFt is the per-detector area rule used for count estimates:
// one smoke/heat detector per 900 sq ft, rounded up.
const smokeCoverageSqFt = 900

// classRule maps room-name tokens to a zone type. Rules are applied in
// order; the first token match wins.
type classRule struct {
	tokens []string
	zone   ZoneType
	// needsHint restricts the rule to regions whose explicit type hint
	// matches the rule's zone type (mechanical rooms are restricted only
	// when the plan says restricted access; otherwise equipment).
	needsHint bool
}

var classRules = []classRule{
	{tokens: []string{"mechanical", "boiler", "chiller"}, zone: ZoneRestricted, needsHint: true},
	{tokens: []string{"electrical", "telecom", "server", "data", "idf", "mdf", "utility", "mechanical", "boiler", "chiller"}, zone: ZoneEquipment},
	{tokens: []string{"corridor", "hallway", "hall", "passage", "lobby", "vestibule", "stair", "stairwell", "exit"}, zone: ZonePathway},
	{tokens: []string{"office", "conference", "classroom", "break", "kitchen", "storage", "restroom", "bathroom", "lab", "reception", "waiting", "open"}, zone: ZoneCoverage},
}

// specialKeywords maps room-name tokens to special-requirement tags.
var specialKeywords = map[SpecialTag][]string{
	TagADA:           {"ada", "accessible"},
	TagSecurity:      {"security", "vault", "secure", "evidence"},
	TagEnvironmental: {"kitchen", "garage", "wet", "exterior", "freezer", "boiler", "dust"},
}

// Classify converts floor-plan regions into typed zones. Geometry failures
// are attached to the affected zone, never abort the run.
func Classify(regions []plan.RegionDef, cs scale.CoordinateSystem, catalog *rules.Catalog) ([]*Zone, *validation.Report) {
	report := validation.NewReport()
	zones := make([]*Zone, 0, len(regions))

	for i, reg := range regions {
		z := classifyRegion(i, reg, cs, catalog)
		if z.Err != "" {
			report.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("zone %s (%s): %s", z.ID, z.RoomName, z.Err),
				ZoneID:  z.ID,
			})
		}
		if z.ReviewNeeded {
			report.AddWarning(validation.Result{
				Level:   validation.LevelRules,
				Message: fmt.Sprintf("zone %s: room name %q matched no classification rule, defaulted to coverage; flag for manual review", z.ID, z.RoomName),
				ZoneID:  z.ID,
			})
		}
		zones = append(zones, z)
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelRules,
		Message: fmt.Sprintf("classified %d regions into zones", len(zones)),
	})
	return zones, report
}

func classifyRegion(idx int, reg plan.RegionDef, cs scale.CoordinateSystem, catalog *rules.Catalog) *Zone {
	tokens := tokenize(reg.Room)
	zoneType, matched := matchType(tokens, reg.TypeHint)

	z := &Zone{
		ID:           fmt.Sprintf("zone_%03d_%s", idx+1, slug(reg.Room)),
		Type:         zoneType,
		RoomName:     reg.Room,
		ReviewNeeded: !matched,
		Special:      matchSpecial(tokens),
	}

	boundary := cs.ToRealPolygon(reg.BoundaryPolygon())
	if err := boundary.Validate(); err != nil {
		z.Err = err.Error()
		return z
	}
	z.Boundary = boundary
	z.AreaSqFt = boundary.Area()
	for _, ko := range reg.KeepOutPolygons() {
		z.KeepOuts = append(z.KeepOuts, cs.ToRealPolygon(ko))
	}
	z.Requirements = deriveRequirements(z, catalog)
	return z
}

// matchType resolves the zone type. An explicit hint wins; otherwise the
// first rule whose token list intersects the room tokens decides.
func matchType(tokens []string, hint string) (ZoneType, bool) {
	switch hint {
	case string(ZoneCoverage), string(ZonePathway), string(ZoneEquipment):
		return ZoneType(hint), true
	}
	restricted := hint == string(ZoneRestricted)
	for _, rule := range classRules {
		if rule.needsHint && !restricted {
			continue
		}
		for _, tok := range tokens {
			for _, want := range rule.tokens {
				if tok == want {
					return rule.zone, true
				}
			}
		}
	}
	if restricted {
		// Hinted restricted access is honored even without a token match.
		return ZoneRestricted, true
	}
	return ZoneCoverage, false
}

func matchSpecial(tokens []string) []SpecialTag {
	var tags []SpecialTag
	for _, tag := range []SpecialTag{TagADA, TagSecurity, TagEnvironmental} {
		for _, want := range specialKeywords[tag] {
			if containsToken(tokens, want) {
				tags = append(tags, tag)
				break
			}
		}
	}
	return tags
}

// deriveRequirements builds the device list from zone type, area, and tags,
// filtered through the catalog.
func deriveRequirements(z *Zone, catalog *rules.Catalog) []DeviceRequirement {
	allowed := make(map[rules.DeviceType]bool)
	for _, d := range catalog.DeviceSubtypesFor(string(z.Type)) {
		allowed[d] = true
	}

	detector := rules.DeviceSmokeDetector
	if z.Type == ZoneEquipment || z.Type == ZoneRestricted || z.HasTag(TagEnvironmental) {
		// Wet, dusty, or equipment spaces get heat detection.
		detector = rules.DeviceHeatDetector
	}

	var reqs []DeviceRequirement
	if allowed[detector] || allowed[rules.DeviceSmokeDetector] || allowed[rules.DeviceHeatDetector] {
		reqs = append(reqs, DeviceRequirement{
			Device:         detector,
			Mounting:       rules.MountCeiling,
			CoverageDriven: true,
			EstimatedCount: int(math.Ceil(z.AreaSqFt / smokeCoverageSqFt)),
		})
	}

	switch z.Type {
	case ZoneCoverage:
		if allowed[rules.DeviceStrobe] {
			reqs = append(reqs, DeviceRequirement{
				Device:         rules.DeviceStrobe,
				Mounting:       rules.MountWall,
				CoverageDriven: true,
				Candela:        75,
			})
		}
		if allowed[rules.DevicePullStation] {
			reqs = append(reqs, DeviceRequirement{
				Device:   rules.DevicePullStation,
				Mounting: rules.MountWall,
				Quantity: 1,
			})
		}
	case ZonePathway:
		if allowed[rules.DeviceHornStrobe] {
			reqs = append(reqs, DeviceRequirement{
				Device:         rules.DeviceHornStrobe,
				Mounting:       rules.MountWall,
				CoverageDriven: true,
				Candela:        30,
			})
		}
	case ZoneEquipment:
		if allowed[rules.DeviceControlPanel] {
			reqs = append(reqs, DeviceRequirement{
				Device:    rules.DeviceControlPanel,
				Mounting:  rules.MountWall,
				Quantity:  1,
				Mandatory: true,
			})
		}
	}
	return reqs
}

// tokenize lowercases a room name and splits it on non-alphanumeric runs.
func tokenize(name string) []string {
	lower := strings.ToLower(name)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
}

func containsToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func slug(name string) string {
	return strings.Join(tokenize(name), "_")
}
