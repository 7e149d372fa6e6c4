// Package compliance re-checks committed placements against the coverage,
// spacing, reach, and special-requirement rules and produces pass/warn/fail
// verdicts. Purely observational: it never mutates placements, and a fail in
// one zone never stops the remaining zones from being checked.
package compliance

import (
	"fmt"
	"sort"

	"github.com/Obayne/AutoFireBase-sub001/pkg/coverage"
	"github.com/Obayne/AutoFireBase-sub001/pkg/placement"
	"github.com/Obayne/AutoFireBase-sub001/pkg/rules"
	"github.com/Obayne/AutoFireBase-sub001/pkg/zoning"
)

var detectionDevices = map[rules.DeviceType]bool{
	rules.DeviceSmokeDetector: true,
	rules.DeviceHeatDetector:  true,
}

var notificationDevices = map[rules.DeviceType]bool{
	rules.DeviceStrobe:     true,
	rules.DeviceHornStrobe: true,
	rules.DeviceSpeaker:    true,
}

// Verify runs every compliance check over the committed placements and
// returns the verdict set in deterministic order: zones by id, checks in a
// fixed sequence within each zone. sampleDivisor tunes the coverage
// sampling density (0 = default).
func Verify(zones []*zoning.Zone, devices []placement.PlacedDevice, outcomes []placement.Outcome, sampleDivisor float64) []Verdict {
	byZone := make(map[string][]placement.PlacedDevice)
	for _, d := range devices {
		byZone[d.ZoneID] = append(byZone[d.ZoneID], d)
	}
	outcomeByZone := make(map[string]placement.Outcome, len(outcomes))
	for _, o := range outcomes {
		outcomeByZone[o.ZoneID] = o
	}

	order := make([]*zoning.Zone, len(zones))
	copy(order, zones)
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })

	var verdicts []Verdict
	for _, z := range order {
		if z.Err != "" {
			verdicts = append(verdicts, Verdict{
				Code:   CodePlacementComplete,
				Scope:  z.ID,
				Status: StatusFail,
				Detail: fmt.Sprintf("zone not analyzed: %s", z.Err),
			})
			continue
		}
		devs := byZone[z.ID]
		verdicts = append(verdicts, checkOutcome(z, outcomeByZone[z.ID])...)
		verdicts = append(verdicts, checkCoverage(z, devs, sampleDivisor)...)
		verdicts = append(verdicts, checkSpacing(z, devs)...)
		verdicts = append(verdicts, checkADAReach(z, devs)...)
		verdicts = append(verdicts, checkSecurity(z, devs)...)
	}
	return verdicts
}

// checkOutcome converts the placement state machine result into a verdict.
func checkOutcome(z *zoning.Zone, out placement.Outcome) []Verdict {
	switch out.State {
	case placement.StateExhausted:
		return []Verdict{{
			Code:   CodePlacementComplete,
			Scope:  z.ID,
			Status: StatusWarn,
			Detail: fmt.Sprintf("placement exhausted, manual placement required: %s", out.Reason),
		}}
	case placement.StateFailed:
		return []Verdict{{
			Code:   CodePlacementComplete,
			Scope:  z.ID,
			Status: StatusFail,
			Detail: out.Reason,
		}}
	}
	return nil
}

// checkCoverage re-runs the corner-and-sample containment check per device
// family so a gap names the exact failing corners.
func checkCoverage(z *zoning.Zone, devs []placement.PlacedDevice, divisor float64) []Verdict {
	var verdicts []Verdict
	families := []struct {
		code    string
		name    string
		members map[rules.DeviceType]bool
	}{
		{CodeDetectionCoverage, "detection", detectionDevices},
		{CodeNotificationCoverage, "notification", notificationDevices},
	}

	for _, fam := range families {
		if !zoneRequires(z, fam.members) {
			continue
		}
		var fps []coverage.Footprint
		for _, d := range devs {
			if fam.members[d.Device] {
				fps = append(fps, d.Footprint)
			}
		}
		res := coverage.Check(z.Boundary, fps, divisor)
		if res.Covered {
			verdicts = append(verdicts, Verdict{
				Code:   fam.code,
				Scope:  z.ID,
				Status: StatusPass,
				Detail: fmt.Sprintf("%s coverage complete: %d samples, all corners covered", fam.name, res.Total),
			})
			continue
		}
		detail := fmt.Sprintf("%s coverage gap: %d of %d samples uncovered", fam.name, len(res.Failed), res.Total)
		if res.CornerFailures > 0 {
			detail += fmt.Sprintf(", including %d corner(s) at %s", res.CornerFailures, failedCorners(res))
		}
		verdicts = append(verdicts, Verdict{
			Code:   fam.code,
			Scope:  z.ID,
			Status: StatusFail,
			Detail: detail,
		})
	}
	return verdicts
}

func failedCorners(res coverage.Result) string {
	s := ""
	for _, f := range res.Failed {
		if f.Kind != coverage.SampleCorner {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("(%.1f,%.1f)", f.Point.X, f.Point.Y)
	}
	return s
}

func zoneRequires(z *zoning.Zone, members map[rules.DeviceType]bool) bool {
	for _, r := range z.Requirements {
		if members[r.Device] {
			return true
		}
	}
	return false
}

// checkSpacing validates pairwise distance between same-subtype devices in
// a zone against the rule-table minimum and maximum.
func checkSpacing(z *zoning.Zone, devs []placement.PlacedDevice) []Verdict {
	bySubtype := make(map[rules.DeviceType][]placement.PlacedDevice)
	var subtypes []rules.DeviceType
	for _, d := range devs {
		if len(bySubtype[d.Device]) == 0 {
			subtypes = append(subtypes, d.Device)
		}
		bySubtype[d.Device] = append(bySubtype[d.Device], d)
	}
	sort.Slice(subtypes, func(i, j int) bool { return subtypes[i] < subtypes[j] })

	var verdicts []Verdict
	for _, st := range subtypes {
		group := bySubtype[st]
		if len(group) < 2 {
			continue
		}
		spacing, err := rules.SpacingFor(st)
		if err != nil {
			continue
		}

		minViolations := 0
		maxViolations := 0
		for i := range group {
			nearest := -1.0
			for j := range group {
				if i == j {
					continue
				}
				dist := group[i].Position.Distance(group[j].Position)
				if dist < group[i].Clearance+group[j].Clearance {
					if i < j {
						minViolations++
					}
				}
				if nearest < 0 || dist < nearest {
					nearest = dist
				}
			}
			if spacing.MaxSpacing > 0 && nearest > spacing.MaxSpacing {
				maxViolations++
			}
		}

		if minViolations > 0 {
			verdicts = append(verdicts, Verdict{
				Code:   CodeMinSpacing,
				Scope:  z.ID,
				Status: StatusFail,
				Detail: fmt.Sprintf("%d %s pair(s) closer than minimum clearance", minViolations, st),
			})
		} else {
			verdicts = append(verdicts, Verdict{
				Code:   CodeMinSpacing,
				Scope:  z.ID,
				Status: StatusPass,
				Detail: fmt.Sprintf("%d %s placements honor minimum clearance", len(group), st),
			})
		}
		if maxViolations > 0 {
			verdicts = append(verdicts, Verdict{
				Code:   CodeMaxSpacing,
				Scope:  z.ID,
				Status: StatusWarn,
				Detail: fmt.Sprintf("%d %s device(s) farther than %.0f ft from their nearest neighbor", maxViolations, st, spacing.MaxSpacing),
			})
		}
	}
	return verdicts
}

// checkADAReach verifies operable devices in ADA-tagged zones sit within the
// regulated reach range. Height is placement metadata, not position.
func checkADAReach(z *zoning.Zone, devs []placement.PlacedDevice) []Verdict {
	if !z.HasTag(zoning.TagADA) {
		return nil
	}
	var verdicts []Verdict
	for _, d := range devs {
		if !rules.Operable(d.Device) {
			continue
		}
		if d.MountHeight < rules.ADAReach.Min || d.MountHeight > rules.ADAReach.Max {
			verdicts = append(verdicts, Verdict{
				Code:   CodeADAReach,
				Scope:  z.ID,
				Status: StatusFail,
				Detail: fmt.Sprintf("%s mounted at %.2f ft, outside operable range %.2f-%.2f ft", d.ID, d.MountHeight, rules.ADAReach.Min, rules.ADAReach.Max),
			})
		} else {
			verdicts = append(verdicts, Verdict{
				Code:   CodeADAReach,
				Scope:  z.ID,
				Status: StatusPass,
				Detail: fmt.Sprintf("%s at %.2f ft within operable reach", d.ID, d.MountHeight),
			})
		}
	}
	return verdicts
}

// checkSecurity requires at least one notification appliance in zones
// flagged for security monitoring.
func checkSecurity(z *zoning.Zone, devs []placement.PlacedDevice) []Verdict {
	if !z.HasTag(zoning.TagSecurity) {
		return nil
	}
	for _, d := range devs {
		if notificationDevices[d.Device] {
			return []Verdict{{
				Code:   CodeSecurityPresence,
				Scope:  z.ID,
				Status: StatusPass,
				Detail: fmt.Sprintf("security zone has notification appliance %s", d.ID),
			}}
		}
	}
	return []Verdict{{
		Code:   CodeSecurityPresence,
		Scope:  z.ID,
		Status: StatusFail,
		Detail: "security-flagged zone has no notification appliance",
	}}
}
