package compliance

// Status is the outcome of one compliance check.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Code references for the checks the aggregator runs.
const (
	CodeDetectionCoverage    = "NFPA72 17.6.3.1.1"
	CodeNotificationCoverage = "NFPA72 18.5.5"
	CodeMinSpacing           = "NFPA72 17.6.3.3"
	CodeMaxSpacing           = "NFPA72 17.6.3.5"
	CodeADAReach             = "ADA 308.2.1"
	CodeSecurityPresence     = "NFPA731 4.3"
	CodePlacementComplete    = "NFPA72 17.5.3"
)

// ScopeGlobal marks verdicts that apply to the whole floor plan.
const ScopeGlobal = "global"

// Verdict is one compliance finding. Read-only output, never mutated.
type Verdict struct {
	Code   string `json:"code"`
	Scope  string `json:"scope"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}
