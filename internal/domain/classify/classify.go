// Package classify maps raw security metric values to display buckets. It is
// the single authoritative implementation used by every widget and report
// surface; the thresholds here must not drift between callers.
package classify

import (
	"math"
	"strings"
)

// Severity drives the display color of a classified value.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityWarning Severity = "warning"
	SeverityBad     Severity = "bad"
	SeverityUnknown Severity = "unknown"
)

// Color returns the display color for a severity.
func (s Severity) Color() string {
	switch s {
	case SeverityGood:
		return "green"
	case SeverityWarning:
		return "yellow"
	case SeverityBad:
		return "red"
	default:
		return "gray"
	}
}

// Rating is the classified form of a raw metric value: the label drives
// display text, the severity drives color.
type Rating struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Score thresholds. 70 is inclusive on the good side, 40 exclusive on the
// bad side.
const (
	scoreWarningFloor = 40.0
	scoreGoodFloor    = 70.0
)

// Score classifies a 0-100 numeric score into a quality bucket.
func Score(v float64) Rating {
	switch {
	case math.IsNaN(v):
		return Rating{Label: "Unknown", Severity: SeverityUnknown}
	case v < scoreWarningFloor:
		return Rating{Label: "Poor", Severity: SeverityBad}
	case v < scoreGoodFloor:
		return Rating{Label: "Fair", Severity: SeverityWarning}
	default:
		return Rating{Label: "Good", Severity: SeverityGood}
	}
}

// RiskLevel classifies a 0-100 score into the banner risk wording. The bands
// are identical to Score; only the labels differ (a high score means low risk).
func RiskLevel(v float64) Rating {
	switch {
	case math.IsNaN(v):
		return Rating{Label: "Unknown Risk", Severity: SeverityUnknown}
	case v < scoreWarningFloor:
		return Rating{Label: "High Risk", Severity: SeverityBad}
	case v < scoreGoodFloor:
		return Rating{Label: "Medium Risk", Severity: SeverityWarning}
	default:
		return Rating{Label: "Low Risk", Severity: SeverityGood}
	}
}

// Flag classifies a boolean or tri-state flag. Accepts bool, string, and
// pointer-free nil; anything unrecognized lands in the unknown bucket.
func Flag(v any) Rating {
	switch t := v.(type) {
	case bool:
		if t {
			return Rating{Label: "Yes", Severity: SeverityGood}
		}
		return Rating{Label: "No", Severity: SeverityBad}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return Rating{Label: "Yes", Severity: SeverityGood}
		case "false":
			return Rating{Label: "No", Severity: SeverityBad}
		case "partial":
			return Rating{Label: "Partially Resistant", Severity: SeverityWarning}
		}
	}
	return Rating{Label: "Unknown", Severity: SeverityUnknown}
}

// Compliance classifies a Graph compliance-state string, case-insensitively.
func Compliance(s string) Rating {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compliant":
		return Rating{Label: "Compliant", Severity: SeverityGood}
	case "noncompliant":
		return Rating{Label: "Noncompliant", Severity: SeverityBad}
	default:
		return Rating{Label: "Unknown", Severity: SeverityUnknown}
	}
}
