package classify_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mspsec/riskboard/internal/domain/classify"
)

func TestScore_Bands(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  classify.Severity
	}{
		{"zero", 0, classify.SeverityBad},
		{"just below warning floor", 39.9, classify.SeverityBad},
		{"warning floor inclusive", 40, classify.SeverityWarning},
		{"mid warning", 55, classify.SeverityWarning},
		{"just below good floor", 69.99, classify.SeverityWarning},
		{"good floor inclusive", 70, classify.SeverityGood},
		{"typical good", 75, classify.SeverityGood},
		{"full score", 100, classify.SeverityGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Score(tt.score).Severity)
		})
	}
}

func TestScore_SweepMatchesBands(t *testing.T) {
	for v := 0.0; v < 100.0; v += 0.5 {
		got := classify.Score(v).Severity
		switch {
		case v < 40:
			assert.Equal(t, classify.SeverityBad, got, "score %v", v)
		case v < 70:
			assert.Equal(t, classify.SeverityWarning, got, "score %v", v)
		default:
			assert.Equal(t, classify.SeverityGood, got, "score %v", v)
		}
	}
}

func TestScore_Labels(t *testing.T) {
	assert.Equal(t, "Good", classify.Score(75).Label)
	assert.Equal(t, "Fair", classify.Score(50).Label)
	assert.Equal(t, "Poor", classify.Score(10).Label)
}

func TestScore_NaN(t *testing.T) {
	assert.Equal(t, classify.SeverityUnknown, classify.Score(math.NaN()).Severity)
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  classify.Rating
	}{
		{"high risk", 20, classify.Rating{Label: "High Risk", Severity: classify.SeverityBad}},
		{"medium risk", 50, classify.Rating{Label: "Medium Risk", Severity: classify.SeverityWarning}},
		{"low risk", 80, classify.Rating{Label: "Low Risk", Severity: classify.SeverityGood}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.RiskLevel(tt.score))
		})
	}
}

func TestFlag(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  classify.Rating
	}{
		{"bool true", true, classify.Rating{Label: "Yes", Severity: classify.SeverityGood}},
		{"string true", "true", classify.Rating{Label: "Yes", Severity: classify.SeverityGood}},
		{"bool false", false, classify.Rating{Label: "No", Severity: classify.SeverityBad}},
		{"string false", "false", classify.Rating{Label: "No", Severity: classify.SeverityBad}},
		{"partial", "partial", classify.Rating{Label: "Partially Resistant", Severity: classify.SeverityWarning}},
		{"mixed case partial", "Partial", classify.Rating{Label: "Partially Resistant", Severity: classify.SeverityWarning}},
		{"nil", nil, classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
		{"garbage", "garbage", classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
		{"number", 42, classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Flag(tt.value))
		})
	}
}

func TestFlag_BoolAndStringAgree(t *testing.T) {
	assert.Equal(t, classify.Flag(true), classify.Flag("true"))
	assert.Equal(t, classify.Flag(false), classify.Flag("false"))
}

func TestCompliance(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  classify.Rating
	}{
		{"compliant", "compliant", classify.Rating{Label: "Compliant", Severity: classify.SeverityGood}},
		{"uppercase compliant", "COMPLIANT", classify.Rating{Label: "Compliant", Severity: classify.SeverityGood}},
		{"noncompliant", "noncompliant", classify.Rating{Label: "Noncompliant", Severity: classify.SeverityBad}},
		{"unknown state", "Unknown", classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
		{"empty", "", classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
		{"garbage", "in-grace-period", classify.Rating{Label: "Unknown", Severity: classify.SeverityUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Compliance(tt.state))
		})
	}
}

func TestCompliance_CaseInsensitive(t *testing.T) {
	assert.Equal(t, classify.Compliance("compliant"), classify.Compliance("COMPLIANT"))
	assert.Equal(t, classify.Compliance("noncompliant"), classify.Compliance("NonCompliant"))
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "green", classify.SeverityGood.Color())
	assert.Equal(t, "yellow", classify.SeverityWarning.Color())
	assert.Equal(t, "red", classify.SeverityBad.Color())
	assert.Equal(t, "gray", classify.SeverityUnknown.Color())
}
