package models

import (
	"time"

	"github.com/google/uuid"
)

// SecurityMetricSnapshot is one dated posture record for a tenant. Snapshots
// are append-only; the collector writes one per interval and reports seed
// their scores from the latest one.
type SecurityMetricSnapshot struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenant_id"`
	Scores             RiskScores `json:"scores"`
	SecureScorePercent float64    `json:"secure_score_percent"`
	CollectedAt        time.Time  `json:"collected_at"`
}

// NewSnapshot creates a snapshot stamped with the current time.
func NewSnapshot(tenantID string, scores RiskScores, securePct float64) *SecurityMetricSnapshot {
	return &SecurityMetricSnapshot{
		ID:                 uuid.NewString(),
		TenantID:           tenantID,
		Scores:             scores,
		SecureScorePercent: securePct,
		CollectedAt:        time.Now().UTC(),
	}
}
