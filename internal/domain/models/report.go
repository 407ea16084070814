package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
)

// RiskScores holds the per-category posture scores for one reporting period.
// All scores are 0-100 percentages.
type RiskScores struct {
	Overall  float64 `json:"overall"`
	Identity float64 `json:"identity"`
	Training float64 `json:"training"`
	Device   float64 `json:"device"`
	Cloud    float64 `json:"cloud"`
	Threat   float64 `json:"threat"`
}

// Category returns the score for a named category.
func (s RiskScores) Category(c constants.RiskCategory) float64 {
	switch c {
	case constants.CategoryIdentity:
		return s.Identity
	case constants.CategoryTraining:
		return s.Training
	case constants.CategoryDevice:
		return s.Device
	case constants.CategoryCloud:
		return s.Cloud
	case constants.CategoryThreat:
		return s.Threat
	default:
		return 0
	}
}

// Period identifies the reporting window of a report. Either Quarter (1-4) or
// Month (1-12) is set, never both.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter,omitempty"`
	Month   int `json:"month,omitempty"`
}

// Validate checks that the period identifies exactly one window.
func (p Period) Validate() error {
	if p.Year < 2000 || p.Year > 2100 {
		return errors.ErrInvalidRequest("period year out of range")
	}
	if (p.Quarter == 0) == (p.Month == 0) {
		return errors.ErrInvalidRequest("period must set exactly one of quarter or month")
	}
	if p.Quarter < 0 || p.Quarter > 4 {
		return errors.ErrInvalidRequest("period quarter must be 1-4")
	}
	if p.Month < 0 || p.Month > 12 {
		return errors.ErrInvalidRequest("period month must be 1-12")
	}
	return nil
}

// String renders the period as a display key, e.g. "2026-Q1" or "2026-03".
func (p Period) String() string {
	if p.Quarter > 0 {
		return fmt.Sprintf("%d-Q%d", p.Year, p.Quarter)
	}
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// Comment is an analyst comment or recommendation attached to a report.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is a point-in-time, per-tenant snapshot of risk scores assembled for
// client delivery. It moves through draft -> review -> approved -> sent and is
// immutable once sent.
type Report struct {
	ID         string                 `json:"id"`
	TenantID   string                 `json:"tenant_id"`
	Period     Period                 `json:"period"`
	Status     constants.ReportStatus `json:"status"`
	Scores     RiskScores             `json:"scores"`
	Comments   []Comment              `json:"comments"`
	Recipients []string               `json:"recipients"`
	CreatedBy  string                 `json:"created_by"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	SentAt     *time.Time             `json:"sent_at,omitempty"`
}

// NewReport creates a draft report for a tenant and period. Scores are seeded
// from the latest metric snapshot at creation time.
func NewReport(tenantID string, period Period, scores RiskScores, createdBy string) *Report {
	now := time.Now().UTC()
	return &Report{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Period:    period,
		Status:    constants.ReportStatusDraft,
		Scores:    scores,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsSent reports whether the report has been delivered.
func (r *Report) IsSent() bool {
	return r.Status == constants.ReportStatusSent
}

// Mutable reports whether content edits are still allowed. Approved reports
// can only transition, not change content.
func (r *Report) Mutable() bool {
	return r.Status == constants.ReportStatusDraft || r.Status == constants.ReportStatusReview
}

// Submit moves a draft report into review.
func (r *Report) Submit() error {
	return r.transition(constants.ReportStatusDraft, constants.ReportStatusReview)
}

// Approve moves a report from review to approved.
func (r *Report) Approve() error {
	return r.transition(constants.ReportStatusReview, constants.ReportStatusApproved)
}

// Send marks an approved report as delivered to the given recipients. After
// this the report is immutable.
func (r *Report) Send(recipients []string) error {
	if err := r.transition(constants.ReportStatusApproved, constants.ReportStatusSent); err != nil {
		return err
	}
	now := time.Now().UTC()
	r.SentAt = &now
	if len(recipients) > 0 {
		r.Recipients = recipients
	}
	return nil
}

// AddComment appends an analyst comment. Rejected once the report is sent.
func (r *Report) AddComment(author, body string) error {
	if r.IsSent() {
		return errors.ErrConflict("report has been sent and is immutable")
	}
	r.Comments = append(r.Comments, Comment{
		ID:        uuid.NewString(),
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateScores replaces the category scores. Rejected unless the report is
// still mutable.
func (r *Report) UpdateScores(scores RiskScores) error {
	if !r.Mutable() {
		return errors.ErrConflict(
			fmt.Sprintf("report in status %q cannot be modified", r.Status))
	}
	r.Scores = scores
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *Report) transition(from, to constants.ReportStatus) error {
	if r.Status != from {
		return errors.ErrConflict(
			fmt.Sprintf("invalid report transition %q -> %q", r.Status, to))
	}
	r.Status = to
	r.UpdatedAt = time.Now().UTC()
	return nil
}
