package dto

import "time"

// CreateReportRequest is the body of POST /tenants/:id/reports. Exactly one of
// quarter or month must be set.
type CreateReportRequest struct {
	Year    int `json:"year" validate:"required,min=2000,max=2100"`
	Quarter int `json:"quarter" validate:"omitempty,min=1,max=4"`
	Month   int `json:"month" validate:"omitempty,min=1,max=12"`
}

// UpdateReportRequest is the body of PUT /reports/:id. Only draft and review
// reports accept it.
type UpdateReportRequest struct {
	Scores  *RiskScoresDTO `json:"scores,omitempty"`
	Comment *CommentInput  `json:"comment,omitempty"`
}

// CommentInput is a new analyst comment.
type CommentInput struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// SendReportRequest is the body of POST /reports/:id/send.
type SendReportRequest struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
}

// RiskScoresDTO mirrors the per-category scores.
type RiskScoresDTO struct {
	Overall  float64 `json:"overall" validate:"min=0,max=100"`
	Identity float64 `json:"identity" validate:"min=0,max=100"`
	Training float64 `json:"training" validate:"min=0,max=100"`
	Device   float64 `json:"device" validate:"min=0,max=100"`
	Cloud    float64 `json:"cloud" validate:"min=0,max=100"`
	Threat   float64 `json:"threat" validate:"min=0,max=100"`
}

// CommentResponse is a rendered analyst comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportResponse is a report rendered for the API.
type ReportResponse struct {
	ID         string            `json:"id"`
	TenantID   string            `json:"tenant_id"`
	Period     string            `json:"period"`
	Year       int               `json:"year"`
	Quarter    int               `json:"quarter,omitempty"`
	Month      int               `json:"month,omitempty"`
	Status     string            `json:"status"`
	Scores     RiskScoresDTO     `json:"scores"`
	Comments   []CommentResponse `json:"comments"`
	Recipients []string          `json:"recipients,omitempty"`
	CreatedBy  string            `json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
}

// ReportPeriodResponse is one entry of GET /tenants/:id/report-periods.
type ReportPeriodResponse struct {
	Period   string `json:"period"`
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
}
