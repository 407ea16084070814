// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
)

// APIResponse is the common response envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO carries a structured error to the client.
type ErrorDTO struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// PaginationResponse is the pagination metadata attached to list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SuccessResponse wraps data in the envelope.
func SuccessResponse(data interface{}, traceID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorResponse wraps an error in the envelope. AppErrors keep their code and
// details; anything else is reported as an internal error without leaking the
// cause.
func ErrorResponse(err error, traceID string) *APIResponse {
	var errorDTO *ErrorDTO

	if appErr, ok := errors.As(err); ok {
		errorDTO = &ErrorDTO{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}
	} else {
		errorDTO = &ErrorDTO{
			Code:    string(constants.ErrCodeInternal),
			Message: "internal server error",
		}
	}

	return &APIResponse{
		Success:   false,
		Error:     errorDTO,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// NewPagination builds pagination metadata.
func NewPagination(page, pageSize int, total int64) PaginationResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
