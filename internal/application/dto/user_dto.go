package dto

import "time"

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=128"`
	Role  string `json:"role" validate:"required,oneof=admin analyst viewer"`
}

// UpdateUserRequest is the body of PUT /users/:id.
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=admin analyst viewer"`
	Active *bool   `json:"active,omitempty"`
}

// UserResponse is a user rendered for the API.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInviteRequest is the body of POST /invites.
type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin analyst viewer"`
}

// AcceptInviteRequest is the body of POST /invites/accept.
type AcceptInviteRequest struct {
	Token string `json:"token" validate:"required,len=64"`
	Name  string `json:"name" validate:"required,min=2,max=128"`
}

// InviteResponse is an invite rendered for the API. The token is only included
// on creation.
type InviteResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token,omitempty"`
	InvitedBy  string     `json:"invited_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}
