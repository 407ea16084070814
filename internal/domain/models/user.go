package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/constants"
)

// User is a staff member of the managed-service provider.
type User struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	Role      constants.UserRole `json:"role"`
	Active    bool               `json:"active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewUser creates an active user with the given role.
func NewUser(email, name string, role constants.UserRole) *User {
	now := time.Now().UTC()
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
