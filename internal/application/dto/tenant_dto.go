package dto

import "time"

// CreateTenantRequest is the body of POST /tenants.
type CreateTenantRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=128"`
	Industry string `json:"industry" validate:"max=64"`
}

// UpdateTenantRequest is the body of PUT /tenants/:id. Nil fields are left
// unchanged.
type UpdateTenantRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Industry *string `json:"industry,omitempty" validate:"omitempty,max=64"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active suspended"`
}

// TenantResponse is a tenant rendered for the API.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListTenantsRequest carries list pagination.
type ListTenantsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ListTenantsResponse is the paginated tenant list.
type ListTenantsResponse struct {
	Tenants    []TenantResponse   `json:"tenants"`
	Pagination PaginationResponse `json:"pagination"`
}
