package dto

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// CreateUserRequest defines the structure for creating a user.
type CreateUserRequest struct {
	CompanyID string `json:"companyID" binding:"required,uuid"`
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required,max=255"`
	Role      string `json:"role" binding:"required,oneof=ADMIN MAKER APPROVER"`
	Password  string `json:"password" binding:"required,min=8"`
}

// UserResponse defines the API shape of a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	UserID    string    `json:"userID"`
	CompanyID string    `json:"companyID"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// CreateCompanyRequest defines the structure for registering a company.
type CreateCompanyRequest struct {
	CompanyName       string `json:"companyName" binding:"required,max=255"`
	RegisteredCountry string `json:"registeredCountry" binding:"required,len=2,alpha"`
	IndustrySector    string `json:"industrySector" binding:"omitempty,max=100"`
	FXVolumeBand      string `json:"fxVolumeBand" binding:"omitempty,max=50"`
}

// CompanyResponse defines the API shape of a company.
type CompanyResponse struct {
	CompanyID         string    `json:"companyID"`
	CompanyName       string    `json:"companyName"`
	RegisteredCountry string    `json:"registeredCountry"`
	IndustrySector    string    `json:"industrySector,omitempty"`
	FXVolumeBand      string    `json:"fxVolumeBand,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:         c.CompanyID,
		CompanyName:       c.CompanyName,
		RegisteredCountry: c.RegisteredCountry,
		IndustrySector:    c.IndustrySector,
		FXVolumeBand:      c.FXVolumeBand,
		CreatedAt:         c.CreatedAt,
	}
}
