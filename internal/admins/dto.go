package admins

import (
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/core/common/validation"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

func roleNames() []string {
	names := make([]string, len(permissions.AllRoles))
	for i, r := range permissions.AllRoles {
		names[i] = string(r)
	}
	return names
}

// CreateSubAdminDTO carries a new admin account request.
type CreateSubAdminDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Notes    string `json:"notes,omitempty"`
}

func (d CreateSubAdminDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2)
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8)
	v.Field("role", d.Role).Required().OneOf(roleNames()...)
	return v.Validate()
}

// UpdateSubAdminDTO carries a sparse set of fields; nil pointers mean
// "leave unchanged". AdminID names the target.
type UpdateSubAdminDTO struct {
	AdminID  int64   `json:"adminId"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (d UpdateSubAdminDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("adminId", d.AdminID).Required()
	v.Field("name", d.Name).MinLength(2)
	v.Field("email", d.Email).Email()
	v.Field("password", d.Password).MinLength(8)
	v.Field("role", d.Role).OneOf(roleNames()...)
	return v.Validate()
}

// ListFilter narrows sub-admin listings. ExcludeID drops the caller from
// its own listing.
type ListFilter struct {
	Search    string
	Role      string
	Status    string
	ExcludeID int64
	Page      int
	Limit     int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

// SubAdminResponse annotates an account with the permissions its role
// grants. CustomPermissions is reserved for per-admin grants and is always
// empty today.
type SubAdminResponse struct {
	ID                int64                    `json:"id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	Role              permissions.Role         `json:"role"`
	IsActive          bool                     `json:"isActive"`
	Notes             string                   `json:"notes,omitempty"`
	RolePermissions   []permissions.Permission `json:"rolePermissions"`
	CustomPermissions []permissions.Permission `json:"customPermissions"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

type ListResponse struct {
	Admins     []*SubAdminResponse  `json:"admins"`
	Pagination transport.Pagination `json:"pagination"`
}
