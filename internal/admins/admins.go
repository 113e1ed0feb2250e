package admins

import (
	"time"

	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
)

// SubAdmin is the domain view of an admin account managed through the
// back office.
type SubAdmin struct {
	ID        int64
	Name      string
	Email     string
	Role      permissions.Role
	IsActive  bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func FromDataModel(u *userDatamodel.User) *SubAdmin {
	return &SubAdmin{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      permissions.Role(u.AdminRole),
		IsActive:  u.IsActive,
		Notes:     u.Notes,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
