package postgres

import (
	"strings"

	"github.com/Dijital-human/yusu-admin/internal/admins"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) admins.RepositoryAPI {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) List(filter admins.ListFilter) ([]*userDatamodel.User, int64, error) {
	query := r.db.Model(&userDatamodel.User{}).
		Where("user_type = ?", userDatamodel.TypeAdmin)

	if filter.ExcludeID != 0 {
		query = query.Where("id <> ?", filter.ExcludeID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("admin_role = ?", filter.Role)
	}
	switch filter.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*userDatamodel.User
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *AdminRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var account userDatamodel.User
	err := r.db.
		Where("id = ? AND user_type = ?", id, userDatamodel.TypeAdmin).
		First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindByEmail matches any account type: the email column is unique across
// the whole users table, not just admins.
func (r *AdminRepository) FindByEmail(email string, excludeID int64) (*userDatamodel.User, error) {
	query := r.db.Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var account userDatamodel.User
	err := query.First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AdminRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *AdminRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}
