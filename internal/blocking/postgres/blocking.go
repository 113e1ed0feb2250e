package postgres

import (
	"strings"
	"time"

	"github.com/Dijital-human/yusu-admin/internal/blocking"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type BlockingRepository struct {
	db *gorm.DB
}

func NewBlockingRepository(db *gorm.DB) blocking.RepositoryAPI {
	return &BlockingRepository{db: db}
}

func (r *BlockingRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *BlockingRepository) ListBlocked(filter blocking.ListFilter) ([]*userDatamodel.User, int64, error) {
	query := r.db.Model(&userDatamodel.User{}).
		Where("is_blocked = ?", true)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.BlockType != "" {
		query = query.Where("block_type = ?", filter.BlockType)
	}
	if filter.Severity != "" {
		query = query.Where("block_severity = ?", filter.Severity)
	}
	switch filter.Status {
	case blocking.StatusPermanent:
		query = query.Where("blocked_until IS NULL")
	case blocking.StatusActive:
		query = query.Where("blocked_until > ?", time.Now())
	case blocking.StatusExpired:
		query = query.Where("blocked_until <= ?", time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*userDatamodel.User
	err := query.
		Order("blocked_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *BlockingRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}
