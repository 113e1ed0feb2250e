package postgres

import (
	"github.com/Dijital-human/yusu-admin/internal/audit"
	auditDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository is the append-only store behind the audit trail.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(entry *auditDatamodel.Entry) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) List(filter audit.ListFilter) ([]*auditDatamodel.Entry, int64, error) {
	query := r.db.Model(&auditDatamodel.Entry{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*auditDatamodel.Entry
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&entries).Error
	return entries, total, err
}
