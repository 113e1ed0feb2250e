package postgres

import (
	"strings"

	"github.com/Dijital-human/yusu-admin/internal/category"
	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

const countsSelect = `categories.*,
	(SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS products_count,
	(SELECT COUNT(*) FROM categories children WHERE children.parent_id = categories.id) AS children_count`

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(filter category.ListFilter) ([]*catalogDatamodel.CategoryWithCounts, int64, error) {
	query := r.db.Model(&catalogDatamodel.Category{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	switch filter.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	if filter.ParentID != "" {
		query = query.Where("parent_id = ?", filter.ParentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*catalogDatamodel.CategoryWithCounts
	err := query.
		Select(countsSelect).
		Order("name ASC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *CategoryRepository) GetByID(id string) (*catalogDatamodel.Category, error) {
	var cat catalogDatamodel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByIDWithCounts(id string) (*catalogDatamodel.CategoryWithCounts, error) {
	var cat catalogDatamodel.CategoryWithCounts
	err := r.db.Model(&catalogDatamodel.Category{}).
		Select(countsSelect).
		Where("categories.id = ?", id).
		First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// FindByNameInScope looks up a category by exact name within one parent
// scope. A nil parentID means the root scope. excludeID skips the category
// being renamed.
func (r *CategoryRepository) FindByNameInScope(name string, parentID *string, excludeID string) (*catalogDatamodel.Category, error) {
	query := r.db.Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var cat catalogDatamodel.Category
	err := query.First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) ListChildren(parentID string) ([]*catalogDatamodel.Category, error) {
	var children []*catalogDatamodel.Category
	err := r.db.Where("parent_id = ?", parentID).Order("name ASC").Find(&children).Error
	return children, err
}

func (r *CategoryRepository) Create(cat *catalogDatamodel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *catalogDatamodel.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&catalogDatamodel.Category{}).Error
}

// ForceDelete reassigns the category's products and children to
// newParentID (NULL for a former root) and removes the row, all in one
// transaction so a failure cannot leave the category half-deleted.
func (r *CategoryRepository) ForceDelete(id string, newParentID *string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&catalogDatamodel.Product{}).
			Where("category_id = ?", id).
			Update("category_id", newParentID).Error; err != nil {
			return err
		}
		if err := tx.Model(&catalogDatamodel.Category{}).
			Where("parent_id = ?", id).
			Update("parent_id", newParentID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&catalogDatamodel.Category{}).Error
	})
}
