package category

import (
	"time"

	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
)

// Category is the domain view of one classification node. ParentID nil
// means root.
type Category struct {
	ID              string
	Name            string
	Description     string
	Image           string
	ParentID        *string
	IsActive        bool
	SortOrder       int
	MetaTitle       string
	MetaDescription string
	Keywords        []string
	Icon            string
	Color           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	ProductsCount int64
	ChildrenCount int64
}

func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func FromDataModel(dm *catalogDatamodel.Category) *Category {
	return &Category{
		ID:              dm.ID,
		Name:            dm.Name,
		Description:     dm.Description,
		Image:           dm.Image,
		ParentID:        dm.ParentID,
		IsActive:        dm.IsActive,
		SortOrder:       dm.SortOrder,
		MetaTitle:       dm.MetaTitle,
		MetaDescription: dm.MetaDescription,
		Keywords:        dm.Keywords,
		Icon:            dm.Icon,
		Color:           dm.Color,
		CreatedAt:       dm.CreatedAt,
		UpdatedAt:       dm.UpdatedAt,
	}
}

func FromDataModelWithCounts(dm *catalogDatamodel.CategoryWithCounts) *Category {
	c := FromDataModel(&dm.Category)
	c.ProductsCount = dm.ProductsCount
	c.ChildrenCount = dm.ChildrenCount
	return c
}

func ToDataModel(c *Category) *catalogDatamodel.Category {
	return &catalogDatamodel.Category{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Image:           c.Image,
		ParentID:        c.ParentID,
		IsActive:        c.IsActive,
		SortOrder:       c.SortOrder,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		Keywords:        c.Keywords,
		Icon:            c.Icon,
		Color:           c.Color,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
