package category

import (
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/core/common/validation"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

// CreateCategoryDTO is the request payload for creating a category.
type CreateCategoryDTO struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Image           string   `json:"image,omitempty"`
	ParentID        *string  `json:"parentId,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
	SortOrder       *int     `json:"sortOrder,omitempty"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Icon            string   `json:"icon,omitempty"`
	Color           string   `json:"color,omitempty"`
}

func (d CreateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2)
	return v.Validate()
}

// UpdateCategoryDTO carries a sparse set of fields; nil pointers mean
// "leave unchanged". CategoryID names the target.
type UpdateCategoryDTO struct {
	CategoryID      string    `json:"categoryId"`
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Image           *string   `json:"image,omitempty"`
	ParentID        *string   `json:"parentId,omitempty"`
	IsActive        *bool     `json:"isActive,omitempty"`
	SortOrder       *int      `json:"sortOrder,omitempty"`
	MetaTitle       *string   `json:"metaTitle,omitempty"`
	MetaDescription *string   `json:"metaDescription,omitempty"`
	Keywords        *[]string `json:"keywords,omitempty"`
	Icon            *string   `json:"icon,omitempty"`
	Color           *string   `json:"color,omitempty"`
}

func (d UpdateCategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("categoryId", d.CategoryID).Required()
	v.Field("name", d.Name).MinLength(2)
	return v.Validate()
}

// ListFilter narrows category listings. Status is "active", "inactive" or
// empty for both.
type ListFilter struct {
	Search   string
	Status   string
	ParentID string
	Page     int
	Limit    int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}
}

// RefResponse is the short parent/child reference embedded in responses.
type RefResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// CountResponse mirrors the _count annotation of the original API.
type CountResponse struct {
	Products int64 `json:"products"`
	Children int64 `json:"children"`
}

// CategoryResponse is the transport shape of one category. Children is only
// populated in the hierarchical view.
type CategoryResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Image           string             `json:"image,omitempty"`
	ParentID        *string            `json:"parentId"`
	IsActive        bool               `json:"isActive"`
	SortOrder       int                `json:"sortOrder"`
	MetaTitle       string             `json:"metaTitle,omitempty"`
	MetaDescription string             `json:"metaDescription,omitempty"`
	Keywords        []string           `json:"keywords,omitempty"`
	Icon            string             `json:"icon,omitempty"`
	Color           string             `json:"color,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Parent          *RefResponse       `json:"parent,omitempty"`
	Children        []CategoryResponse `json:"children,omitempty"`
	Count           CountResponse      `json:"_count"`
}

// ListResponse returns both views of the same page: the hierarchy is
// reconstructed from the flat page only, so subtrees whose members fall
// outside the page are intentionally partial.
type ListResponse struct {
	Categories     []CategoryResponse   `json:"categories"`
	FlatCategories []CategoryResponse   `json:"flatCategories"`
	Pagination     transport.Pagination `json:"pagination"`
}

func toResponse(c *Category) CategoryResponse {
	return CategoryResponse{
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
		Count: CountResponse{
			Products: c.ProductsCount,
			Children: c.ChildrenCount,
		},
	}
}
