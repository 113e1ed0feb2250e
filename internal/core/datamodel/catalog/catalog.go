package catalog

import "time"

// Category is the persisted shape of a product-classification node.
// ParentID is nil for roots. Names are unique per parent scope; the
// service enforces this with a lookup before writing, the storage layer
// backs it with a composite index.
type Category struct {
	ID              string    `gorm:"primaryKey;column:id"`
	Name            string    `gorm:"column:name;not null;index:idx_categories_parent_name"`
	Description     string    `gorm:"column:description"`
	Image           string    `gorm:"column:image"`
	ParentID        *string   `gorm:"column:parent_id;index;index:idx_categories_parent_name"`
	IsActive        bool      `gorm:"column:is_active;default:true"`
	SortOrder       int       `gorm:"column:sort_order;default:0"`
	MetaTitle       string    `gorm:"column:meta_title"`
	MetaDescription string    `gorm:"column:meta_description"`
	Keywords        []string  `gorm:"column:keywords;serializer:json"`
	Icon            string    `gorm:"column:icon"`
	Color           string    `gorm:"column:color"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryWithCounts annotates a category row with the number of products
// and direct children it owns. Populated by the list query, not stored.
type CategoryWithCounts struct {
	Category
	ProductsCount int64 `gorm:"column:products_count"`
	ChildrenCount int64 `gorm:"column:children_count"`
}

// Product carries only the fields the admin core touches: delete-with-force
// reassigns products between categories, nothing more.
type Product struct {
	ID         string    `gorm:"primaryKey;column:id"`
	Name       string    `gorm:"column:name;not null"`
	CategoryID *string   `gorm:"column:category_id;index"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}
