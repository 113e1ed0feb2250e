package postgres_test

import (
	"testing"
	"time"

	"github.com/Dijital-human/yusu-admin/internal/category"
	categoryPostgres "github.com/Dijital-human/yusu-admin/internal/category/postgres"
	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCategoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Postgres Suite")
}

var _ = Describe("Category Repository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	newCategory := func(id, name string, parentID *string, active bool) *catalogDatamodel.Category {
		now := time.Now()
		return &catalogDatamodel.Category{
			ID:        id,
			Name:      name,
			ParentID:  parentID,
			IsActive:  active,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	strptr := func(s string) *string { return &s }

	BeforeEach(func() {
		var err error
		// In-memory SQLite keeps these tests self-contained.
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catalogDatamodel.Category{}, &catalogDatamodel.Product{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("round-trips a category", func() {
			cat := newCategory("cat-1", "Electronics", nil, true)
			cat.Description = "Gadgets"
			cat.Keywords = []string{"tech", "gadgets"}

			Expect(repo.Create(cat)).To(Succeed())

			found, err := repo.GetByID("cat-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.Name).To(Equal("Electronics"))
			Expect(found.Description).To(Equal("Gadgets"))
			Expect(found.Keywords).To(Equal([]string{"tech", "gadgets"}))
		})

		It("returns nil without error for an unknown id", func() {
			found, err := repo.GetByID("nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetByIDWithCounts", func() {
		It("counts owned products and direct children", func() {
			Expect(repo.Create(newCategory("cat-1", "Electronics", nil, true))).To(Succeed())
			Expect(repo.Create(newCategory("cat-2", "Phones", strptr("cat-1"), true))).To(Succeed())
			Expect(repo.Create(newCategory("cat-3", "Smartphones", strptr("cat-2"), true))).To(Succeed())

			Expect(db.Create(&catalogDatamodel.Product{ID: "p-1", Name: "Cable", CategoryID: strptr("cat-1")}).Error).To(Succeed())
			Expect(db.Create(&catalogDatamodel.Product{ID: "p-2", Name: "Charger", CategoryID: strptr("cat-1")}).Error).To(Succeed())

			found, err := repo.GetByIDWithCounts("cat-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ProductsCount).To(Equal(int64(2)))
			Expect(found.ChildrenCount).To(Equal(int64(1)))

			leaf, err := repo.GetByIDWithCounts("cat-3")
			Expect(err).NotTo(HaveOccurred())
			Expect(leaf.ProductsCount).To(BeZero())
			Expect(leaf.ChildrenCount).To(BeZero())
		})
	})

	Describe("FindByNameInScope", func() {
		BeforeEach(func() {
			Expect(repo.Create(newCategory("cat-1", "Electronics", nil, true))).To(Succeed())
			Expect(repo.Create(newCategory("cat-2", "Accessories", strptr("cat-1"), true))).To(Succeed())
		})

		It("matches within the root scope only", func() {
			found, err := repo.FindByNameInScope("Electronics", nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())

			found, err = repo.FindByNameInScope("Accessories", nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("matches within a parent scope only", func() {
			found, err := repo.FindByNameInScope("Accessories", strptr("cat-1"), "")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ID).To(Equal("cat-2"))

			found, err = repo.FindByNameInScope("Electronics", strptr("cat-1"), "")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("skips the excluded id so a rename onto itself is a no-op", func() {
			found, err := repo.FindByNameInScope("Accessories", strptr("cat-1"), "cat-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			active := newCategory("cat-1", "Electronics", nil, true)
			active.Description = "Gadgets and devices"
			Expect(repo.Create(active)).To(Succeed())
			Expect(repo.Create(newCategory("cat-2", "Clothing", nil, true))).To(Succeed())
			inactive := newCategory("cat-3", "Archive", nil, false)
			Expect(repo.Create(inactive)).To(Succeed())
			Expect(repo.Create(newCategory("cat-4", "Phones", strptr("cat-1"), true))).To(Succeed())
		})

		It("orders by name and reports the unfiltered total", func() {
			rows, total, err := repo.List(category.ListFilter{Page: 1, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(4)))
			Expect(rows).To(HaveLen(4))
			Expect(rows[0].Name).To(Equal("Archive"))
			Expect(rows[3].Name).To(Equal("Phones"))
		})

		It("searches name and description case-insensitively", func() {
			rows, total, err := repo.List(category.ListFilter{Search: "GADGET", Page: 1, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(rows[0].Name).To(Equal("Electronics"))
		})

		It("filters by status", func() {
			rows, _, err := repo.List(category.ListFilter{Status: "inactive", Page: 1, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Name).To(Equal("Archive"))
		})

		It("filters by parent", func() {
			rows, _, err := repo.List(category.ListFilter{ParentID: "cat-1", Page: 1, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Name).To(Equal("Phones"))
		})

		It("annotates each row with counts", func() {
			Expect(db.Create(&catalogDatamodel.Product{ID: "p-1", Name: "Laptop", CategoryID: strptr("cat-1")}).Error).To(Succeed())

			rows, _, err := repo.List(category.ListFilter{Search: "electronics", Page: 1, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].ProductsCount).To(Equal(int64(1)))
			Expect(rows[0].ChildrenCount).To(Equal(int64(1)))
		})

		It("pages the result", func() {
			rows, total, err := repo.List(category.ListFilter{Page: 2, Limit: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(4)))
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		It("persists changed fields", func() {
			cat := newCategory("cat-1", "Electronics", nil, true)
			Expect(repo.Create(cat)).To(Succeed())

			cat.Name = "Tech"
			cat.IsActive = false
			Expect(repo.Update(cat)).To(Succeed())

			found, err := repo.GetByID("cat-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Tech"))
			Expect(found.IsActive).To(BeFalse())
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			Expect(repo.Create(newCategory("cat-1", "Electronics", nil, true))).To(Succeed())
			Expect(repo.Delete("cat-1")).To(Succeed())

			found, err := repo.GetByID("cat-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("ForceDelete", func() {
		BeforeEach(func() {
			Expect(repo.Create(newCategory("cat-root", "Electronics", nil, true))).To(Succeed())
			Expect(repo.Create(newCategory("cat-mid", "Phones", strptr("cat-root"), true))).To(Succeed())
			Expect(repo.Create(newCategory("cat-leaf", "Smartphones", strptr("cat-mid"), true))).To(Succeed())
			Expect(db.Create(&catalogDatamodel.Product{ID: "p-1", Name: "Handset", CategoryID: strptr("cat-mid")}).Error).To(Succeed())
		})

		It("reassigns products and children then removes the category", func() {
			Expect(repo.ForceDelete("cat-mid", strptr("cat-root"))).To(Succeed())

			gone, err := repo.GetByID("cat-mid")
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())

			leaf, err := repo.GetByID("cat-leaf")
			Expect(err).NotTo(HaveOccurred())
			Expect(*leaf.ParentID).To(Equal("cat-root"))

			var product catalogDatamodel.Product
			Expect(db.First(&product, "id = ?", "p-1").Error).To(Succeed())
			Expect(*product.CategoryID).To(Equal("cat-root"))
		})

		It("promotes children to roots when the deleted category was a root", func() {
			Expect(repo.ForceDelete("cat-root", nil)).To(Succeed())

			mid, err := repo.GetByID("cat-mid")
			Expect(err).NotTo(HaveOccurred())
			Expect(mid.ParentID).To(BeNil())
		})
	})
})
