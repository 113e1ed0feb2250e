package category_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/category"
	categoryPostgres "github.com/Dijital-human/yusu-admin/internal/category/postgres"
	catalogDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/catalog"
	"github.com/Dijital-human/yusu-admin/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
		auditor *recordingAuditor
	)

	withActor := func(r *http.Request) *http.Request {
		return r.WithContext(internal.ContextWithAdminID(r.Context(), 7))
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catalogDatamodel.Category{}, &catalogDatamodel.Product{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		auditor = &recordingAuditor{}
		service = category.NewService(repo, auditor, slogger)
		handler = category.NewHandler(transport.NewBaseHandler(slogger), service)
	})

	Describe("GET /categories", func() {
		BeforeEach(func() {
			for _, cat := range []*catalogDatamodel.Category{
				{ID: "cat-1", Name: "Electronics", IsActive: true},
				{ID: "cat-2", Name: "Clothing", IsActive: true},
			} {
				Expect(repo.Create(cat)).To(Succeed())
			}
		})

		It("returns the category listing as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response category.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.FlatCategories).To(HaveLen(2))
			Expect(response.Pagination.Total).To(Equal(int64(2)))
		})

		It("passes the status filter through", func() {
			inactive := &catalogDatamodel.Category{ID: "cat-3", Name: "Archive", IsActive: false}
			Expect(repo.Create(inactive)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/categories?status=inactive", nil)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			var response category.ListResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.FlatCategories).To(HaveLen(1))
			Expect(response.FlatCategories[0].Name).To(Equal("Archive"))
		})
	})

	Describe("POST /categories", func() {
		It("creates a category and echoes it back", func() {
			body, _ := json.Marshal(map[string]interface{}{"name": "Electronics"})
			req := withActor(httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var response struct {
				Message  string                    `json:"message"`
				Category category.CategoryResponse `json:"category"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Category.Name).To(Equal("Electronics"))
			Expect(response.Category.IsActive).To(BeTrue())

			Expect(auditor.records).To(HaveLen(1))
			Expect(auditor.records[0].ActorID).To(Equal(int64(7)))
		})

		It("rejects an invalid body with 400", func() {
			req := withActor(httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte("{not json"))))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps validation failures to 400 with field errors", func() {
			body, _ := json.Marshal(map[string]interface{}{"name": "X"})
			req := withActor(httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps duplicate names to 409", func() {
			Expect(repo.Create(&catalogDatamodel.Category{ID: "cat-1", Name: "Electronics", IsActive: true})).To(Succeed())

			body, _ := json.Marshal(map[string]interface{}{"name": "Electronics"})
			req := withActor(httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body)))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	Describe("category lifecycle", func() {
		It("walks create, collide, rename, blocked delete, forced delete", func() {
			ctx := internal.ContextWithAdminID(context.Background(), 7)

			electronics, err := service.Create(ctx, &category.CreateCategoryDTO{Name: "Electronics"}, 7)
			Expect(err).NotTo(HaveOccurred())

			phones, err := service.Create(ctx, &category.CreateCategoryDTO{
				Name:     "Phones",
				ParentID: &electronics.ID,
			}, 7)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, &category.CreateCategoryDTO{
				Name:     "Phones",
				ParentID: &electronics.ID,
			}, 7)
			appErr, _ := internal.AsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateCategory))

			renamed := "Smartphones"
			_, err = service.Update(ctx, &category.UpdateCategoryDTO{
				CategoryID: phones.ID,
				Name:       &renamed,
			}, 7)
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(ctx, electronics.ID, false, 7)
			appErr, _ = internal.AsAppError(err)
			Expect(appErr.Code).To(Equal(internal.ErrCodeCategoryNotEmpty))
			details, ok := appErr.Details.(internal.DeleteConflictDetails)
			Expect(ok).To(BeTrue())
			Expect(details.ChildrenCount).To(Equal(int64(1)))

			Expect(service.Delete(ctx, electronics.ID, true, 7)).To(Succeed())

			gone, err := repo.GetByID(electronics.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())

			promoted, err := repo.GetByID(phones.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(promoted.Name).To(Equal("Smartphones"))
			Expect(promoted.ParentID).To(BeNil())
		})
	})

	Describe("DELETE /categories", func() {
		It("requires an id", func() {
			req := withActor(httptest.NewRequest(http.MethodDelete, "/categories", nil))
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("refuses to delete a non-empty category without force", func() {
			Expect(repo.Create(&catalogDatamodel.Category{ID: "cat-1", Name: "Electronics", IsActive: true})).To(Succeed())
			Expect(db.Create(&catalogDatamodel.Product{ID: "p-1", Name: "Laptop", CategoryID: ptrTo("cat-1")}).Error).To(Succeed())

			req := withActor(httptest.NewRequest(http.MethodDelete, "/categories?id=cat-1", nil))
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("force-deletes it", func() {
			Expect(repo.Create(&catalogDatamodel.Category{ID: "cat-1", Name: "Electronics", IsActive: true})).To(Succeed())
			Expect(db.Create(&catalogDatamodel.Product{ID: "p-1", Name: "Laptop", CategoryID: ptrTo("cat-1")}).Error).To(Succeed())

			req := withActor(httptest.NewRequest(http.MethodDelete, "/categories?id=cat-1&force=true", nil))
			w := httptest.NewRecorder()

			handler.DeleteCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			gone, err := repo.GetByID("cat-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})
	})
})

func ptrTo(s string) *string { return &s }
