package admins_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	apperrors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/admins"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admins Service Suite")
}

// MockRepository implements admins.RepositoryAPI in memory.
type MockRepository struct {
	accounts   map[int64]*userDatamodel.User
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{accounts: make(map[int64]*userDatamodel.User), nextID: 1}
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) List(filter admins.ListFilter) ([]*userDatamodel.User, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var rows []*userDatamodel.User
	for _, account := range m.accounts {
		if account.UserType != userDatamodel.TypeAdmin {
			continue
		}
		if filter.ExcludeID != 0 && account.ID == filter.ExcludeID {
			continue
		}
		rows = append(rows, account)
	}
	return rows, int64(len(rows)), nil
}

func (m *MockRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	account := m.accounts[id]
	if account == nil || account.UserType != userDatamodel.TypeAdmin {
		return nil, nil
	}
	return account, nil
}

func (m *MockRepository) FindByEmail(email string, excludeID int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, account := range m.accounts {
		if account.Email == email && account.ID != excludeID {
			return account, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	u.ID = m.nextID
	m.nextID++
	m.accounts[u.ID] = u
	return nil
}

func (m *MockRepository) Update(u *userDatamodel.User) error {
	if m.shouldFail {
		return m.failError
	}
	m.accounts[u.ID] = u
	return nil
}

type recordingAuditor struct {
	records []audit.Record
}

func (r *recordingAuditor) Record(_ context.Context, rec audit.Record) {
	r.records = append(r.records, rec)
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

var _ = Describe("Admins Service", func() {
	var (
		mockRepo *MockRepository
		auditor  *recordingAuditor
		service  *admins.Service
		ctx      context.Context
	)

	const actorID = int64(1)

	validCreate := func() *admins.CreateSubAdminDTO {
		return &admins.CreateSubAdminDTO{
			Name:     "Nigar",
			Email:    "nigar@example.com",
			Password: "long-enough-1",
			Role:     string(permissions.RoleContentAdmin),
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		auditor = &recordingAuditor{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = admins.NewService(mockRepo, permissions.NewTable(), auditor, bcrypt.MinCost, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("creates an active admin account with a hashed password", func() {
			resp, err := service.Create(ctx, validCreate(), actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.ID).NotTo(BeZero())
			Expect(resp.IsActive).To(BeTrue())
			Expect(resp.Role).To(Equal(permissions.RoleContentAdmin))

			stored := mockRepo.accounts[resp.ID]
			Expect(stored.UserType).To(Equal(userDatamodel.TypeAdmin))
			Expect(stored.PasswordHash).NotTo(Equal("long-enough-1"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough-1"))).To(Succeed())
		})

		It("resolves role permissions and keeps custom permissions empty", func() {
			resp, err := service.Create(ctx, validCreate(), actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.RolePermissions).To(ContainElement(permissions.ManageContent))
			Expect(resp.CustomPermissions).NotTo(BeNil())
			Expect(resp.CustomPermissions).To(BeEmpty())
		})

		It("writes an audit record with email and role", func() {
			_, err := service.Create(ctx, validCreate(), actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(auditor.records).To(HaveLen(1))
			rec := auditor.records[0]
			Expect(rec.Action).To(Equal(audit.ActionCreateSubAdmin))
			Expect(rec.Details).To(HaveKeyWithValue("adminEmail", "nigar@example.com"))
			Expect(rec.Details).To(HaveKeyWithValue("adminRole", string(permissions.RoleContentAdmin)))
		})

		It("rejects a duplicate email", func() {
			_, err := service.Create(ctx, validCreate(), actorID)
			Expect(err).NotTo(HaveOccurred())

			dup := validCreate()
			dup.Name = "Someone Else"
			_, err = service.Create(ctx, dup, actorID)
			Expect(err).To(HaveOccurred())
			appErr, _ := apperrors.AsAppError(err)
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmail))
		})

		It("rejects a short password", func() {
			dto := validCreate()
			dto.Password = "short"
			_, err := service.Create(ctx, dto, actorID)
			Expect(err).To(HaveOccurred())
			appErr, _ := apperrors.AsAppError(err)
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("rejects a role outside the fixed set", func() {
			dto := validCreate()
			dto.Role = "GOD_MODE"
			_, err := service.Create(ctx, dto, actorID)
			Expect(err).To(HaveOccurred())
			appErr, _ := apperrors.AsAppError(err)
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("Update", func() {
		var adminID int64

		BeforeEach(func() {
			resp, err := service.Create(ctx, validCreate(), actorID)
			Expect(err).NotTo(HaveOccurred())
			adminID = resp.ID
			auditor.records = nil
		})

		It("returns not found for an unknown admin", func() {
			_, err := service.Update(ctx, &admins.UpdateSubAdminDTO{AdminID: 999}, actorID)
			Expect(err).To(Equal(apperrors.ErrAdminNotFound))
		})

		It("applies only the provided fields", func() {
			resp, err := service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID: adminID,
				Notes:   strptr("on probation"),
			}, actorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("Nigar"))
			Expect(resp.Notes).To(Equal("on probation"))
		})

		It("re-resolves permissions after a role change", func() {
			resp, err := service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID: adminID,
				Role:    strptr(string(permissions.RoleModerator)),
			}, actorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.RolePermissions).To(ContainElement(permissions.ManageUsers))
		})

		It("rejects changing the email to one already taken", func() {
			other := validCreate()
			other.Email = "taken@example.com"
			_, err := service.Create(ctx, other, actorID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID: adminID,
				Email:   strptr("taken@example.com"),
			}, actorID)
			Expect(err).To(HaveOccurred())
			appErr, _ := apperrors.AsAppError(err)
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmail))
		})

		It("allows re-submitting the current email unchanged", func() {
			_, err := service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID: adminID,
				Email:   strptr("nigar@example.com"),
			}, actorID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("hashes a changed password and masks it in the audit trail", func() {
			_, err := service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID:  adminID,
				Password: strptr("another-secret-1"),
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			stored := mockRepo.accounts[adminID]
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another-secret-1"))).To(Succeed())

			Expect(auditor.records).To(HaveLen(1))
			changes, ok := auditor.records[0].Details["changes"].(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(changes).To(HaveKeyWithValue("password", "updated"))
		})

		It("can deactivate an account", func() {
			resp, err := service.Update(ctx, &admins.UpdateSubAdminDTO{
				AdminID:  adminID,
				IsActive: boolptr(false),
			}, actorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsActive).To(BeFalse())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			first := validCreate()
			_, err := service.Create(ctx, first, actorID)
			Expect(err).NotTo(HaveOccurred())

			second := validCreate()
			second.Email = "second@example.com"
			_, err = service.Create(ctx, second, actorID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("excludes the caller from the page", func() {
			resp, err := service.List(admins.ListFilter{ExcludeID: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Admins).To(HaveLen(1))
			Expect(resp.Admins[0].ID).To(Equal(int64(2)))
		})

		It("fills the pagination envelope with normalized defaults", func() {
			resp, err := service.List(admins.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Pagination.Page).To(Equal(1))
			Expect(resp.Pagination.Limit).To(Equal(20))
			Expect(resp.Pagination.Total).To(Equal(int64(2)))
		})
	})
})
