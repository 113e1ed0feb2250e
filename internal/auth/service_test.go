package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	apperrors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/auth"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockRepository implements auth.RepositoryAPI in memory.
type MockRepository struct {
	accounts   map[int64]*userDatamodel.User
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{accounts: make(map[int64]*userDatamodel.User)}
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) GetAdminByEmail(email string) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, account := range m.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetAdminByID(id int64) (*userDatamodel.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.accounts[id], nil
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo *MockRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
		admin    *userDatamodel.User
	)

	const password = "super-secret-1"

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		tokenGen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokenGen, permissions.NewTable(), bcrypt.MinCost, logger)

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		admin = &userDatamodel.User{
			ID:           42,
			Name:         "Aysel",
			Email:        "aysel@example.com",
			PasswordHash: string(hash),
			UserType:     userDatamodel.TypeAdmin,
			AdminRole:    string(permissions.RoleModerator),
			IsActive:     true,
		}
		mockRepo.accounts[admin.ID] = admin
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: password})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("42"))
			Expect(claims.Email).To(Equal(admin.Email))
			Expect(claims.Role).To(Equal(string(permissions.RoleModerator)))
		})

		It("rejects a malformed email before touching storage", func() {
			mockRepo.SetShouldFail(true, nil)

			_, err := service.Authenticate(auth.LoginDTO{Email: "not-an-email", Password: password})
			Expect(err).To(HaveOccurred())
			appErr, _ := apperrors.AsAppError(err)
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("answers unknown email and wrong password identically", func() {
			_, unknownErr := service.Authenticate(auth.LoginDTO{Email: "ghost@example.com", Password: password})
			_, wrongErr := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: "wrong-password"})

			Expect(unknownErr).To(Equal(apperrors.ErrInvalidCredentials))
			Expect(wrongErr).To(Equal(apperrors.ErrInvalidCredentials))
		})

		It("rejects a deactivated account even with the right password", func() {
			admin.IsActive = false

			_, err := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: password})
			Expect(err).To(Equal(apperrors.ErrAccountInactive))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a new pair for a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: password})
			Expect(err).NotTo(HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(renewed.AccessToken).NotTo(BeEmpty())
			Expect(renewed.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			_, err := service.RefreshTokens("not.a.token")
			Expect(err).To(Equal(apperrors.ErrInvalidToken))
		})

		It("takes account deactivation into effect on refresh", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: password})
			Expect(err).NotTo(HaveOccurred())

			admin.IsActive = false

			_, err = service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(Equal(apperrors.ErrAccountInactive))
		})

		It("rejects a refresh token for a deleted account", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Email: admin.Email, Password: password})
			Expect(err).NotTo(HaveOccurred())

			delete(mockRepo.accounts, admin.ID)

			_, err = service.RefreshTokens(tokens.RefreshToken)
			Expect(err).To(Equal(apperrors.ErrInvalidToken))
		})
	})

	Describe("JWTTokenGenerator", func() {
		It("round-trips claims through an access token", func() {
			token, err := tokenGen.GenerateAccessToken("42", "aysel@example.com", "MODERATOR")
			Expect(err).NotTo(HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("42"))
			Expect(claims.Email).To(Equal("aysel@example.com"))
			Expect(claims.Role).To(Equal("MODERATOR"))
		})

		It("validates refresh tokens against the refresh secret", func() {
			token, err := tokenGen.GenerateRefreshToken("42", "aysel@example.com", "MODERATOR")
			Expect(err).NotTo(HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("42"))
		})

		It("reports expiry distinctly from other failures", func() {
			expiredGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
			token, err := expiredGen.GenerateAccessToken("42", "aysel@example.com", "MODERATOR")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(apperrors.ErrTokenExpired))
		})

		It("rejects tokens signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("other-secret", "other-refresh", 15*time.Minute, 24*time.Hour)
			token, err := otherGen.GenerateAccessToken("42", "aysel@example.com", "MODERATOR")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(Equal(apperrors.ErrInvalidToken))
		})
	})

	Describe("GetAdmin", func() {
		It("resolves the permissions the role grants", func() {
			found, err := service.GetAdmin(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Aysel"))
			Expect(found.Role).To(Equal(permissions.RoleModerator))
			Expect(found.Permissions).To(ContainElement(permissions.ManageUsers))
			Expect(found.Permissions).NotTo(ContainElement(permissions.ManageAdmins))
		})

		It("returns not found for an unknown id", func() {
			_, err := service.GetAdmin(999)
			Expect(err).To(Equal(apperrors.ErrAdminNotFound))
		})

		It("rejects a deactivated admin", func() {
			admin.IsActive = false
			_, err := service.GetAdmin(42)
			Expect(err).To(Equal(apperrors.ErrAccountInactive))
		})
	})
})
