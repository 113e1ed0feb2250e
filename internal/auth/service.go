package auth

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RepositoryAPI loads admin accounts for authentication.
type RepositoryAPI interface {
	GetAdminByEmail(email string) (*userDatamodel.User, error)
	GetAdminByID(id int64) (*userDatamodel.User, error)
}

// ServiceAPI is what the HTTP layer needs from the auth service.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetAdmin(id int64) (*Admin, error)
	PermissionGroups(role permissions.Role) []string
}

type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGenerator
	table          *permissions.Table
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, table *permissions.Table, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		table:          table,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns a token pair. Lookup and
// password failures collapse into the same error so callers cannot probe
// which emails exist.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetAdminByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to look up account", err)
	}
	if account == nil {
		return AuthTokens{}, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, errors.ErrInvalidCredentials
	}

	if !account.IsActive {
		return AuthTokens{}, errors.ErrAccountInactive
	}

	return s.issueTokens(account)
}

// RefreshTokens validates a refresh token and issues a new pair. The admin
// row is re-read so deactivation and role changes take effect on refresh.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, errors.ErrInvalidToken
	}

	account, err := s.repo.GetAdminByID(id)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to look up account", err)
	}
	if account == nil {
		return AuthTokens{}, errors.ErrInvalidToken
	}
	if !account.IsActive {
		return AuthTokens{}, errors.ErrAccountInactive
	}

	return s.issueTokens(account)
}

func (s *Service) issueTokens(account *userDatamodel.User) (AuthTokens, error) {
	id := strconv.FormatInt(account.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(id, account.Email, account.AdminRole)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(id, account.Email, account.AdminRole)
	if err != nil {
		return AuthTokens{}, errors.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetAdmin loads an admin and resolves the permissions its role grants.
func (s *Service) GetAdmin(id int64) (*Admin, error) {
	account, err := s.repo.GetAdminByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up account", err)
	}
	if account == nil {
		return nil, errors.ErrAdminNotFound
	}
	if !account.IsActive {
		return nil, errors.ErrAccountInactive
	}

	role := permissions.Role(account.AdminRole)
	return &Admin{
		ID:          account.ID,
		Email:       account.Email,
		Name:        account.Name,
		Role:        role,
		Permissions: s.table.UserPermissions(role),
	}, nil
}

func (s *Service) PermissionGroups(role permissions.Role) []string {
	return s.table.UserPermissionGroups(role)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateAccessToken creates a short-lived access token.
func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, role string) (string, error) {
	return j.sign(userID, email, role, j.AccessTokenTTL, j.AccessTokenSecret)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email, role string) (string, error) {
	return j.sign(userID, email, role, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email, role string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses and verifies a token against both secrets: the
// refresh secret when the remaining lifetime exceeds the access TTL, the
// access secret otherwise.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if claims, ok := token.Claims.(*Claims); ok && claims.ExpiresAt != nil {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.ErrInvalidToken
}
