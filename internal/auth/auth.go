package auth

import (
	"context"
	"time"

	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/golang-jwt/jwt/v5"
)

// Admin is the authenticated admin carried through request context.
type Admin struct {
	ID          int64                    `json:"id"`
	Email       string                   `json:"email"`
	Name        string                   `json:"name"`
	Role        permissions.Role         `json:"role"`
	Permissions []permissions.Permission `json:"permissions,omitempty"`
}

// AuthTokens is the token pair returned on login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	GenerateRefreshToken(userID, email, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

type contextKey string

// ContextAdminKey carries the authenticated *Admin in request context.
const ContextAdminKey contextKey = "auth.admin"

func AdminToContext(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, ContextAdminKey, admin)
}

func AdminFromContext(ctx context.Context) (*Admin, bool) {
	admin, ok := ctx.Value(ContextAdminKey).(*Admin)
	return admin, ok && admin != nil
}
