package admins

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/permissions"
	"github.com/Dijital-human/yusu-admin/internal/transport"
	"golang.org/x/crypto/bcrypt"
)

// RepositoryAPI is the storage surface the sub-admin service needs.
// Lookups return (nil, nil) when the row does not exist.
type RepositoryAPI interface {
	List(filter ListFilter) ([]*userDatamodel.User, int64, error)
	GetByID(id int64) (*userDatamodel.User, error)
	FindByEmail(email string, excludeID int64) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) error
}

type Service struct {
	repo       RepositoryAPI
	table      *permissions.Table
	auditor    audit.Recorder
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, table *permissions.Table, auditor audit.Recorder, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		table:      table,
		auditor:    auditor,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// List returns one page of admin accounts, newest first, excluding the
// caller. Each entry carries the permission set its role grants.
func (s *Service) List(filter ListFilter) (*ListResponse, error) {
	filter.Normalize()

	rows, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list sub-admins", "error", err)
		return nil, errors.NewInternalError("failed to list sub-admins", err)
	}

	admins := make([]*SubAdminResponse, 0, len(rows))
	for _, row := range rows {
		admins = append(admins, s.toResponse(row))
	}

	return &ListResponse{
		Admins:     admins,
		Pagination: transport.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Create validates and inserts a new admin account. The password is
// bcrypt-hashed and never stored or logged in the clear.
func (s *Service) Create(ctx context.Context, dto *CreateSubAdminDTO, actorID int64) (*SubAdminResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(dto.Email, 0)
	if err != nil {
		s.logger.Error("failed to check admin email", "email", dto.Email, "error", err)
		return nil, errors.NewInternalError("failed to check admin email", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("An account with this email already exists", errors.ErrCodeDuplicateEmail)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	dm := &userDatamodel.User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		UserType:     userDatamodel.TypeAdmin,
		AdminRole:    dto.Role,
		IsActive:     true,
		Notes:        dto.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create sub-admin", "email", dto.Email, "error", err)
		return nil, errors.NewInternalError("failed to create sub-admin", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionCreateSubAdmin,
		ResourceType: audit.ResourceUser,
		ResourceID:   strconv.FormatInt(dm.ID, 10),
		Details: map[string]interface{}{
			"adminEmail": dm.Email,
			"adminRole":  dm.AdminRole,
		},
	})

	s.logger.Info("sub-admin created", "admin_id", dm.ID, "role", dm.AdminRole)
	return s.toResponse(dm), nil
}

// Update applies a sparse set of changes to an admin account.
func (s *Service) Update(ctx context.Context, dto *UpdateSubAdminDTO, actorID int64) (*SubAdminResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(dto.AdminID)
	if err != nil {
		s.logger.Error("failed to look up sub-admin", "admin_id", dto.AdminID, "error", err)
		return nil, errors.NewInternalError("failed to look up sub-admin", err)
	}
	if existing == nil {
		return nil, errors.ErrAdminNotFound
	}

	changes := make(map[string]interface{})

	if dto.Email != nil && *dto.Email != existing.Email {
		conflict, err := s.repo.FindByEmail(*dto.Email, existing.ID)
		if err != nil {
			s.logger.Error("failed to check admin email", "email", *dto.Email, "error", err)
			return nil, errors.NewInternalError("failed to check admin email", err)
		}
		if conflict != nil {
			return nil, errors.NewConflictError("An account with this email already exists", errors.ErrCodeDuplicateEmail)
		}
		existing.Email = *dto.Email
		changes["email"] = *dto.Email
	}

	if dto.Name != nil {
		existing.Name = *dto.Name
		changes["name"] = *dto.Name
	}
	if dto.Role != nil {
		existing.AdminRole = *dto.Role
		changes["role"] = *dto.Role
	}
	if dto.IsActive != nil {
		existing.IsActive = *dto.IsActive
		changes["isActive"] = *dto.IsActive
	}
	if dto.Notes != nil {
		existing.Notes = *dto.Notes
		changes["notes"] = *dto.Notes
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		existing.PasswordHash = string(hash)
		changes["password"] = "updated"
	}

	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update sub-admin", "admin_id", existing.ID, "error", err)
		return nil, errors.NewInternalError("failed to update sub-admin", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionUpdateSubAdmin,
		ResourceType: audit.ResourceUser,
		ResourceID:   strconv.FormatInt(existing.ID, 10),
		Details: map[string]interface{}{
			"adminEmail": existing.Email,
			"changes":    changes,
		},
	})

	s.logger.Info("sub-admin updated", "admin_id", existing.ID, "changed_fields", len(changes))
	return s.toResponse(existing), nil
}

func (s *Service) toResponse(u *userDatamodel.User) *SubAdminResponse {
	admin := FromDataModel(u)
	return &SubAdminResponse{
		ID:                admin.ID,
		Name:              admin.Name,
		Email:             admin.Email,
		Role:              admin.Role,
		IsActive:          admin.IsActive,
		Notes:             admin.Notes,
		RolePermissions:   s.table.UserPermissions(admin.Role),
		CustomPermissions: []permissions.Permission{},
		CreatedAt:         admin.CreatedAt,
		UpdatedAt:         admin.UpdatedAt,
	}
}
