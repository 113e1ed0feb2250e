package blocking

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
	"github.com/Dijital-human/yusu-admin/internal/notification"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

// RepositoryAPI is the storage surface the blocking service needs.
// Lookups return (nil, nil) when the row does not exist.
type RepositoryAPI interface {
	GetByID(id int64) (*userDatamodel.User, error)
	ListBlocked(filter ListFilter) ([]*userDatamodel.User, int64, error)
	Update(u *userDatamodel.User) error
}

type Service struct {
	repo     RepositoryAPI
	auditor  audit.Recorder
	notifier notification.Sender
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, auditor audit.Recorder, notifier notification.Sender, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		auditor:  auditor,
		notifier: notifier,
		logger:   logger,
	}
}

// BlockUser places a block on a user account. Admin accounts cannot be
// blocked; an existing block must be lifted before a new one is placed.
func (s *Service) BlockUser(ctx context.Context, dto *BlockUserDTO, actorID int64) (*BlockedUserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.loadTarget(dto.UserID)
	if err != nil {
		return nil, err
	}
	if target.IsBlocked {
		return nil, errors.NewConflictError("User is already blocked", errors.ErrCodeUserAlreadyBlocked)
	}

	now := time.Now()
	target.IsBlocked = true
	target.BlockReason = dto.Reason
	target.BlockType = dto.BlockType
	target.BlockSeverity = dto.Severity
	target.BlockedUntil = dto.BlockedUntil
	target.BlockedAt = &now
	target.BlockedByID = &actorID
	target.UpdatedAt = now

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to block user", "user_id", target.ID, "error", err)
		return nil, errors.NewInternalError("failed to block user", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionBlockUser,
		ResourceType: audit.ResourceUser,
		ResourceID:   strconv.FormatInt(target.ID, 10),
		Details: map[string]interface{}{
			"reason":    dto.Reason,
			"duration":  dto.Duration,
			"blockType": dto.BlockType,
			"severity":  dto.Severity,
		},
	})

	if dto.NotifyUser {
		s.notifier.Send(notification.Notice{
			UserID:       target.ID,
			Email:        target.Email,
			Name:         target.Name,
			Kind:         notification.KindUserBlocked,
			Reason:       dto.Reason,
			BlockType:    dto.BlockType,
			Severity:     dto.Severity,
			BlockedUntil: dto.BlockedUntil,
		})
	}

	s.logger.Info("user blocked", "user_id", target.ID, "block_type", dto.BlockType, "severity", dto.Severity)
	return toResponse(target, time.Now()), nil
}

// UnblockUser lifts a block and clears the stored block fields.
func (s *Service) UnblockUser(ctx context.Context, dto *UnblockUserDTO, actorID int64) (*BlockedUserResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.loadTarget(dto.UserID)
	if err != nil {
		return nil, err
	}
	if !target.IsBlocked {
		return nil, errors.NewConflictError("User is not blocked", errors.ErrCodeUserNotBlocked)
	}

	target.IsBlocked = false
	target.BlockReason = ""
	target.BlockType = ""
	target.BlockSeverity = ""
	target.BlockedUntil = nil
	target.BlockedAt = nil
	target.BlockedByID = nil
	target.UpdatedAt = time.Now()

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to unblock user", "user_id", target.ID, "error", err)
		return nil, errors.NewInternalError("failed to unblock user", err)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionUnblockUser,
		ResourceType: audit.ResourceUser,
		ResourceID:   strconv.FormatInt(target.ID, 10),
		Details: map[string]interface{}{
			"reason": dto.Reason,
		},
	})

	s.notifier.Send(notification.Notice{
		UserID: target.ID,
		Email:  target.Email,
		Name:   target.Name,
		Kind:   notification.KindUserUnblocked,
		Reason: dto.Reason,
	})

	s.logger.Info("user unblocked", "user_id", target.ID)
	return toResponse(target, time.Now()), nil
}

// BulkBlock applies the same block to every listed user. Each id gets its
// own outcome; a failure on one never aborts the rest.
func (s *Service) BulkBlock(ctx context.Context, dto *BulkBlockDTO, actorID int64) (*BulkBlockResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	resp := &BulkBlockResponse{Results: make([]BulkBlockResult, 0, len(dto.UserIDs))}
	for _, userID := range dto.UserIDs {
		_, err := s.BlockUser(ctx, dto.toSingle(userID), actorID)
		result := BulkBlockResult{UserID: userID, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
			resp.Failed++
		} else {
			resp.Blocked++
		}
		resp.Results = append(resp.Results, result)
	}

	s.auditor.Record(ctx, audit.Record{
		ActorID:      actorID,
		Action:       audit.ActionBulkBlockUsers,
		ResourceType: audit.ResourceUser,
		ResourceID:   "bulk",
		Details: map[string]interface{}{
			"requested": len(dto.UserIDs),
			"blocked":   resp.Blocked,
			"failed":    resp.Failed,
			"reason":    dto.Reason,
		},
	})

	s.logger.Info("bulk block finished", "requested", len(dto.UserIDs), "blocked", resp.Blocked, "failed", resp.Failed)
	return resp, nil
}

// ListBlocked returns one page of blocked users, most recently blocked
// first.
func (s *Service) ListBlocked(filter ListFilter) (*ListResponse, error) {
	filter.Normalize()

	rows, total, err := s.repo.ListBlocked(filter)
	if err != nil {
		s.logger.Error("failed to list blocked users", "error", err)
		return nil, errors.NewInternalError("failed to list blocked users", err)
	}

	now := time.Now()
	users := make([]*BlockedUserResponse, 0, len(rows))
	for _, row := range rows {
		users = append(users, toResponse(row, now))
	}

	return &ListResponse{
		Users:      users,
		Pagination: transport.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *Service) loadTarget(userID int64) (*userDatamodel.User, error) {
	target, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to look up user", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to look up user", err)
	}
	if target == nil {
		return nil, errors.ErrUserNotFound
	}
	if target.UserType == userDatamodel.TypeAdmin {
		return nil, errors.NewForbiddenError("Admin accounts cannot be blocked", errors.ErrCodeInsufficientRights)
	}
	return target, nil
}

func toResponse(u *userDatamodel.User, now time.Time) *BlockedUserResponse {
	return &BlockedUserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		UserType:      u.UserType,
		BlockReason:   u.BlockReason,
		BlockType:     u.BlockType,
		BlockSeverity: u.BlockSeverity,
		BlockStatus:   BlockStatus(u, now),
		BlockedUntil:  u.BlockedUntil,
		BlockedAt:     u.BlockedAt,
		BlockedByID:   u.BlockedByID,
	}
}
