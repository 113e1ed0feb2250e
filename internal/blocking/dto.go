package blocking

import (
	"time"

	errors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/core/common/validation"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

// BlockUserDTO carries one block request. BlockType and Severity default
// to ACCOUNT and MEDIUM when omitted.
type BlockUserDTO struct {
	UserID       int64      `json:"userId"`
	Reason       string     `json:"reason"`
	Duration     string     `json:"duration"`
	BlockedUntil *time.Time `json:"blockedUntil,omitempty"`
	BlockType    string     `json:"blockType,omitempty"`
	Severity     string     `json:"severity,omitempty"`
	NotifyUser   bool       `json:"notifyUser,omitempty"`
}

func (d *BlockUserDTO) Normalize() {
	if d.BlockType == "" {
		d.BlockType = BlockTypeAccount
	}
	if d.Severity == "" {
		d.Severity = SeverityMedium
	}
}

func (d *BlockUserDTO) Validate() *errors.AppError {
	d.Normalize()

	v := validation.NewValidator()
	v.Field("userId", d.UserID).Required()
	v.Field("reason", d.Reason).Required().MinLength(5)
	v.Field("duration", d.Duration).Required().OneOf(Durations...)
	v.Field("blockType", d.BlockType).OneOf(BlockTypes...)
	v.Field("severity", d.Severity).OneOf(Severities...)
	if err := v.Validate(); err != nil {
		return err
	}

	if d.Duration == DurationTemporary && d.BlockedUntil == nil {
		return errors.NewValidationFieldError("blockedUntil",
			"blockedUntil is required for temporary blocks", errors.ErrCodeValidationFailed)
	}
	if d.Duration == DurationPermanent && d.BlockedUntil != nil {
		return errors.NewValidationFieldError("blockedUntil",
			"blockedUntil must be empty for permanent blocks", errors.ErrCodeValidationFailed)
	}
	return nil
}

// UnblockUserDTO lifts a block; the reason lands in the audit trail.
type UnblockUserDTO struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

func (d UnblockUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("userId", d.UserID).Required()
	v.Field("reason", d.Reason).Required().MinLength(5)
	return v.Validate()
}

// BulkBlockDTO applies the same block to a list of users. Failures are
// reported per id; one bad id never aborts the rest.
type BulkBlockDTO struct {
	UserIDs      []int64    `json:"userIds"`
	Reason       string     `json:"reason"`
	Duration     string     `json:"duration"`
	BlockedUntil *time.Time `json:"blockedUntil,omitempty"`
	BlockType    string     `json:"blockType,omitempty"`
	Severity     string     `json:"severity,omitempty"`
	NotifyUser   bool       `json:"notifyUser,omitempty"`
}

func (d *BulkBlockDTO) Validate() *errors.AppError {
	if len(d.UserIDs) == 0 {
		return errors.NewValidationFieldError("userIds",
			"userIds must not be empty", errors.ErrCodeValidationFailed)
	}
	single := d.toSingle(d.UserIDs[0])
	return single.Validate()
}

func (d *BulkBlockDTO) toSingle(userID int64) *BlockUserDTO {
	return &BlockUserDTO{
		UserID:       userID,
		Reason:       d.Reason,
		Duration:     d.Duration,
		BlockedUntil: d.BlockedUntil,
		BlockType:    d.BlockType,
		Severity:     d.Severity,
		NotifyUser:   d.NotifyUser,
	}
}

// BulkBlockResult reports the outcome for one user id.
type BulkBlockResult struct {
	UserID  int64  `json:"userId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkBlockResponse aggregates per-id outcomes.
type BulkBlockResponse struct {
	Results []BulkBlockResult `json:"results"`
	Blocked int               `json:"blocked"`
	Failed  int               `json:"failed"`
}

// ListFilter narrows blocked-user listings.
type ListFilter struct {
	Search    string
	Status    string
	BlockType string
	Severity  string
	Page      int
	Limit     int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

// BlockedUserResponse is the transport shape of one blocked user.
type BlockedUserResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	UserType      string     `json:"userType"`
	BlockReason   string     `json:"blockReason"`
	BlockType     string     `json:"blockType"`
	BlockSeverity string     `json:"blockSeverity"`
	BlockStatus   string     `json:"blockStatus"`
	BlockedUntil  *time.Time `json:"blockedUntil,omitempty"`
	BlockedAt     *time.Time `json:"blockedAt,omitempty"`
	BlockedByID   *int64     `json:"blockedById,omitempty"`
}

type ListResponse struct {
	Users      []*BlockedUserResponse `json:"users"`
	Pagination transport.Pagination   `json:"pagination"`
}
