package blocking

import (
	"time"

	userDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/user"
)

// Block durations.
const (
	DurationTemporary = "TEMPORARY"
	DurationPermanent = "PERMANENT"
)

// Block types: what the blocked user can no longer do.
const (
	BlockTypeAccount  = "ACCOUNT"
	BlockTypeLogin    = "LOGIN"
	BlockTypePurchase = "PURCHASE"
	BlockTypeSell     = "SELL"
	BlockTypeDeliver  = "DELIVER"
)

// Block severities.
const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Block statuses derived from the stored fields, never persisted.
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusPermanent = "permanent"
)

var (
	Durations  = []string{DurationTemporary, DurationPermanent}
	BlockTypes = []string{BlockTypeAccount, BlockTypeLogin, BlockTypePurchase, BlockTypeSell, BlockTypeDeliver}
	Severities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
)

// BlockStatus derives the lifecycle state of a block from its fields. An
// expired block stays on the row until an unblock clears it.
func BlockStatus(u *userDatamodel.User, now time.Time) string {
	if !u.IsBlocked {
		return ""
	}
	if u.BlockedUntil == nil {
		return StatusPermanent
	}
	if u.BlockedUntil.After(now) {
		return StatusActive
	}
	return StatusExpired
}
