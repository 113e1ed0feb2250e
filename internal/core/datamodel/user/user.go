package user

import "time"

// Account types stored in user_type.
const (
	TypeAdmin    = "ADMIN"
	TypeCustomer = "CUSTOMER"
	TypeSeller   = "SELLER"
	TypeCourier  = "COURIER"
)

// User is the shared account row for admins, customers, sellers and
// couriers. AdminRole is only set for ADMIN accounts; blocking fields are
// only set while is_blocked is true.
type User struct {
	ID           int64      `gorm:"primaryKey;column:id"`
	Name         string     `gorm:"column:name;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash"`
	UserType     string     `gorm:"column:user_type;default:CUSTOMER"`
	AdminRole    string     `gorm:"column:admin_role"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	Notes        string     `gorm:"column:notes"`

	IsBlocked     bool       `gorm:"column:is_blocked;default:false"`
	BlockReason   string     `gorm:"column:block_reason"`
	BlockType     string     `gorm:"column:block_type"`
	BlockSeverity string     `gorm:"column:block_severity"`
	BlockedUntil  *time.Time `gorm:"column:blocked_until"`
	BlockedAt     *time.Time `gorm:"column:blocked_at"`
	BlockedByID   *int64     `gorm:"column:blocked_by_id"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
