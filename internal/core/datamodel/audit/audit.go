package audit

import "time"

// Entry is one immutable row in the administrative audit trail.
// Details holds a JSON-serialized payload describing the action.
type Entry struct {
	ID           string    `gorm:"primaryKey;column:id"`
	ActorID      int64     `gorm:"column:actor_id;index"`
	Action       string    `gorm:"column:action;index"`
	ResourceType string    `gorm:"column:resource_type;index"`
	ResourceID   string    `gorm:"column:resource_id"`
	Details      string    `gorm:"column:details"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "audit_logs"
}
