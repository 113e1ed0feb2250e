package audit

import (
	"context"
	"time"

	auditDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/audit"
)

// Action names recorded by the mutating admin operations.
const (
	ActionCreateCategory = "CREATE_CATEGORY"
	ActionUpdateCategory = "UPDATE_CATEGORY"
	ActionDeleteCategory = "DELETE_CATEGORY"
	ActionCreateSubAdmin = "CREATE_SUB_ADMIN"
	ActionUpdateSubAdmin = "UPDATE_SUB_ADMIN"
	ActionBlockUser      = "BLOCK_USER"
	ActionUnblockUser    = "UNBLOCK_USER"
	ActionBulkBlockUsers = "BULK_BLOCK_USERS"
)

// Resource types referenced by audit entries.
const (
	ResourceCategory = "CATEGORY"
	ResourceUser     = "USER"
)

// EventTypeRecorded is the bus topic audit events travel on.
const EventTypeRecorded = "audit.recorded"

// Record describes one administrative action. Details must be
// JSON-serializable.
type Record struct {
	ActorID      int64
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]interface{}
}

// Recorder is the narrow surface mutating services depend on. Recording is
// best-effort: implementations never return the sink's failure to the
// caller, so a lost audit entry cannot roll back the primary mutation.
type Recorder interface {
	Record(ctx context.Context, rec Record)
}

// RepositoryAPI persists and queries audit entries.
type RepositoryAPI interface {
	Append(entry *auditDatamodel.Entry) error
	List(filter ListFilter) ([]*auditDatamodel.Entry, int64, error)
}

// ListFilter narrows audit listings.
type ListFilter struct {
	Action       string
	ResourceType string
	Page         int
	Limit        int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
}

// EntryResponse is the transport shape of one audit entry.
type EntryResponse struct {
	ID           string                 `json:"id"`
	ActorID      int64                  `json:"actorId"`
	Action       string                 `json:"action"`
	ResourceType string                 `json:"resourceType"`
	ResourceID   string                 `json:"resourceId"`
	Details      map[string]interface{} `json:"details,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
}
