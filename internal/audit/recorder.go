package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	auditDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/audit"
	"github.com/Dijital-human/yusu-admin/internal/core/events"
	"github.com/google/uuid"
)

// BusRecorder publishes audit records onto the in-process event bus. The
// write to storage happens in a subscriber goroutine; the publisher only
// pays for the channel hop.
type BusRecorder struct {
	bus    *events.EventBus
	logger *slog.Logger
}

func NewBusRecorder(bus *events.EventBus, logger *slog.Logger) *BusRecorder {
	return &BusRecorder{bus: bus, logger: logger}
}

func (r *BusRecorder) Record(ctx context.Context, rec Record) {
	event := events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventTypeRecorded,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"actor_id":      rec.ActorID,
			"action":        rec.Action,
			"resource_type": rec.ResourceType,
			"resource_id":   rec.ResourceID,
			"details":       rec.Details,
		},
	}

	// Publish detaches from the request context so a cancelled request
	// cannot drop the entry.
	if err := r.bus.Publish(context.WithoutCancel(ctx), event); err != nil {
		r.logger.Error("failed to publish audit event",
			"action", rec.Action,
			"resource_type", rec.ResourceType,
			"error", err)
	}
}

// RegisterPersistence subscribes the storage writer to the bus.
func RegisterPersistence(bus *events.EventBus, repo RepositoryAPI, logger *slog.Logger) {
	bus.Subscribe(EventTypeRecorded, func(ctx context.Context, event events.Event) error {
		data, ok := event.Payload().(map[string]interface{})
		if !ok {
			logger.Error("audit event with unexpected payload", "event_id", event.EventID())
			return nil
		}

		details := ""
		if d, ok := data["details"]; ok && d != nil {
			raw, err := json.Marshal(d)
			if err != nil {
				logger.Error("failed to serialize audit details", "error", err)
			} else {
				details = string(raw)
			}
		}

		entry := &auditDatamodel.Entry{
			ID:           event.EventID(),
			ActorID:      asInt64(data["actor_id"]),
			Action:       asString(data["action"]),
			ResourceType: asString(data["resource_type"]),
			ResourceID:   asString(data["resource_id"]),
			Details:      details,
			CreatedAt:    event.OccurredAt(),
		}

		if err := repo.Append(entry); err != nil {
			logger.Error("failed to persist audit entry",
				"action", entry.Action,
				"resource_type", entry.ResourceType,
				"error", err)
		}
		return nil
	})
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
