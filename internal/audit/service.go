package audit

import (
	"encoding/json"
	"log/slog"

	"github.com/Dijital-human/yusu-admin/internal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns audit entries newest first with the standard pagination
// envelope fields.
func (s *Service) List(filter ListFilter) ([]EntryResponse, int64, error) {
	filter.Normalize()

	entries, total, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err)
		return nil, 0, internal.NewInternalError("failed to list audit entries", err)
	}

	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp := EntryResponse{
			ID:           entry.ID,
			ActorID:      entry.ActorID,
			Action:       entry.Action,
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			CreatedAt:    entry.CreatedAt,
		}
		if entry.Details != "" {
			var details map[string]interface{}
			if err := json.Unmarshal([]byte(entry.Details), &details); err == nil {
				resp.Details = details
			}
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}
