package blocking

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

type ServiceAPI interface {
	BlockUser(ctx context.Context, dto *BlockUserDTO, actorID int64) (*BlockedUserResponse, error)
	UnblockUser(ctx context.Context, dto *UnblockUserDTO, actorID int64) (*BlockedUserResponse, error)
	BulkBlock(ctx context.Context, dto *BulkBlockDTO, actorID int64) (*BulkBlockResponse, error)
	ListBlocked(filter ListFilter) (*ListResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetBlockedUsers handles GET /user-blocking with page/limit/search/
// status/blockType/severity query parameters.
func (h *Handler) GetBlockedUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		BlockType: q.Get("blockType"),
		Severity:  q.Get("severity"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.Service.ListBlocked(filter)
	if err != nil {
		h.Logger.Error("GetBlockedUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	var dto BlockUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("BlockUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.BlockUser(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("BlockUser: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User blocked successfully",
		"user":    resp,
	})
}

func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	var dto UnblockUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UnblockUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.UnblockUser(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("UnblockUser: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User unblocked successfully",
		"user":    resp,
	})
}

func (h *Handler) BulkBlockUsers(w http.ResponseWriter, r *http.Request) {
	var dto BulkBlockDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("BulkBlockUsers: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.BulkBlock(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("BulkBlockUsers: service error", "error", err, "count", len(dto.UserIDs))
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
