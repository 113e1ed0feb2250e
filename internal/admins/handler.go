package admins

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/transport"
)

type ServiceAPI interface {
	List(filter ListFilter) (*ListResponse, error)
	Create(ctx context.Context, dto *CreateSubAdminDTO, actorID int64) (*SubAdminResponse, error)
	Update(ctx context.Context, dto *UpdateSubAdminDTO, actorID int64) (*SubAdminResponse, error)
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

// GetSubAdmins handles GET /sub-admins with page/limit/search/role/status
// query parameters. The caller never appears in its own listing.
func (h *Handler) GetSubAdmins(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{
		Search:    q.Get("search"),
		Role:      q.Get("role"),
		Status:    q.Get("status"),
		ExcludeID: internal.AdminIDFromContext(r.Context()),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("GetSubAdmins: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateSubAdmin(w http.ResponseWriter, r *http.Request) {
	var dto CreateSubAdminDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateSubAdmin: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("CreateSubAdmin: service error", "error", err, "email", dto.Email)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Sub-admin created successfully",
		"admin":   resp,
	})
}

func (h *Handler) UpdateSubAdmin(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSubAdminDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateSubAdmin: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("UpdateSubAdmin: service error", "error", err, "admin_id", dto.AdminID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Sub-admin updated successfully",
		"admin":   resp,
	})
}
