package category

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
	Create(ctx context.Context, dto *CreateCategoryDTO, actorID int64) (*CategoryResponse, error)
	Update(ctx context.Context, dto *UpdateCategoryDTO, actorID int64) (*CategoryResponse, error)
	Delete(ctx context.Context, id string, force bool, actorID int64) error
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

// GetCategories handles GET /categories with page/limit/search/status/
// parentId query parameters.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		ParentID: q.Get("parentId"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": resp,
	})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(r.Context(), &dto, internal.AdminIDFromContext(r.Context()))
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", dto.CategoryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": resp,
	})
}

// DeleteCategory handles DELETE /categories?id=...&force=true.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	id := q.Get("id")
	if id == "" {
		h.WriteError(w, http.StatusBadRequest, "Category ID is required")
		return
	}
	force := q.Get("force") == "true"

	if err := h.Service.Delete(r.Context(), id, force, internal.AdminIDFromContext(r.Context())); err != nil {
		h.Logger.Error("DeleteCategory: service error", "error", err, "category_id", id, "force", force)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category deleted successfully",
	})
}
