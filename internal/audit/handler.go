package audit

import (
	"net/http"
	"strconv"

	"github.com/Dijital-human/yusu-admin/internal/transport"
)

type ServiceAPI interface {
	List(filter ListFilter) ([]EntryResponse, int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: baseHandler, Service: service}
}

type listResponse struct {
	Entries    []EntryResponse      `json:"entries"`
	Pagination transport.Pagination `json:"pagination"`
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ListFilter{
		Action:       q.Get("action"),
		ResourceType: q.Get("resourceType"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Normalize()

	entries, total, err := h.Service.List(filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, listResponse{
		Entries:    entries,
		Pagination: transport.NewPagination(filter.Page, filter.Limit, total),
	})
}
