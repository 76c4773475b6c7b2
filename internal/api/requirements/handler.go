package requirements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/formatter"
	"github.com/designdesk/session-gateway/internal/pkg/logger"
	"github.com/designdesk/session-gateway/internal/pkg/response"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	connector RequirementsConnector
	brief     *formatter.BriefFormatter
}

func NewHandler(connector RequirementsConnector) *Handler {
	return &Handler{
		connector: connector,
		brief:     formatter.NewBriefFormatter(),
	}
}

// List handles GET /requirements - created design requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListRequirements")

	req := entity.ListRequirementsRequest{Limit: 100}

	if s := r.URL.Query().Get("status"); s != "" {
		req.Status = entity.TaskStatus(s)
	}
	if s := r.URL.Query().Get("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid skip parameter", err)
			return
		}
		req.Skip = v
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid limit parameter", err)
			return
		}
		req.Limit = v
	}

	items, err := h.connector.List(ctx, &req)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}
	if items == nil {
		items = []entity.Requirement{}
	}

	response.Success(w, items)
}

// Create handles POST /requirements - direct creation bypassing the session flow
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateRequirement")

	var req entity.CreateRequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "title is required", entity.ErrMissingField)
		return
	}
	if req.RequirementType == "" {
		req.RequirementType = entity.RequirementTypeOther
	}
	if err := req.RequirementType.Validate(); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement type", err)
		return
	}
	if req.ReferenceImages == nil {
		req.ReferenceImages = []string{}
	}

	item, err := h.connector.Create(ctx, &req)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "requirement created", zap.Int64("requirement_id", item.ID))
	response.Created(w, item)
}

// Get handles GET /requirements/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetRequirement")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement id", err)
		return
	}

	item, err := h.connector.Get(ctx, id)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	response.Success(w, item)
}

// Update handles PATCH /requirements/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateRequirement")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement id", err)
		return
	}

	var req entity.UpdateRequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.RequirementType != nil {
		if err := req.RequirementType.Validate(); err != nil {
			h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement type", err)
			return
		}
	}

	item, err := h.connector.Update(ctx, id, &req)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "requirement updated", zap.Int64("requirement_id", id))
	response.Success(w, item)
}

// GetBrief handles GET /requirements/{id}/brief - DOCX handoff document
func (h *Handler) GetBrief(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetRequirementBrief")

	id, err := parseID(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement id", err)
		return
	}

	item, err := h.connector.Get(ctx, id)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	payload, err := h.brief.Format(item)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render brief", err)
		return
	}

	ctxzap.Info(ctx, "requirement brief rendered", zap.Int64("requirement_id", id))

	filename := fmt.Sprintf("brief-%d%s", id, h.brief.FileExtension())
	response.Attachment(w, h.brief.ContentType(), filename, payload)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

// handleUpstreamError maps collaborator-service failures onto the gateway's
// own status codes. Upstream status codes are passed through where they carry
// meaning for the caller.
func (h *Handler) handleUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			h.respondError(ctx, w, http.StatusNotFound, "requirement not found", err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			h.respondError(ctx, w, http.StatusBadRequest, "upstream rejected request", err)
		default:
			h.respondError(ctx, w, http.StatusBadGateway, "upstream service error", err)
		}
		return
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		h.respondError(ctx, w, http.StatusBadGateway, "upstream service unreachable", err)
		return
	}

	h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
}
