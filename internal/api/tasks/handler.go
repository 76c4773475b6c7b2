package tasks

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/logger"
	"github.com/designdesk/session-gateway/internal/pkg/response"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	connector TasksConnector
}

func NewHandler(connector TasksConnector) *Handler {
	return &Handler{connector: connector}
}

// Start handles POST /tasks/{id}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "StartTask", h.connector.Start)
}

// SubmitReview handles POST /tasks/{id}/submit-review
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "SubmitTaskReview", h.connector.SubmitReview)
}

// RequestRevision handles POST /tasks/{id}/request-revision
func (h *Handler) RequestRevision(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "RequestTaskRevision", h.connector.RequestRevision)
}

// Complete handles POST /tasks/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "CompleteTask", h.connector.Complete)
}

// GetTimeLogs handles GET /tasks/{id}/time-logs
func (h *Handler) GetTimeLogs(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetTaskTimeLogs")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid task id", err)
		return
	}

	logs, err := h.connector.GetTimeLogs(ctx, id)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}
	if logs == nil {
		logs = []entity.TaskTimeLog{}
	}

	response.Success(w, logs)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	do func(ctx context.Context, id int64) (*entity.TaskTransitionResult, error),
) {
	ctx := logger.WithAction(r.Context(), action)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid task id", err)
		return
	}

	result, err := do(ctx, id)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "task transition applied",
		zap.Int64("requirement_id", id),
		zap.String("status", string(result.Status)),
	)

	response.Success(w, result)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			h.respondError(ctx, w, http.StatusNotFound, "task not found", err)
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			// Transition preconditions are enforced upstream
			h.respondError(ctx, w, http.StatusConflict, "transition not allowed", err)
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
