package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/logger"
	"github.com/designdesk/session-gateway/internal/pkg/response"
	"github.com/designdesk/session-gateway/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   SessionUsecase
	validator *validator.Validator
}

func NewHandler(usecase SessionUsecase, v *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: v,
	}
}

// GetSession handles GET /sessions/{id} - reconciled session state
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.WithSession(logger.WithAction(ctx, "GetSession"), sessionID)

	ctxzap.Debug(ctx, "fetching session view")

	view := h.usecase.GetSession(ctx, sessionID)
	response.Success(w, view)
}

// SubmitMessage handles POST /sessions/{id}/messages - one chat turn
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.WithSession(logger.WithAction(ctx, "SubmitMessage"), sessionID)

	var req entity.SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitMessage(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	if err := h.usecase.SubmitUserMessage(ctx, sessionID, req.Message); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "user message accepted")

	// The reply arrives on the assistant channel; return the optimistic state.
	response.JSON(w, http.StatusAccepted, h.usecase.GetSession(ctx, sessionID))
}

// UpdateDraft handles PATCH /sessions/{id}/draft - local form edits
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.WithSession(logger.WithAction(ctx, "UpdateDraft"), sessionID)

	var req entity.UpdateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.RequirementType != nil {
		if err := req.RequirementType.Validate(); err != nil {
			ctxzap.Error(ctx, "invalid requirement type", zap.Error(err))
			h.respondError(ctx, w, http.StatusBadRequest, "invalid requirement type", err)
			return
		}
	}

	view := h.usecase.UpdateDraft(ctx, sessionID, &req)

	ctxzap.Info(ctx, "draft updated", zap.Strings("missing_fields", view.MissingFields))
	response.Success(w, view)
}

// SubmitDraft handles POST /sessions/{id}/submit - one-shot create
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.WithSession(logger.WithAction(ctx, "SubmitDraft"), sessionID)

	ctxzap.Info(ctx, "submitting draft")

	created, err := h.usecase.SubmitDraft(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "requirement created", zap.Int64("requirement_id", created.ID))
	response.Created(w, created)
}

// AttachImage handles POST /sessions/{id}/images - multipart reference image upload
func (h *Handler) AttachImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	ctx = logger.WithSession(logger.WithAction(ctx, "AttachImage"), sessionID)

	// Parse multipart form (max 8MB in memory; the size limit itself is
	// enforced per file by the validator)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		ctxzap.Error(ctx, "missing image file", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "image file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateReferenceImage(header); err != nil {
		ctxzap.Warn(ctx, "reference image rejected",
			zap.String("filename", header.Filename),
			zap.Int64("size_bytes", header.Size),
			zap.Error(err),
		)
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read image file", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to read image", err)
		return
	}

	imageID, err := h.usecase.AttachReferenceImage(ctx, sessionID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "reference image attached",
		zap.String("image_id", imageID),
		zap.String("filename", header.Filename),
	)

	response.Created(w, entity.AttachImageResponse{
		ImageID:  imageID,
		Filename: header.Filename,
	})
}

// RemoveImage handles DELETE /sessions/{id}/images/{image_id}
func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")
	imageID := chi.URLParam(r, "image_id")

	ctx = logger.WithSession(logger.WithAction(ctx, "RemoveImage"), sessionID)

	if err := h.usecase.RemoveReferenceImage(ctx, sessionID, imageID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "reference image removed", zap.String("image_id", imageID))
	response.NoContent(w)
}

// Helper methods
func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrImageNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrEmptyMessage), errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.Is(err, entity.ErrNotAnImage), errors.Is(err, entity.ErrImageTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err)
	case errors.Is(err, entity.ErrChannelClosed):
		h.respondError(ctx, w, http.StatusServiceUnavailable, "assistant channel unavailable, reconnecting", err)
	case errors.Is(err, entity.ErrSubmitInProgress):
		h.respondError(ctx, w, http.StatusConflict, "submit already in progress", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
