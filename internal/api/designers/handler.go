package designers

import (
	"context"
	"errors"
	"net/http"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/logger"
	"github.com/designdesk/session-gateway/internal/pkg/response"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	connector DesignersConnector
}

func NewHandler(connector DesignersConnector) *Handler {
	return &Handler{connector: connector}
}

// List handles GET /designers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDesigners")

	items, err := h.connector.GetDesigners(ctx)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}
	if items == nil {
		items = []entity.Designer{}
	}

	response.Success(w, items)
}

// GetMine handles GET /designers/me - the operator's default designer binding
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetMyDesigner")

	item, err := h.connector.GetMyDesigner(ctx)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	response.Success(w, item)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusNotFound {
			h.respondError(ctx, w, http.StatusNotFound, "designer not found", err)
			return
		}
		h.respondError(ctx, w, http.StatusBadGateway, "upstream service error", err)
		return
	}

	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		h.respondError(ctx, w, http.StatusBadGateway, "upstream service unreachable", err)
		return
	}

	h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
}
