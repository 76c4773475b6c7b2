package reports

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/designdesk/session-gateway/internal/entity"
	"github.com/designdesk/session-gateway/internal/pkg/formatter"
	"github.com/designdesk/session-gateway/internal/pkg/logger"
	"github.com/designdesk/session-gateway/internal/pkg/response"
	pkghttp "github.com/designdesk/session-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	connector ReportsConnector
	factory   *formatter.Factory
}

func NewHandler(connector ReportsConnector) *Handler {
	return &Handler{
		connector: connector,
		factory:   formatter.NewFactory(),
	}
}

// GetDesignerStats handles GET /reports/designer-stats
func (h *Handler) GetDesignerStats(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetDesignerStats")

	rng, err := parseStatsRange(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	stats, err := h.connector.GetDesignerStats(ctx, rng)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}
	if stats == nil {
		stats = []entity.DesignerStats{}
	}

	response.Success(w, stats)
}

// ExportExcel handles GET /reports/export-excel - passthrough of the
// upstream-rendered workbook
func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportExcel")

	rng, err := parseStatsRange(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	payload, contentType, err := h.connector.ExportExcel(ctx, rng)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "stats workbook exported", zap.Int("size_bytes", len(payload)))

	filename := fmt.Sprintf("designer_stats_%s_%s.xlsx", rng.StartDate, rng.EndDate)
	response.Attachment(w, contentType, filename, payload)
}

// ExportStats handles GET /reports/designer-stats/export - locally rendered
// report in the requested format
func (h *Handler) ExportStats(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportStats")

	rng, err := parseStatsRange(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatXLSX)
	}

	fmtr, err := h.factory.Create(entity.ReportFormat(formatParam))
	if err != nil {
		ctxzap.Warn(ctx, "invalid format parameter", zap.String("format", formatParam))
		h.respondError(ctx, w, http.StatusBadRequest, "format must be one of: xlsx, pdf", err)
		return
	}

	stats, err := h.connector.GetDesignerStats(ctx, rng)
	if err != nil {
		h.handleUpstreamError(ctx, w, err)
		return
	}

	payload, err := fmtr.Format(stats, rng)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render report", err)
		return
	}

	ctxzap.Info(ctx, "stats report rendered",
		zap.String("format", formatParam),
		zap.Int("rows", len(stats)),
	)

	filename := fmt.Sprintf("designer_stats_%s_%s%s", rng.StartDate, rng.EndDate, fmtr.FileExtension())
	response.Attachment(w, fmtr.ContentType(), filename, payload)
}

func parseStatsRange(r *http.Request) (*entity.StatsRange, error) {
	rng := &entity.StatsRange{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if rng.StartDate == "" || rng.EndDate == "" {
		return nil, fmt.Errorf("start_date and end_date are required")
	}
	if _, err := time.Parse(time.DateOnly, rng.StartDate); err != nil {
		return nil, fmt.Errorf("start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(time.DateOnly, rng.EndDate); err != nil {
		return nil, fmt.Errorf("end_date must be YYYY-MM-DD")
	}

	if s := r.URL.Query().Get("designer_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("designer_id must be an integer")
		}
		rng.DesignerID = &id
	}

	return rng, nil
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUpstreamError(ctx context.Context, w http.ResponseWriter, err error) {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusBadRequest {
			h.respondError(ctx, w, http.StatusBadRequest, "upstream rejected request", err)
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
