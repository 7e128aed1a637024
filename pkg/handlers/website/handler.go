package website

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/umami-atlas/pkg/adapters"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/services/config"
	"github.com/de-tools/umami-atlas/pkg/services/timerange"
)

// Summarizer is the summary pipeline surface the HTTP layer consumes.
type Summarizer interface {
	BuildDailySummary(ctx context.Context, websiteID string, day domain.DayRange, requests []domain.FunnelRequest) (*domain.Summary, error)
	ListReportNames(ctx context.Context, websiteID string) ([]string, error)
}

type Handler struct {
	summarizer      Summarizer
	defaultTimezone string
	defaultFunnels  []domain.FunnelRequest
}

func NewHandler(summarizer Summarizer, defaultTimezone string, defaultFunnels []domain.FunnelRequest) *Handler {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	if len(defaultFunnels) == 0 {
		defaultFunnels = config.DefaultFunnelRequests()
	}
	return &Handler{
		summarizer:      summarizer,
		defaultTimezone: defaultTimezone,
		defaultFunnels:  defaultFunnels,
	}
}

// GetDailySummary handles GET /websites/{websiteID}/summary. Optional query
// params: day (YYYY-MM-DD), timezone (IANA name), funnels (comma-separated
// names).
func (h *Handler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	websiteID := chi.URLParam(r, "websiteID")

	tz := r.URL.Query().Get("timezone")
	if tz == "" {
		tz = h.defaultTimezone
	}

	day, err := timerange.ResolveDay(r.URL.Query().Get("day"), tz)
	if err != nil {
		if errors.Is(err, timerange.ErrInvalidDateFormat) {
			http.Error(w, "invalid 'day' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requests := h.defaultFunnels
	if names := r.URL.Query().Get("funnels"); names != "" {
		requests = config.BuildFunnelRequests(config.ParseFunnelNames(names), nil)
	}

	result, err := h.summarizer.BuildDailySummary(ctx, websiteID, day, requests)
	if err != nil {
		logger.Error().
			Err(err).
			Str("website_id", websiteID).
			Msg("failed to build daily summary")
		http.Error(w, "failed to build daily summary", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapSummaryDomainToApi(*result)); err != nil {
		logger.Error().
			Err(err).
			Str("website_id", websiteID).
			Msg("failed to encode daily summary")
	}
}

// ListReports handles GET /websites/{websiteID}/reports.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	websiteID := chi.URLParam(r, "websiteID")

	names, err := h.summarizer.ListReportNames(ctx, websiteID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("website_id", websiteID).
			Msg("failed to list funnel reports")
		http.Error(w, "failed to list funnel reports", http.StatusBadGateway)
		return
	}
	if names == nil {
		names = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		logger.Error().
			Err(err).
			Str("website_id", websiteID).
			Msg("failed to encode funnel reports")
	}
}
