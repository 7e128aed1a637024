package website

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/umami-atlas/pkg/models/api"
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/services/timerange"
)

type mockSummarizer struct {
	mock.Mock
}

func (m *mockSummarizer) BuildDailySummary(
	ctx context.Context,
	websiteID string,
	day domain.DayRange,
	requests []domain.FunnelRequest,
) (*domain.Summary, error) {
	args := m.Called(ctx, websiteID, day, requests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *mockSummarizer) ListReportNames(ctx context.Context, websiteID string) ([]string, error) {
	args := m.Called(ctx, websiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func summaryRequest(target, websiteID string) *http.Request {
	req := httptest.NewRequest("GET", target, nil)

	// Set up chi context with URL parameters
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("websiteID", websiteID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func matchDay(date, timezone string) interface{} {
	return mock.MatchedBy(func(day domain.DayRange) bool {
		return day.DateString() == date && day.Timezone == timezone
	})
}

func TestGetDailySummary(t *testing.T) {
	day, err := timerange.ResolveDay("2024-01-15", "UTC")
	require.NoError(t, err)

	rate := 0.25
	stepRate := 0.25
	domainSummary := &domain.Summary{
		WebsiteID: "site-1",
		Range:     day,
		Basic:     domain.BasicMetrics{Visitors: 10, Visits: 20, TotalTimeSeconds: 600},
		Funnels: []domain.FunnelResult{
			{
				RequestedName:     "pricing",
				DisplayName:       "价格查看率",
				LookupName:        "pricing",
				MatchedReportName: "Pricing Page View",
				ReportID:          "r-9",
				Status:            domain.FunnelStatusOK,
				StartVisitors:     40,
				FinalVisitors:     10,
				ConversionRate:    &rate,
				Steps: []domain.FunnelStep{
					{Index: 1, Type: "url", Value: "/pricing", Visitors: 40},
					{Index: 2, Type: "event", Value: "view_plans", Visitors: 10, Dropoff: 30, RateFromPrevious: &stepRate},
				},
			},
		},
		AvailableReports: []string{"Pricing Page View"},
	}

	expectedBody := api.Summary{
		Source:    "Umami",
		WebsiteID: "site-1",
		Date:      "2024-01-15",
		Timezone:  "UTC",
		TimeRange: api.TimeRange{
			LocalStart: "2024-01-15T00:00:00Z",
			LocalEnd:   "2024-01-15T23:59:59.999Z",
			UTCStart:   "2024-01-15T00:00:00.000Z",
			UTCEnd:     "2024-01-15T23:59:59.999Z",
			StartAtMs:  1705276800000,
			EndAtMs:    1705363199999,
		},
		BasicData: api.BasicData{
			Visitors:             10,
			Visits:               20,
			VisitDurationSeconds: 30,
			VisitDurationClock:   "00:00:30",
			TotalTimeSeconds:     600,
		},
		FunnelData: []api.FunnelEntry{
			{
				RequestedName:     "pricing",
				DisplayName:       "价格查看率",
				LookupName:        "pricing",
				MatchedReportName: "Pricing Page View",
				ReportID:          "r-9",
				Status:            "ok",
				FunnelMetrics: &api.FunnelMetrics{
					StartVisitors:  40,
					FinalVisitors:  10,
					ConversionRate: &rate,
					Steps: []api.FunnelStep{
						{StepIndex: 1, StepType: "url", StepValue: "/pricing", StepLabel: "step_1", Visitors: 40},
						{StepIndex: 2, StepType: "event", StepValue: "view_plans", StepLabel: "step_2", Visitors: 10, Dropoff: 30, RateFromPrevious: &stepRate},
					},
				},
			},
		},
		AvailableFunnelReports: []string{"Pricing Page View"},
	}

	tests := []struct {
		name           string
		target         string
		setupMock      func(*mockSummarizer)
		expectedStatus int
		expectedBody   *api.Summary
	}{
		{
			name:   "successful response",
			target: "/websites/site-1/summary?day=2024-01-15&timezone=UTC",
			setupMock: func(m *mockSummarizer) {
				m.On("BuildDailySummary", mock.Anything, "site-1", matchDay("2024-01-15", "UTC"), mock.Anything).
					Return(domainSummary, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   &expectedBody,
		},
		{
			name:   "invalid day format",
			target: "/websites/site-1/summary?day=15-01-2024",
			setupMock: func(m *mockSummarizer) {
				// No mocks needed for this case
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown timezone",
			target: "/websites/site-1/summary?day=2024-01-15&timezone=Mars%2FOlympus",
			setupMock: func(m *mockSummarizer) {
				// No mocks needed for this case
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "upstream failure",
			target: "/websites/site-1/summary?day=2024-01-15&timezone=UTC",
			setupMock: func(m *mockSummarizer) {
				m.On("BuildDailySummary", mock.Anything, "site-1", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("HTTP 401 when calling GET https://api.umami.is/v1/websites/site-1/stats: unauthorized"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := new(mockSummarizer)
			tt.setupMock(summarizer)
			handler := NewHandler(summarizer, "UTC", nil)

			req := summaryRequest(tt.target, "site-1")
			rec := httptest.NewRecorder()

			handler.GetDailySummary(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedBody != nil {
				var response api.Summary
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, *tt.expectedBody, response)
			}

			summarizer.AssertExpectations(t)
		})
	}
}

func TestGetDailySummary_InvalidDayMessage(t *testing.T) {
	summarizer := new(mockSummarizer)
	handler := NewHandler(summarizer, "UTC", nil)

	req := summaryRequest("/websites/site-1/summary?day=Jan+15", "site-1")
	rec := httptest.NewRecorder()

	handler.GetDailySummary(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid 'day' date format. Expected format: YYYY-MM-DD\n", rec.Body.String())
}

func TestGetDailySummary_FunnelSelection(t *testing.T) {
	t.Run("funnels query param overrides defaults", func(t *testing.T) {
		summarizer := new(mockSummarizer)
		summarizer.On("BuildDailySummary", mock.Anything, "site-1", mock.Anything,
			[]domain.FunnelRequest{
				{Name: "pricing", Display: "价格查看率"},
				{Name: "my custom funnel"},
			}).
			Return(&domain.Summary{WebsiteID: "site-1"}, nil)
		handler := NewHandler(summarizer, "UTC", nil)

		req := summaryRequest("/websites/site-1/summary?day=2024-01-15&funnels=pricing,+my+custom+funnel", "site-1")
		rec := httptest.NewRecorder()

		handler.GetDailySummary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		summarizer.AssertExpectations(t)
	})

	t.Run("configured defaults used when param absent", func(t *testing.T) {
		defaults := []domain.FunnelRequest{{Name: "signup", Display: "注册率"}}
		summarizer := new(mockSummarizer)
		summarizer.On("BuildDailySummary", mock.Anything, "site-1", mock.Anything, defaults).
			Return(&domain.Summary{WebsiteID: "site-1"}, nil)
		handler := NewHandler(summarizer, "UTC", defaults)

		req := summaryRequest("/websites/site-1/summary?day=2024-01-15", "site-1")
		rec := httptest.NewRecorder()

		handler.GetDailySummary(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		summarizer.AssertExpectations(t)
	})
}

func TestListReports(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockSummarizer)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "successful response",
			setupMock: func(m *mockSummarizer) {
				m.On("ListReportNames", mock.Anything, "site-1").
					Return([]string{"PV -> Login", "Pricing Page View"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"PV -> Login", "Pricing Page View"},
		},
		{
			name: "no reports",
			setupMock: func(m *mockSummarizer) {
				m.On("ListReportNames", mock.Anything, "site-1").
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{},
		},
		{
			name: "upstream failure",
			setupMock: func(m *mockSummarizer) {
				m.On("ListReportNames", mock.Anything, "site-1").
					Return(nil, fmt.Errorf("funnel report catalog fetch failed: page 1: boom"))
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := new(mockSummarizer)
			tt.setupMock(summarizer)
			handler := NewHandler(summarizer, "UTC", nil)

			req := summaryRequest("/websites/site-1/reports", "site-1")
			rec := httptest.NewRecorder()

			handler.ListReports(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedBody != nil {
				var response []string
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, response)
			}

			summarizer.AssertExpectations(t)
		})
	}
}
