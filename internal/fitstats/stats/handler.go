package stats

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

type statsAggregator interface {
	Aggregate(ctx context.Context, ownerID string, params Params) (*Response, error)
}

// Windows are the default window sizes, in days, applied to /stats
// requests that do not pick their own.
type Windows struct {
	CalendarDays        int
	CompactCalendarDays int
	WeightDays          int
}

func DefaultWindows() Windows {
	return Windows{
		CalendarDays:        DefaultCalendarDays,
		CompactCalendarDays: DefaultCompactCalendarDays,
		WeightDays:          DefaultWeightDays,
	}
}

type Handler struct {
	aggregator     statsAggregator
	windows        Windows
	metricsManager *metrics.Manager
}

func NewHandler(aggregator statsAggregator, windows Windows, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		aggregator:     aggregator,
		windows:        windows,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", h.HandleGet).Methods("GET", "OPTIONS").Name("stats")
}

// ParseParams reads the window query parameters:
//   - window=compact selects the compact calendar window
//   - days=N sets the calendar window explicitly (1..730)
//   - weight_days=N sets the weight window, 0 for all history
func ParseParams(query url.Values, windows Windows) (Params, error) {
	params := Params{
		CalendarDays: windows.CalendarDays,
		WeightDays:   windows.WeightDays,
	}

	switch query.Get("window") {
	case "", "full":
	case "compact":
		params.CalendarDays = windows.CompactCalendarDays
	default:
		return Params{}, fitstats.InvalidInput("unknown window %q", query.Get("window"))
	}

	if daysStr := query.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > MaxCalendarDays {
			return Params{}, fitstats.InvalidInput("days must be a number between 1 and %d", MaxCalendarDays)
		}
		params.CalendarDays = days
	}

	if weightDaysStr := query.Get("weight_days"); weightDaysStr != "" {
		weightDays, err := strconv.Atoi(weightDaysStr)
		if err != nil || weightDays < 0 {
			return Params{}, fitstats.InvalidInput("weight_days must be a non negative number")
		}
		params.WeightDays = weightDays
	}

	return params, nil
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.get")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	params, err := ParseParams(r.URL.Query(), h.windows)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	start := time.Now()
	resp, err := h.aggregator.Aggregate(ctx, ownerID, params)
	if h.metricsManager != nil {
		h.metricsManager.HistStatsDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}
