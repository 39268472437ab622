package weights

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=weights_test

type weightsService interface {
	Add(ctx context.Context, ownerID string, weight float64, recordedAt *time.Time) (*Entry, error)
	List(ctx context.Context, ownerID string) ([]Entry, error)
	Today(ctx context.Context, ownerID string) (*Entry, error)
}

type AddEntryRequest struct {
	Weight     *float64   `json:"weight"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
}

type Handler struct {
	service weightsService
}

func NewHandler(service weightsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", h.HandleList).Methods("GET", "OPTIONS").Name("list-weights")
	router.HandleFunc("", h.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight")
	router.HandleFunc("/today", h.HandleToday).Methods("GET", "OPTIONS").Name("weight-today")
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.new")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new weight entry, unmarshal json params: %s", err)
		http.Error(w, "weight must be a positive number", http.StatusBadRequest)
		return
	}
	if req.Weight == nil {
		http.Error(w, "weight must be a positive number", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Add(ctx, ownerID, *req.Weight, req.RecordedAt)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	log.Debugf("new weight entry added: %s", entry.ID)
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.list")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	entries, err := h.service.List(ctx, ownerID)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}

	pkg.WriteJSON(w, ListResponse{Entries: entries}, http.StatusOK)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weights.today")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	entry, err := h.service.Today(ctx, ownerID)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, entry, http.StatusOK)
}
