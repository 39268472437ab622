package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activities_test

type activitiesService interface {
	List(ctx context.Context, ownerID string) ([]ActivityWithStatus, error)
	Get(ctx context.Context, ownerID, id string) (*Activity, error)
	Create(ctx context.Context, ownerID string, activity Activity) (*Activity, error)
	Update(ctx context.Context, ownerID, id string, activity Activity) (*Activity, error)
	Delete(ctx context.Context, ownerID, id string) error
	IsCompletedToday(ctx context.Context, ownerID, activityID string) (bool, error)
	SetCompletedToday(ctx context.Context, ownerID, activityID string, completed bool) (bool, error)
}

type ListResponse struct {
	Activities []ActivityWithStatus `json:"activities"`
}

type DeleteActivityResponse struct {
	DeletedID string `json:"deletedId"`
}

type CompletionRequest struct {
	Completed *bool `json:"completed"`
}

type CompletionResponse struct {
	Completed bool `json:"completed"`
}

type Handler struct {
	service activitiesService
}

func NewHandler(service activitiesService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the handlers on a router already scoped to the
// activities path prefix.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", h.HandleList).Methods("GET", "OPTIONS").Name("list-activities")
	router.HandleFunc("", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-activity")
	router.HandleFunc("/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-activity")
	router.HandleFunc("/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-activity")
	router.HandleFunc("/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-activity")
	router.HandleFunc("/{id}/complete", h.HandleGetCompleted).Methods("GET", "OPTIONS").Name("get-activity-completed")
	router.HandleFunc("/{id}/complete", h.HandleSetCompleted).Methods("POST", "OPTIONS").Name("set-activity-completed")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	list, err := h.service.List(ctx, ownerID)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, ListResponse{Activities: list}, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.new")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	activity, ok := decodeActivity(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, ownerID, activity)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	log.Debugf("new activity added: %s", created.ID)
	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.get")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	activity, err := h.service.Get(ctx, ownerID, mux.Vars(r)["id"])
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, activity, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.update")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	activity, ok := decodeActivity(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(ctx, ownerID, mux.Vars(r)["id"], activity)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.delete")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.service.Delete(ctx, ownerID, id); err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	log.Debugf("activity deleted: %s", id)
	pkg.WriteJSON(w, DeleteActivityResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) HandleGetCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.completed.get")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	completed, err := h.service.IsCompletedToday(ctx, ownerID, mux.Vars(r)["id"])
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, CompletionResponse{Completed: completed}, http.StatusOK)
}

func (h *Handler) HandleSetCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.completed.set")
	defer span.End()

	ownerID, err := auth.OwnerID(ctx)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set completed, unmarshal json params: %s", err)
		http.Error(w, "invalid completion request", http.StatusBadRequest)
		return
	}
	if req.Completed == nil {
		http.Error(w, "error, completed missing", http.StatusBadRequest)
		return
	}

	completed, err := h.service.SetCompletedToday(ctx, ownerID, mux.Vars(r)["id"], *req.Completed)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, CompletionResponse{Completed: completed}, http.StatusOK)
}

func decodeActivity(w http.ResponseWriter, r *http.Request) (Activity, bool) {
	if !isJSON(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return Activity{}, false
	}

	var activity Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		log.Tracef("activity, unmarshal json params: %s", err)
		http.Error(w, "invalid activity", http.StatusBadRequest)
		return Activity{}, false
	}

	return activity, true
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON)
}
