package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

type authService interface {
	Register(ctx context.Context, creds Credentials) (*User, error)
	Login(ctx context.Context, creds Credentials) (*LoginSession, error)
	Logout(ctx context.Context, sessionID string) (bool, error)
}

type sessionForgetter interface {
	Forget(sessionID string)
}

type LogoutResponse struct {
	LoggedOut bool `json:"loggedOut"`
}

type Handler struct {
	service  authService
	sessions sessionForgetter
}

func NewHandler(service authService, sessions sessionForgetter) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

// SetupRoutes registers the handlers; limit wraps the routes reachable
// without a session.
func (h *Handler) SetupRoutes(router *mux.Router, limit func(http.Handler) http.Handler) {
	router.Handle("/register", limit(http.HandlerFunc(h.HandleRegister))).Methods("POST", "OPTIONS").Name("register")
	router.Handle("/login", limit(http.HandlerFunc(h.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	router.HandleFunc("/logout", h.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
	router.HandleFunc("/me", h.HandleMe).Methods("GET", "OPTIONS").Name("me")
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (Credentials, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Tracef("credentials, unmarshal json params: %s", err)
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return Credentials{}, false
	}
	return creds, true
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()

	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.service.Register(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		fitstats.HTTPError(w, err)
		return
	}

	log.Infof("new user registered: %s", user.ID)
	pkg.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	session, err := h.service.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			reqIP, _ := pkg.ReadUserIP(r)
			log.Warnf("failed login attempt from [%s]", reqIP)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		fitstats.HTTPError(w, err)
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		fitstats.HTTPError(w, fitstats.ErrUnauthenticated)
		return
	}

	loggedOut, err := h.service.Logout(ctx, identity.SessionID)
	if err != nil {
		fitstats.HTTPError(w, err)
		return
	}
	h.sessions.Forget(identity.SessionID)

	log.Debugf("user %s logged out", identity.UserID)
	pkg.WriteJSON(w, LogoutResponse{LoggedOut: loggedOut}, http.StatusOK)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		fitstats.HTTPError(w, fitstats.ErrUnauthenticated)
		return
	}

	pkg.WriteJSON(w, identity, http.StatusOK)
}
