package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL       = 30 * 24 * time.Hour
	sessionKeyPrefix = "fittrack-session||"
	tokensSetKey     = "fittrack-sessions"

	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usersRepo interface {
	AddUser(ctx context.Context, user User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// LoginSession is what a successful login hands to the client.
type LoginSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service registers users and manages their sessions. A session lives in
// redis under its id, holding the unix time it was created at.
type Service struct {
	users          usersRepo
	redisClient    *redis.Client
	tokens         *Tokens
	ttl            time.Duration
	metricsManager *metrics.Manager

	NowFunc func() time.Time
	// ability to inject session id generator (for unit and dev testing)
	NewSessionIDFunc func() string
}

func NewService(
	users usersRepo,
	tokens *Tokens,
	ttl time.Duration,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		users:            users,
		redisClient:      redisClient,
		tokens:           tokens,
		ttl:              ttl,
		metricsManager:   metricsManager,
		NowFunc:          time.Now,
		NewSessionIDFunc: uuid.NewString,
	}
}

func normalizeCredentials(creds Credentials) (Credentials, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		return creds, fitstats.InvalidInput("email and password are required")
	}
	if _, err := mail.ParseAddress(creds.Email); err != nil {
		return creds, fitstats.InvalidInput("invalid email")
	}
	if len(creds.Password) > maxPasswordLength {
		return creds, fitstats.InvalidInput("password too long")
	}
	return creds, nil
}

func (s *Service) Register(ctx context.Context, creds Credentials) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	creds, err = normalizeCredentials(creds)
	if err != nil {
		return nil, err
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.users.AddUser(ctx, User{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.NowFunc(),
	})
}

// Login checks the credentials and opens a new session.
func (s *Service) Login(ctx context.Context, creds Credentials) (_ *LoginSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		s.countLogin(err)
	}()

	creds, err = normalizeCredentials(creds)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	sessionID := s.NewSessionIDFunc()
	createdAt := s.NowFunc()

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, err
	}

	sessionKey := sessionKeyPrefix + sessionID
	if err := s.redisClient.Set(ctx, sessionKey, createdAt.Unix(), s.ttl).Err(); err != nil {
		return nil, fitstats.StoreFailure("save session", err)
	}

	// add session to the set of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, sessionID).Err(); err != nil {
		return nil, fitstats.StoreFailure("save session", err)
	}

	return &LoginSession{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout ends the session. It reports whether the session was still open.
func (s *Service) Logout(ctx context.Context, sessionID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionKey := sessionKeyPrefix + sessionID
	deleted, err := s.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, fitstats.StoreFailure("delete session", err)
	}

	// remove session from the set of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
		return false, fitstats.StoreFailure("delete session", err)
	}

	return deleted > 0, nil
}

// ScanAndClean runs through all sessions and removes the ones older than
// the session TTL, or already gone from redis. Returns the number removed.
func (s *Service) ScanAndClean(ctx context.Context) int {
	sessionIDs, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return 0
	}

	if len(sessionIDs) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return 0
	}

	log.Infof("=> auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	now := s.NowFunc()
	var toRemove []string
	for _, sessionID := range sessionIDs {
		createdAtUnixStr, err := s.redisClient.Get(ctx, sessionKeyPrefix+sessionID).Result()
		if errors.Is(err, redis.Nil) {
			toRemove = append(toRemove, sessionID)
			continue
		}
		if err != nil {
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
		if err != nil {
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			toRemove = append(toRemove, sessionID)
			continue
		}

		if now.Sub(time.Unix(createdAtUnix, 0)) > s.ttl {
			toRemove = append(toRemove, sessionID)
		}
	}

	cleaned := 0
	for _, sessionID := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}

		// remove session from the set of sessions
		if err := s.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}
		cleaned++
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSessionsCleaned.Add(float64(cleaned))
	}
	log.Infof("=> auth service, scan and clean done, %d sessions removed", cleaned)

	return cleaned
}

func (s *Service) countLogin(err error) {
	if s.metricsManager == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		result = "denied"
	case err != nil:
		result = "error"
	}
	s.metricsManager.CounterLogins.WithLabelValues(result).Inc()
}
