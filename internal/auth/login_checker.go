package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
)

const (
	// freecache allocates its whole size upfront
	sessionCacheSize = 1024 * 1024
	// a session revoked on another instance stays usable here for at most
	// this long
	DefaultSessionCacheTTL = 30 * time.Second
)

// LoginChecker validates session tokens. The session lookup in redis is
// fronted by a small in-process cache.
type LoginChecker struct {
	tokens      *Tokens
	ttl         time.Duration
	redisClient *redis.Client
	cache       *freecache.Cache
	cacheTTL    int
}

func NewLoginChecker(tokens *Tokens, ttl time.Duration, redisClient *redis.Client, cacheTTL time.Duration) *LoginChecker {
	return &LoginChecker{
		tokens:      tokens,
		ttl:         ttl,
		redisClient: redisClient,
		cache:       freecache.NewCache(sessionCacheSize),
		cacheTTL:    int(cacheTTL.Seconds()),
	}
}

func (c *LoginChecker) Authenticate(ctx context.Context, token string) (_ *Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.authenticate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	claims, err := c.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", fitstats.ErrUnauthenticated, err)
	}

	identity := &Identity{
		UserID:    claims.Subject,
		SessionID: claims.ID,
		Email:     claims.Email,
	}

	cacheKey := []byte(claims.ID)
	if cachedUserID, err := c.cache.Get(cacheKey); err == nil && string(cachedUserID) == claims.Subject {
		return identity, nil
	}

	createdAtUnixStr, err := c.redisClient.Get(ctx, sessionKeyPrefix+claims.ID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: session closed", fitstats.ErrUnauthenticated)
		}
		return nil, fitstats.StoreFailure("get session", err)
	}

	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt session: %s", fitstats.ErrUnauthenticated, err)
	}

	if time.Since(time.Unix(createdAtUnix, 0)) > c.ttl {
		return nil, fmt.Errorf("%w: session expired", fitstats.ErrUnauthenticated)
	}

	if c.cacheTTL > 0 {
		if err := c.cache.Set(cacheKey, []byte(claims.Subject), c.cacheTTL); err != nil {
			log.Warnf("cache session %s: %s", claims.ID, err)
		}
	}

	return identity, nil
}

// Forget drops the session from the local cache, so a closed session is
// rejected right away by this instance.
func (c *LoginChecker) Forget(sessionID string) {
	c.cache.Del([]byte(sessionID))
}
