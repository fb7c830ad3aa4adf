package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"

	"github.com/brewlogic/BrewLogic/internal/pkg/cache"
	"github.com/brewlogic/BrewLogic/internal/pkg/env"
)

// Session keys.
const (
	KeyUserID  = "user_id"
	KeyIsAdmin = "is_admin"
)

var sessionStore *session.Store

// NewSessionStore creates the Redis backed login session store.
func NewSessionStore() *session.Store {
	// Get Redis client configuration from existing cache setup
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	// Sessions live in their own database next to the cache.
	storage := redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: env.GetEnvInt("SESSION_DB", 1),
		Reset:    false,
	})

	sessionStore = session.New(session.Config{
		Storage:        storage,
		CookieHTTPOnly: true,
		CookieSecure:   !env.IsDev(),
		CookieSameSite: "Lax",
		Expiration:     env.GetEnvDuration("SESSION_TTL", 7*24*time.Hour),
		KeyLookup:      "cookie:brewlogic_session",
	})

	return sessionStore
}

// UseStore installs a store built elsewhere, e.g. an in-memory one in tests.
func UseStore(s *session.Store) {
	sessionStore = s
}

// Login binds the user to a fresh session.
func Login(c *fiber.Ctx, userID uint, isAdmin bool) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}
	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %v", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %v", err)
	}
	sess.Set(KeyUserID, userID)
	sess.Set(KeyIsAdmin, isAdmin)
	return sess.Save()
}

// Logout destroys the session. Missing sessions are fine.
func Logout(c *fiber.Ctx) error {
	if sessionStore == nil {
		return nil
	}
	sess, err := sessionStore.Get(c)
	if err != nil {
		return nil
	}
	return sess.Destroy()
}

// Identity returns the user bound to the request's session.
func Identity(c *fiber.Ctx) (userID uint, isAdmin bool, ok bool) {
	if sessionStore == nil {
		return 0, false, false
	}
	sess, err := sessionStore.Get(c)
	if err != nil {
		return 0, false, false
	}
	id, ok := sess.Get(KeyUserID).(uint)
	if !ok || id == 0 {
		return 0, false, false
	}
	admin, _ := sess.Get(KeyIsAdmin).(bool)
	return id, admin, true
}
