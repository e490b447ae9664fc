package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"boundle/internal/models"
	"boundle/internal/security"
	"boundle/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
	}
}

// RequireAuth accepts either a session cookie or an Authorization bearer
// token. API clients without cookie storage use the token path.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.authenticate(r)
		if user == nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "unauthenticated", "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin layers an admin check on top of RequireAuth
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			respondWithError(w, http.StatusForbidden, "Admin access required", "forbidden", "", nil)
			return
		}
		next(w, r)
	})
}

func (m *Middleware) authenticate(r *http.Request) *models.User {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if user, err := m.authService.ValidateSession(cookie.Value); err == nil {
			return user
		}
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		if user, err := m.authService.ValidateAPIToken(strings.TrimSpace(token)); err == nil {
			return user
		}
	}

	return nil
}

// RateLimit rejects clients that exceed the per-IP request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.GetClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "rate_limited", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
