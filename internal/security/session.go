package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// IsSecureRequest reports whether the request arrived over HTTPS, either
// directly or via a reverse proxy that sets X-Forwarded-Proto.
func IsSecureRequest(r *http.Request) bool {
	return r.TLS != nil ||
		r.Header.Get("X-Forwarded-Proto") == "https" ||
		r.URL.Scheme == "https"
}

// bake builds the common cookie shape: host-wide, HttpOnly, Lax, and
// Secure whenever the request came in over HTTPS.
func bake(r *http.Request, name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionCookie writes the auth session cookie, valid until expires
func SetSessionCookie(w http.ResponseWriter, r *http.Request, name, value string, expires time.Time) {
	c := bake(r, name, value)
	c.Expires = expires
	http.SetCookie(w, c)
}

// SetFlowCookie writes a short-lived cookie carrying intermediate state of
// an auth flow, such as the OAuth state nonce.
func SetFlowCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	c := bake(r, name, value)
	c.Expires = time.Now().Add(ttl)
	c.MaxAge = int(ttl / time.Second)
	http.SetCookie(w, c)
}

// ClearCookie expires the named cookie immediately
func ClearCookie(w http.ResponseWriter, r *http.Request, name string) {
	c := bake(r, name, "")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
