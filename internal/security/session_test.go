package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsSecureRequest(t *testing.T) {
	plain := httptest.NewRequest("GET", "http://example.com/", nil)
	if IsSecureRequest(plain) {
		t.Error("IsSecureRequest() = true for a plain HTTP request")
	}

	proxied := httptest.NewRequest("GET", "http://example.com/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !IsSecureRequest(proxied) {
		t.Error("IsSecureRequest() = false behind an HTTPS-terminating proxy")
	}
}

func TestSetSessionCookieFlags(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()

	expires := time.Now().Add(time.Hour)
	SetSessionCookie(w, r, "session_id", "abc123", expires)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "session_id" || c.Value != "abc123" {
		t.Errorf("cookie = %s=%s, want session_id=abc123", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Error("session cookie must be Secure on an HTTPS request")
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if c.Expires.IsZero() {
		t.Error("session cookie must carry an expiry")
	}
}

func TestSetFlowCookieIsShortLived(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	w := httptest.NewRecorder()

	SetFlowCookie(w, r, "oauth_state", "nonce", 10*time.Minute)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	if got := cookies[0].MaxAge; got != 600 {
		t.Errorf("flow cookie MaxAge = %d, want 600", got)
	}
}

func TestClearCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	w := httptest.NewRecorder()

	ClearCookie(w, r, "session_id")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Value != "" || c.MaxAge != -1 {
		t.Errorf("cookie = value %q MaxAge %d, want empty value and MaxAge -1", c.Value, c.MaxAge)
	}
}
