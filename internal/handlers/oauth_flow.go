package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"boundle/internal/security"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Label       string
	Config      *oauth2.Config
	UserInfoURL string
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// NewGoogleProvider builds the Google sign-in provider. Returns a provider
// with a nil-safe Config even when the credentials are absent; StartOAuth
// rejects unconfigured providers.
func NewGoogleProvider(clientID, clientSecret string) OAuthProvider {
	return OAuthProvider{
		Name:  "google",
		Label: "Sign in with Google",
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// StartOAuth initiates the OAuth flow for a provider
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "oauth_unconfigured", "", nil)
		return
	}

	state := security.GenerateSessionID()

	security.SetFlowCookie(w, r, "oauth_state", state, 10*time.Minute)
	security.SetFlowCookie(w, r, "oauth_provider", providerKey, 10*time.Minute)

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback handles the OAuth provider callback
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := r.PathValue("provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "oauth_unconfigured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing authorization code", "oauth_failed", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondWithError(w, http.StatusBadRequest, "Invalid OAuth state", "oauth_failed", "", nil)
		return
	}
	if providerCookie, err := r.Cookie("oauth_provider"); err == nil {
		if providerCookie.Value != providerKey {
			respondWithError(w, http.StatusBadRequest, "OAuth provider mismatch", "oauth_failed", "", nil)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	token, err := config.Exchange(ctx, code)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to exchange OAuth code", "oauth_failed", "OAuth code exchange failed", err)
		return
	}

	userInfo, err := fetchOAuthUserInfo(ctx, provider, token)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to fetch OAuth user info", "oauth_failed", "OAuth user info fetch failed", err)
		return
	}

	security.ClearCookie(w, r, "oauth_state")
	security.ClearCookie(w, r, "oauth_provider")

	session, _, err := h.authService.OAuthLogin(providerKey, userInfo.Subject, userInfo.Email, userInfo.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "OAuth login failed", err)
		return
	}

	security.SetSessionCookie(w, r, SessionCookieName, session.ID, session.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func fetchOAuthUserInfo(ctx context.Context, provider OAuthProvider, token *oauth2.Token) (oauthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		return oauthUserInfo{}, fmt.Errorf("fetching %s user info: %w", provider.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, fmt.Errorf("fetching %s user info: status %d", provider.Name, resp.StatusCode)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, fmt.Errorf("parsing %s user info: %w", provider.Name, err)
	}

	return oauthUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request, providerKey string) string {
	baseURL := strings.TrimSpace(h.oauthRedirectBaseURL)
	if baseURL == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return fmt.Sprintf("%s/auth/%s/callback", strings.TrimRight(baseURL, "/"), providerKey)
}
