package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"boundle/internal/security"
	"boundle/internal/service"
	"boundle/internal/validation"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token,omitempty"`
}

// Register handles account creation and logs the new user in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "bad_request", "", err)
		return
	}

	if _, err := h.authService.Register(req.Email, req.Password, req.Name); err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, err.Error(), "email_taken", "", nil)
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Message, "invalid_"+validationErr.Field, "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Registration failed", err)
		}
		return
	}

	h.login(w, r, req.Email, req.Password)
}

// Login handles credential login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "bad_request", "", err)
		return
	}

	h.login(w, r, req.Email, req.Password)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, email, password string) {
	session, user, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, err.Error(), "invalid_credentials", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Login failed", err)
		return
	}

	token, err := h.authService.IssueAPIToken(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Failed to issue API token", err)
		return
	}

	security.SetSessionCookie(w, r, SessionCookieName, session.ID, session.ExpiresAt)
	respondWithJSON(w, http.StatusOK, authResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Token:  token,
	})
}

// Logout deletes the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	security.ClearCookie(w, r, SessionCookieName)
	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "unauthenticated", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RequestPasswordReset sends a reset email when the account exists. The
// response is identical either way so the endpoint cannot be used to probe
// for registered addresses.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "bad_request", "", err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "internal", "Password reset request failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "bad_request", "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			respondWithError(w, http.StatusBadRequest, validationErr.Message, "invalid_"+validationErr.Field, "", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid or expired reset token", "invalid_token", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
