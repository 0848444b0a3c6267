package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mediavault/mediavault-backend/internal/models"
	"github.com/mediavault/mediavault-backend/internal/services"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerificationRequest struct {
	Email string `json:"email"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// AuthResponse is the common auth envelope.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

type AuthHandler struct {
	Users *services.UserService
	Auth  *services.AuthService
	Token *services.TokenService
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService, token *services.TokenService) *AuthHandler {
	return &AuthHandler{Users: users, Auth: auth, Token: token}
}

// normalizeEmail lowercases and trims the email at the data-entry
// boundary; the services below assume it already happened.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Signup(r.Context(), req.Name, normalizeEmail(req.Email), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account successfully created",
		User:    user,
	})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.Auth.Login(r.Context(), normalizeEmail(req.Email), req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    result.User,
		Token:   result.AccessToken,
	})
}

// IssueVerification mints a verification token with an embedded one-time
// code for the given account. Delivery of the code is out of scope.
func (h *AuthHandler) IssueVerification(w http.ResponseWriter, r *http.Request) {
	var req VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	issue, err := h.Users.IssueVerification(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, issue)
}

// VerifyToken reports whether a token is valid and when it expires.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.Token.Verify(req.Token))
}

// ListUsers returns a page of users.
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.ParseInt(r.URL.Query().Get("skip"), 10, 64)
	take, _ := strconv.ParseInt(r.URL.Query().Get("take"), 10, 64)

	page, err := h.Users.List(r.Context(), skip, take)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetUser returns a single user's name and email.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
