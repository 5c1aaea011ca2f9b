package handler

import (
	"net/http"

	"civictrack/middleware"
	"civictrack/models"
	"civictrack/service"
	"civictrack/utils"
)

// AuthHandler handles account endpoints under /api/auth
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if _, err := h.userService.RegisterCitizen(&req); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, models.MessageResponse{Message: "Registration successful"})
}

// RegisterGovernment handles POST /api/auth/register/government
func (h *AuthHandler) RegisterGovernment(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterGovernmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if _, err := h.userService.RegisterGovernment(&req); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, models.MessageResponse{Message: "Government account created"})
}

// ForgotPassword handles POST /api/auth/forgot-password.
// Always answers 200 for a well-formed email.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.userService.ForgotPassword(req.Email)
	respondWithJSON(w, http.StatusOK, models.MessageResponse{
		Message: "If an account exists for this email, a reset link has been sent",
	})
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "Not logged in")
		return
	}
	respondWithJSON(w, http.StatusOK, user.Profile())
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the client
// discards its session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// decodeAndValidate parses a JSON body into req and runs struct validation.
// It writes the 400 response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := decodeJSON(r, req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return false
	}
	if err := utils.Validate.Struct(req); err != nil {
		fields := utils.FieldErrors(err)
		if fields == nil {
			respondWithError(w, http.StatusBadRequest, "Validation error", err.Error())
			return false
		}
		respondWithError(w, http.StatusBadRequest, "Validation error", utils.FormatFieldErrors(fields))
		return false
	}
	return true
}
