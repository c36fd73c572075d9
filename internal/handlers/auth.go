package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users UserStore
	jwt   *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users UserStore, cfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, jwt: cfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a traveler account. Creating an admin requires an admin bearer token.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Only admins can create admins"
// @Failure 422 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	switch {
	case !validName(req.FirstName) || !validName(req.LastName):
		writeValidationError(w, "first_name and last_name are required (max 50 characters)")
		return
	case !validEmail(req.Email):
		writeValidationError(w, "email must be a valid address")
		return
	case len(req.Password) < minPasswordLen:
		writeValidationError(w, "password must be at least 6 characters long")
		return
	case !validPhone(req.Phone):
		writeValidationError(w, "phone must be 10 to 15 characters")
		return
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleTraveler
	}
	if !models.ValidRole(role) {
		writeValidationError(w, "role must be traveler or admin")
		return
	}
	if role == models.RoleAdmin {
		id, ok := middleware.IdentityFromContext(r.Context())
		if !ok || !id.IsAdmin() {
			writeForbidden(w)
			return
		}
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", "Something went wrong")
		return
	}

	user, err := h.users.CreateUser(r.Context(), models.User{
		Title:        trimmedPtr(req.Title),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Email already exists", "An account with this email is already registered")
			return
		}
		writeStoreError(w, err, "User")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		log.Printf("register: generate token: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Something went wrong")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login/email [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeValidationError(w, "email and password are required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
			return
		}
		writeStoreError(w, err, "User")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		log.Printf("login: generate token: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Something went wrong")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{Token: token, Role: user.Role, ID: user.ID})
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the current authenticated user's profile information
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse "User profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id.UserID)
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}
