package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

// UsersHandler serves the /users resource
type UsersHandler struct {
	users UserStore
}

// NewUsersHandler creates a new UsersHandler instance
func NewUsersHandler(users UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

// ListUsers returns every user
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /users [get]
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, dto.NewUserResponse(u))
	}
	utils.WriteJSONResponse(w, http.StatusOK, response)
}

// GetUser returns one user
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateUser applies a partial update
// @Summary Update user
// @Description Only title, first_name, last_name, email, phone and password may change. role is admin-only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/{id} [patch]
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, ps)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.Role != nil && !who.IsAdmin() {
		writeForbidden(w)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}

	if msg := applyUserUpdate(&user, req); msg != "" {
		writeValidationError(w, msg)
		return
	}
	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			log.Printf("update user: hash password: %v", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", "Something went wrong")
			return
		}
		user.PasswordHash = hashed
	}

	updated, err := h.users.UpdateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Email already exists", "An account with this email is already registered")
			return
		}
		writeStoreError(w, err, "User")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(updated))
}

// applyUserUpdate copies allow-listed fields onto u and returns a validation message on failure
func applyUserUpdate(u *models.User, req dto.UpdateUserRequest) string {
	if req.Title != nil {
		u.Title = trimmedPtr(req.Title)
	}
	if req.FirstName != nil {
		if !validName(*req.FirstName) {
			return "first_name must be 1 to 50 characters"
		}
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if !validName(*req.LastName) {
			return "last_name must be 1 to 50 characters"
		}
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validEmail(email) {
			return "email must be a valid address"
		}
		u.Email = email
	}
	if req.Phone != nil {
		if !validPhone(*req.Phone) {
			return "phone must be 10 to 15 characters"
		}
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Password != nil && len(*req.Password) < minPasswordLen {
		return "password must be at least 6 characters long"
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !models.ValidRole(role) {
			return "role must be traveler or admin"
		}
		u.Role = role
	}
	return ""
}

// DeleteUser removes a user and everything they own
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := pathID(w, ps)
	if !ok {
		return
	}
	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err, "User")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}
