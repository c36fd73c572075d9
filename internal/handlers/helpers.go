package handlers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

const (
	titleValidation = "Validation error"
	minPasswordLen  = 6
	maxNameLen      = 50
	minPhoneLen     = 10
	maxPhoneLen     = 15
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// writeStoreError maps repository errors onto HTTP responses
func writeStoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not found", entity+" not found")
	case errors.Is(err, repository.ErrInsufficientSeats):
		utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Insufficient seats", "Not enough seats available on this flight")
	case errors.Is(err, repository.ErrConflict):
		utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Conflict", entity+" already exists")
	case errors.Is(err, repository.ErrConstraint):
		utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Constraint violation", "Referenced record is missing or a value is out of range")
	default:
		log.Printf("%s store error: %v", strings.ToLower(entity), err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Something went wrong")
	}
}

func writeValidationError(w http.ResponseWriter, message string) {
	utils.WriteErrorResponse(w, http.StatusBadRequest, titleValidation, message)
}

func writeForbidden(w http.ResponseWriter) {
	utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You do not have access to this resource")
}

// pathID parses the :id route parameter, writing a 400 when it is not a positive integer
func pathID(w http.ResponseWriter, ps httprouter.Params) (int64, bool) {
	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidationError(w, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// caller returns the identity attached by the access guard
func caller(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}
	return id, ok
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPhone(phone string) bool {
	n := len(strings.TrimSpace(phone))
	return n >= minPhoneLen && n <= maxPhoneLen
}

func validName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= maxNameLen
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
