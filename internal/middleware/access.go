package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

// Rule is the access requirement attached to a route
type Rule int

const (
	// Public routes accept anonymous callers. A valid token still yields an identity.
	Public Rule = iota
	// Authenticated routes require any valid token whose user still exists
	Authenticated
	// Admin routes require the admin role
	Admin
	// SelfOrAdmin routes require the :id path parameter to be the caller, or an admin caller
	SelfOrAdmin
)

func (r Rule) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	case SelfOrAdmin:
		return "self-or-admin"
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

var (
	// ErrUnauthenticated means no usable identity was presented
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity is known but not allowed
	ErrForbidden = errors.New("insufficient permissions")
)

// Identity is the caller resolved from a bearer token.
// Role is read from the store on every request, never from the token.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// CanAccessOwned reports whether the caller may act on a resource owned by ownerID
func CanAccessOwned(id Identity, ownerID int64) bool {
	return id.IsAdmin() || id.UserID == ownerID
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches an identity to ctx
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity attached by Guard, if any
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserLookup resolves token subjects to stored users
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// AccessPolicy turns bearer tokens into identities and enforces route rules
type AccessPolicy struct {
	jwt   *config.JWTConfig
	users UserLookup
}

// NewAccessPolicy creates a policy backed by users
func NewAccessPolicy(cfg *config.JWTConfig, users UserLookup) *AccessPolicy {
	return &AccessPolicy{jwt: cfg, users: users}
}

// Authenticate validates the Authorization header and loads the caller.
// A missing header, a bad token, or a subject with no stored user all yield ErrUnauthenticated.
func (p *AccessPolicy) Authenticate(ctx context.Context, header string) (Identity, error) {
	raw, ok := BearerToken(header)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	claims, err := ValidateToken(raw, p.jwt)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	user, err := p.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrUnauthenticated
		}
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Authorize checks an authenticated identity against rule. targetID is the :id path value
// and is only consulted for SelfOrAdmin.
func (p *AccessPolicy) Authorize(id Identity, rule Rule, targetID int64) error {
	switch rule {
	case Public, Authenticated:
		return nil
	case Admin:
		if id.IsAdmin() {
			return nil
		}
	case SelfOrAdmin:
		if CanAccessOwned(id, targetID) {
			return nil
		}
	}
	return ErrForbidden
}

// Guard wraps next with rule. Unauthenticated callers get 401, authenticated but
// unauthorized callers get 403.
func (p *AccessPolicy) Guard(rule Rule, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")

		if rule == Public {
			if header != "" {
				if id, err := p.Authenticate(r.Context(), header); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next(w, r, ps)
			return
		}

		id, err := p.Authenticate(r.Context(), header)
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Missing or invalid token")
				return
			}
			log.Printf("access: failed to load caller: %v", err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error", "Failed to verify caller")
			return
		}

		var targetID int64
		if rule == SelfOrAdmin {
			targetID, err = strconv.ParseInt(ps.ByName("id"), 10, 64)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request", "Invalid id")
				return
			}
		}

		if err := p.Authorize(id, rule, targetID); err != nil {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "You do not have access to this resource")
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)), ps)
	}
}
