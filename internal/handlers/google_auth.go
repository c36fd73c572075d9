package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

const oauthStateCookie = "oauth_state"

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	users        UserStore
	oauth2Config *oauth2.Config
	jwt          *config.JWTConfig
	exchange     func(ctx context.Context, code string) (*oauth2.Token, error)
	userInfo     func(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error)
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users UserStore, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	h := &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		jwt:          &cfg.JWT,
	}
	h.exchange = func(ctx context.Context, code string) (*oauth2.Token, error) {
		return oauth2Config.Exchange(ctx, code)
	}
	h.userInfo = h.getGoogleUserInfo
	return h
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Router /auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Generate state parameter for CSRF protection
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State:   state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchange the authorization code, then sign in or register the Google account as a traveler
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter for CSRF protection"
// @Success 200 {object} dto.LoginResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeValidationError(w, "Authorization code is required")
		return
	}
	// state is checked when the browser still carries the cookie from GoogleLogin
	if cookie, err := r.Cookie(oauthStateCookie); err == nil && cookie.Value != r.URL.Query().Get("state") {
		writeValidationError(w, "OAuth state mismatch")
		return
	}

	token, err := h.exchange(r.Context(), code)
	if err != nil {
		log.Printf("google callback: exchange: %v", err)
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", "Could not verify the Google sign-in")
		return
	}

	info, err := h.userInfo(r.Context(), token)
	if err != nil {
		log.Printf("google callback: userinfo: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", "Something went wrong")
		return
	}
	if info.Email == "" || !info.Verified {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unverified account", "Google account email is not verified")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), info.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = h.createGoogleUser(r.Context(), info)
	}
	if err != nil {
		writeStoreError(w, err, "User")
		return
	}

	jwtToken, err := middleware.GenerateToken(user.ID, user.Email, h.jwt)
	if err != nil {
		log.Printf("google callback: generate token: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", "Something went wrong")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{Token: jwtToken, Role: user.Role, ID: user.ID})
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:         userInfo.Id,
		Email:      userInfo.Email,
		GivenName:  userInfo.GivenName,
		FamilyName: userInfo.FamilyName,
		Verified:   verified,
	}, nil
}

// createGoogleUser registers a traveler from Google profile data with an unusable random password
func (h *GoogleAuthHandler) createGoogleUser(ctx context.Context, info *dto.GoogleUserInfo) (models.User, error) {
	first, last := strings.TrimSpace(info.GivenName), strings.TrimSpace(info.FamilyName)
	if first == "" {
		first = strings.SplitN(info.Email, "@", 2)[0]
	}
	if last == "" {
		last = "-"
	}

	hashed, err := hashPassword(uuid.NewString())
	if err != nil {
		return models.User{}, err
	}

	return h.users.CreateUser(ctx, models.User{
		FirstName:    truncateName(first),
		LastName:     truncateName(last),
		Email:        strings.ToLower(info.Email),
		PasswordHash: hashed,
		Role:         models.RoleTraveler,
	})
}

func truncateName(s string) string {
	if len(s) > maxNameLen {
		return s[:maxNameLen]
	}
	return s
}
