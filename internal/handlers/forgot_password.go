package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/config"
	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/middleware"
	"AIRESCAPE_BACK-END/internal/models"
	"AIRESCAPE_BACK-END/internal/repository"
	"AIRESCAPE_BACK-END/internal/utils"
)

const (
	resetCodeLength = 6
	resetCodeTTL    = 3 * time.Minute
)

// ForgotPasswordHandler handles forgot password functionality
type ForgotPasswordHandler struct {
	users  UserStore
	resets ResetStore
	mailer utils.Mailer
	jwt    *config.JWTConfig
	// logCodes writes codes to the log when no mailer is set (development only)
	logCodes bool
	now      func() time.Time
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance. mailer may be nil:
// with logCodes set the code is written to the log, otherwise requests fail with 503.
func NewForgotPasswordHandler(users UserStore, resets ResetStore, mailer utils.Mailer, cfg *config.JWTConfig, logCodes bool) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{users: users, resets: resets, mailer: mailer, jwt: cfg, logCodes: logCodes, now: time.Now}
}

// ForgotPassword sends verification code to user's email
// @Summary Request password reset
// @Description Send 6-digit verification code to user's email for password reset
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.ForgotPasswordResponse "Verification code sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Code already sent"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Failure 503 {object} dto.ErrorResponse "Email delivery not configured"
// @Router /auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		writeValidationError(w, "email is required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found with this email")
			return
		}
		writeStoreError(w, err, "User")
		return
	}

	// an unused, unexpired code blocks a new one until it lapses
	latest, err := h.resets.LatestResetCode(r.Context(), user.ID)
	switch {
	case err == nil && !latest.Used && h.now().Before(latest.ExpiresAt):
		remaining := latest.ExpiresAt.Sub(h.now())
		utils.WriteErrorResponse(w, http.StatusTooManyRequests, "Code already sent",
			fmt.Sprintf("Please wait %d seconds before requesting a new code", int(remaining.Seconds())+1))
		return
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		writeStoreError(w, err, "Verification code")
		return
	}

	code, err := generateVerificationCode(resetCodeLength)
	if err != nil {
		log.Printf("forgot password: generate code: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate code", "Something went wrong")
		return
	}

	message := "Verification code has been sent to your email"
	switch {
	case h.mailer != nil:
		// store the code only after delivery
		if err := h.mailer.SendVerificationCode(user.Email, code, resetCodeTTL); err != nil {
			log.Printf("forgot password: send code to user %d: %v", user.ID, err)
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to send email", "Could not deliver the verification code")
			return
		}
	case h.logCodes:
		log.Printf("forgot password: email not configured, code for user %d is %s", user.ID, code)
		message = "Email delivery is not configured; the verification code was written to the server log"
	default:
		log.Printf("forgot password: email not configured, no code issued for user %d", user.ID)
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "Email unavailable", "Password reset by email is not available right now")
		return
	}

	if _, err := h.resets.CreateResetCode(r.Context(), models.PasswordResetCode{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: h.now().Add(resetCodeTTL),
	}); err != nil {
		writeStoreError(w, err, "Verification code")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ForgotPasswordResponse{
		Message:   message,
		Email:     user.Email,
		ExpiresIn: "3 minutes",
	})
}

// VerifyOTP verifies the OTP and returns a reset token
// @Summary Verify OTP
// @Description Verify the 6-digit code and get a temporary reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and verification code"
// @Success 200 {object} dto.VerifyOTPResponse "OTP verified successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/verify-otp [post]
func (h *ForgotPasswordHandler) VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.VerifyOTPRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Code == "" {
		writeValidationError(w, "email and code are required")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "No verification code found")
			return
		}
		writeStoreError(w, err, "User")
		return
	}

	latest, ok := h.checkCode(w, user.ID, req.Code, r)
	if !ok {
		return
	}

	resetToken, err := middleware.GenerateResetToken(user.ID, user.Email, latest.Code, h.jwt)
	if err != nil {
		log.Printf("verify otp: generate reset token: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate reset token", "Something went wrong")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.VerifyOTPResponse{
		Message:    "OTP verified successfully",
		ResetToken: resetToken,
		ExpiresIn:  fmt.Sprintf("%d minutes", int(h.jwt.ResetTokenTTL.Minutes())),
	})
}

// ResetPassword resets user's password using reset token
// @Summary Reset password
// @Description Reset user's password with new password using reset token
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.ResetToken == "" || req.NewPassword == "" {
		writeValidationError(w, "reset_token and new_password are required")
		return
	}
	if len(req.NewPassword) < minPasswordLen {
		writeValidationError(w, "Password must be at least 6 characters long")
		return
	}

	claims, err := middleware.ValidateResetToken(req.ResetToken, h.jwt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid reset token", "Reset token is invalid or expired")
		return
	}

	// the code behind the token must still be the live one
	if _, ok := h.checkCode(w, claims.UserID, claims.Code, r); !ok {
		return
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		log.Printf("reset password: hash: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", "Something went wrong")
		return
	}
	if err := h.resets.ResetPassword(r.Context(), claims.UserID, hashed); err != nil {
		writeStoreError(w, err, "User")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Password has been reset successfully"})
}

// checkCode compares code with the user's latest reset code, writing a 401 on mismatch
func (h *ForgotPasswordHandler) checkCode(w http.ResponseWriter, userID int64, code string, r *http.Request) (models.PasswordResetCode, bool) {
	latest, err := h.resets.LatestResetCode(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "No verification code found")
			return latest, false
		}
		writeStoreError(w, err, "Verification code")
		return latest, false
	}

	switch {
	case latest.Used:
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code already used", "This verification code has already been used")
	case h.now().After(latest.ExpiresAt):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Code expired", "Verification code has expired. Please request a new one")
	case subtle.ConstantTimeCompare([]byte(latest.Code), []byte(code)) != 1:
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid code", "The verification code you entered is incorrect")
	default:
		return latest, true
	}
	return latest, false
}

// generateVerificationCode generates a random n-digit verification code
func generateVerificationCode(length int) (string, error) {
	const digits = "0123456789"
	code := make([]byte, length)

	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[num.Int64()]
	}

	return string(code), nil
}
