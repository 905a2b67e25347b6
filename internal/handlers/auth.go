package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nearhood/nearhood-backend/internal/apperr"
	"github.com/nearhood/nearhood-backend/internal/auth"
	"github.com/nearhood/nearhood-backend/internal/middleware"
	"github.com/nearhood/nearhood-backend/internal/models"
	"github.com/nearhood/nearhood-backend/internal/services"
	"github.com/nearhood/nearhood-backend/internal/storage"
)

// AuthHandler handles OTP issuance and verification requests.
type AuthHandler struct {
	otp    *services.OTPService
	auth   *services.AuthService
	tokens *auth.TokenManager
	store  storage.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(otp *services.OTPService, authSvc *services.AuthService, tokens *auth.TokenManager, store storage.Store) *AuthHandler {
	return &AuthHandler{otp: otp, auth: authSvc, tokens: tokens, store: store}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Flat  string `json:"flat"`
	Floor string `json:"floor"`
	Block string `json:"block"`
	Role  string `json:"role"`
}

// SendOTP issues a verification code for the submitted phone number.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.ErrInvalidInput)
	}

	issue, err := h.otp.RequestOTP(req.Phone)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"success":    true,
		"message":    "OTP sent",
		"expires_at": issue.ExpiresAt,
	}
	// Populated only when code echoing is enabled in config.
	if issue.Code != "" {
		resp["code"] = issue.Code
	}
	return c.JSON(resp)
}

// VerifyOTP consumes the code and logs in or registers the user. The
// error_code field lets clients tell a hard rejection apart from the
// "resubmit with profile fields" case.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.ErrInvalidInput)
	}

	reg := &models.UserRegistration{
		Name:  req.Name,
		Flat:  req.Flat,
		Floor: req.Floor,
		Block: req.Block,
		Role:  req.Role,
	}

	user, err := h.auth.VerifyOTP(req.Phone, req.Code, reg)
	if err != nil {
		return respondError(c, err)
	}

	token, expiresAt, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"token":   token,
		"expires": expiresAt,
	})
}

// Me returns the authenticated caller's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	user, err := h.store.GetUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
