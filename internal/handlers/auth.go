package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/services"
)

type AuthHandler struct {
	authService  services.AuthService
	resetService services.PasswordResetService
}

func NewAuthHandler(authService services.AuthService, resetService services.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, resetService: resetService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.Email == "" {
		RespondError(c, apierr.MissingField("email"))
		return
	}
	if req.Password == "" {
		RespondError(c, apierr.MissingField("password"))
		return
	}

	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"user": user.Summary()})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.Email == "" {
		RespondError(c, apierr.MissingField("email"))
		return
	}
	if req.Password == "" {
		RespondError(c, apierr.MissingField("password"))
		return
	}

	token, user, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"token": token, "user": user})
}

func (ah *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.Email == "" {
		RespondError(c, apierr.MissingField("email"))
		return
	}

	if err := ah.resetService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		RespondError(c, err)
		return
	}
	// Identical body whether or not the email has an account.
	RespondOK(c, gin.H{"message": "if the email exists, a reset code has been sent"})
}

func (ah *AuthHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.OTP == "" {
		RespondError(c, apierr.MissingField("otp"))
		return
	}

	if err := ah.resetService.VerifyOTP(c.Request.Context(), req.OTP); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "code is valid"})
}

func (ah *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest(err))
		return
	}
	if req.OTP == "" {
		RespondError(c, apierr.MissingField("otp"))
		return
	}
	if req.NewPassword == "" {
		RespondError(c, apierr.MissingField("new_password"))
		return
	}

	if err := ah.resetService.ResetPassword(c.Request.Context(), req.OTP, req.NewPassword); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "password has been reset"})
}
