package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/cinestream/internal/middleware"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/utils"
)

// RegisterReq 注册请求
type RegisterReq struct {
	Username        string      `json:"username" binding:"required,max=150"`
	Email           string      `json:"email" binding:"omitempty,email"`
	Password        string      `json:"password" binding:"required"`
	PasswordConfirm string      `json:"password_confirm" binding:"required"`
	FirstName       string      `json:"first_name" binding:"max=150"`
	LastName        string      `json:"last_name" binding:"max=150"`
	DateOfBirth     *model.Date `json:"date_of_birth"`
	PhoneNumber     string      `json:"phone_number" binding:"max=15"`
}

// LoginReq 登录请求
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginReq Google 登录请求，access_token 实际为 ID Token
type GoogleLoginReq struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// RefreshReq 刷新令牌请求
type RefreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

// LogoutReq 退出请求
type LogoutReq struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileReq 资料修改请求
type ProfileReq struct {
	Username         *string     `json:"username" binding:"omitempty,max=150"`
	Email            *string     `json:"email" binding:"omitempty,email"`
	FirstName        *string     `json:"first_name" binding:"omitempty,max=150"`
	LastName         *string     `json:"last_name" binding:"omitempty,max=150"`
	Bio              *string     `json:"bio" binding:"omitempty,max=500"`
	DateOfBirth      *model.Date `json:"date_of_birth"`
	PhoneNumber      *string     `json:"phone_number" binding:"omitempty,max=15"`
	SubscriptionPlan *string     `json:"subscription_plan" binding:"omitempty,subscription_plan"`
}

// ChangePasswordReq 修改密码请求
type ChangePasswordReq struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterReq
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		DateOfBirth:     req.DateOfBirth,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			utils.ValidationFailed(c, map[string]string{"username": "A user with that username already exists."})
			return
		}
		respondError(c, err)
		return
	}
	utils.Created(c, result)
}

// Login 用户名密码登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginReq
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Login successful", result)
}

// GoogleLogin Google 账号登录
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginReq
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.Auth.GoogleLogin(c.Request.Context(), req.AccessToken)
	if errors.Is(err, service.ErrUnauthorized) {
		utils.Unauthorized(c, "Invalid Google token")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Google OAuth successful", result)
}

// RefreshToken 换取新的访问令牌
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshReq
	if !bindJSON(c, &req) {
		return
	}

	access, err := h.Auth.Refresh(c.Request.Context(), req.Refresh)
	if errors.Is(err, service.ErrUnauthorized) {
		utils.Unauthorized(c, "Token is invalid or expired")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, gin.H{"access": access})
}

// Logout 退出登录并注销刷新令牌
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	if err := h.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Logout successful", nil)
}

// Profile 获取当前用户资料
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.Auth.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, user.Profile())
}

// UpdateProfile 修改当前用户资料，PUT 与 PATCH 均只修改提交的字段
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Auth.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), service.ProfileUpdate{
		Username:         req.Username,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Bio:              req.Bio,
		DateOfBirth:      req.DateOfBirth,
		PhoneNumber:      req.PhoneNumber,
		SubscriptionPlan: req.SubscriptionPlan,
	})
	if errors.Is(err, service.ErrConflict) {
		utils.ValidationFailed(c, map[string]string{"username": "A user with that username already exists."})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, user.Profile())
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if !bindJSON(c, &req) {
		return
	}

	err := h.Auth.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.OldPassword, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "Password changed successfully", nil)
}

// UserInfo 当前用户信息
func (h *Handler) UserInfo(c *gin.Context) {
	user, err := h.Auth.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, gin.H{"user": user.Profile()})
}
