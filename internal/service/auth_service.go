package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/user/cinestream/internal/logging"
	"github.com/user/cinestream/internal/model"
	"github.com/user/cinestream/internal/repository"
)

const minPasswordLength = 8

// AuthResult 登录/注册结果
type AuthResult struct {
	User   model.Profile `json:"user"`
	Tokens *TokenPair    `json:"tokens"`
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
	DateOfBirth     *model.Date
	PhoneNumber     string
}

// ProfileUpdate 资料修改，nil 表示不修改
type ProfileUpdate struct {
	Username         *string
	Email            *string
	FirstName        *string
	LastName         *string
	Bio              *string
	DateOfBirth      *model.Date
	PhoneNumber      *string
	SubscriptionPlan *string
}

// AuthService 账号与令牌
type AuthService struct {
	users   *repository.UserRepository
	tokens  *TokenIssuer
	revoked *RevocationList
	google  GoogleVerifier
}

// NewAuthService 创建账号服务
func NewAuthService(users *repository.UserRepository, tokens *TokenIssuer, revoked *RevocationList, google GoogleVerifier) *AuthService {
	return &AuthService{users: users, tokens: tokens, revoked: revoked, google: google}
}

// Tokens 令牌签发器
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// validatePassword 至少 8 位、不能全为数字、不能与用户名相同
func validatePassword(field, password, username string) error {
	switch {
	case len([]rune(password)) < minPasswordLength:
		return invalid(field, "This password is too short. It must contain at least 8 characters.")
	case strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0:
		return invalid(field, "This password is entirely numeric.")
	case username != "" && strings.EqualFold(password, username):
		return invalid(field, "The password is too similar to the username.")
	}
	return nil
}

func (s *AuthService) result(user *model.User) (*AuthResult, error) {
	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// Register 注册并签发令牌
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Password != in.PasswordConfirm {
		return nil, invalid("non_field_errors", "Passwords don't match")
	}
	if err := validatePassword("password", in.Password, in.Username); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, storeError("find user", err)
	}

	user := &model.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		PhoneNumber: in.PhoneNumber,
	}
	if err := s.users.Create(ctx, user, in.Password); err != nil {
		return nil, storeError("create user", err)
	}

	logging.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("用户注册")
	return s.result(user)
}

// Login 用户名密码登录
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	if !user.IsActive || !s.users.CheckPassword(user, password) {
		return nil, ErrUnauthorized
	}
	return s.result(user)
}

// GoogleLogin 校验 Google ID Token，按 Google 账号获取或创建用户
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		logging.Warn().Err(err).Msg("Google ID Token 校验失败")
		return nil, ErrUnauthorized
	}
	if identity.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByGoogleID(ctx, identity.Subject)
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		googleID := identity.Subject
		picture := identity.Picture
		user = &model.User{
			Username:       identity.Email,
			Email:          identity.Email,
			FirstName:      identity.GivenName,
			LastName:       identity.FamilyName,
			GoogleID:       &googleID,
			ProfilePicture: &picture,
		}
		if err := s.users.Create(ctx, user, ""); err != nil {
			return nil, storeError("create google user", err)
		}
		logging.Info().Uint("user_id", user.ID).Msg("Google 用户注册")
	case err != nil:
		return nil, storeError("find google user", err)
	case user.ProfilePicture == nil || *user.ProfilePicture != identity.Picture:
		if err := s.users.UpdateProfilePicture(ctx, user.ID, identity.Picture); err != nil {
			return nil, storeError("update profile picture", err)
		}
		picture := identity.Picture
		user.ProfilePicture = &picture
	}

	if !user.IsActive {
		return nil, ErrUnauthorized
	}
	return s.result(user)
}

// Refresh 用刷新令牌换取新的访问令牌
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.tokens.Parse(refresh, TokenTypeRefresh)
	if err != nil {
		return "", ErrUnauthorized
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", storeError("check revoked token", err)
	}
	if revoked {
		return "", ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", storeError("find user", err)
	}
	if !user.IsActive {
		return "", ErrUnauthorized
	}
	return s.tokens.IssueAccess(user.ID, user.Username)
}

// Logout 注销刷新令牌，未提供令牌时直接成功
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	if refresh == "" {
		return nil
	}
	claims, err := s.tokens.Parse(refresh, TokenTypeRefresh)
	if err != nil {
		return invalid("refresh_token", "Invalid refresh token")
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return storeError("revoke token", err)
	}
	return nil
}

// Authenticate 校验访问令牌
func (s *AuthService) Authenticate(ctx context.Context, access string) (*Claims, error) {
	claims, err := s.tokens.Parse(access, TokenTypeAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// GetProfile 获取用户资料
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeError("get profile", err)
	}
	return user, nil
}

// UpdateProfile 修改资料
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.User, error) {
	fields := map[string]any{}
	if in.Username != nil {
		if strings.TrimSpace(*in.Username) == "" {
			return nil, invalid("username", "This field may not be blank.")
		}
		fields["username"] = *in.Username
	}
	if in.SubscriptionPlan != nil {
		switch *in.SubscriptionPlan {
		case model.PlanBasic, model.PlanStandard, model.PlanPremium:
			fields["subscription_plan"] = *in.SubscriptionPlan
		default:
			return nil, invalid("subscription_plan", "Invalid subscription plan")
		}
	}
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setString("email", in.Email)
	setString("first_name", in.FirstName)
	setString("last_name", in.LastName)
	setString("bio", in.Bio)
	setString("phone_number", in.PhoneNumber)
	if in.DateOfBirth != nil {
		fields["date_of_birth"] = *in.DateOfBirth
	}

	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, storeError("update profile", err)
	}
	return s.GetProfile(ctx, userID)
}

// ChangePassword 校验旧密码后修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, newPasswordConfirm string) error {
	if newPassword != newPasswordConfirm {
		return invalid("non_field_errors", "New passwords don't match")
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !s.users.CheckPassword(user, oldPassword) {
		return invalid("old_password", "Current password is incorrect")
	}
	if err := validatePassword("new_password", newPassword, user.Username); err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, newPassword); err != nil {
		return storeError("update password", err)
	}
	return nil
}
