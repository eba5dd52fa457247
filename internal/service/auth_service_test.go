package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinestream/internal/repository"
	"github.com/user/cinestream/internal/service"
	"github.com/user/cinestream/internal/testutil"
)

type fakeGoogle struct {
	identities map[string]*service.GoogleIdentity
}

func (f *fakeGoogle) Verify(_ context.Context, idToken string) (*service.GoogleIdentity, error) {
	if id, ok := f.identities[idToken]; ok {
		return id, nil
	}
	return nil, errors.New("token signature invalid")
}

func newAuth(t *testing.T) (*service.AuthService, *repository.Repositories, *fakeGoogle) {
	t.Helper()
	repos := repository.NewRepositories(testutil.NewDB(t))
	google := &fakeGoogle{identities: map[string]*service.GoogleIdentity{}}
	auth := service.NewAuthService(
		repos.User,
		service.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour),
		service.NewRevocationList(repos.RevokedToken),
		google,
	)
	return auth, repos, google
}

func register(t *testing.T, auth *service.AuthService, username, password string) *service.AuthResult {
	t.Helper()
	res, err := auth.Register(context.Background(), service.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return res
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestRegister(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	res := register(t, auth, "alice", "correct-horse")
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "basic", res.User.SubscriptionPlan)
	assert.Equal(t, "alice", res.User.FullName)
	assert.NotEmpty(t, res.Tokens.Access)
	assert.NotEmpty(t, res.Tokens.Refresh)

	_, err := auth.Register(ctx, service.RegisterInput{Username: "alice", Password: "correct-horse", PasswordConfirm: "correct-horse"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		in      service.RegisterInput
		field   string
		message string
	}{
		{"mismatch", service.RegisterInput{Username: "bob", Password: "correct-horse", PasswordConfirm: "other-horse"},
			"non_field_errors", "Passwords don't match"},
		{"too short", service.RegisterInput{Username: "bob", Password: "short", PasswordConfirm: "short"},
			"password", "This password is too short. It must contain at least 8 characters."},
		{"numeric", service.RegisterInput{Username: "bob", Password: "12345678", PasswordConfirm: "12345678"},
			"password", "This password is entirely numeric."},
		{"same as username", service.RegisterInput{Username: "longusername", Password: "LongUsername", PasswordConfirm: "LongUsername"},
			"password", "The password is too similar to the username."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tc.in)
			assert.Equal(t, tc.message, fieldErrors(t, err)[tc.field])
		})
	}
}

func TestLogin(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	register(t, auth, "alice", "correct-horse")

	res, err := auth.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)

	claims, err := auth.Authenticate(ctx, res.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)

	_, err = auth.Authenticate(ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = auth.Login(ctx, "alice", "wrong-horse")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	_, err = auth.Login(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestRefreshAndLogout(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	res := register(t, auth, "alice", "correct-horse")

	access, err := auth.Refresh(ctx, res.Tokens.Refresh)
	require.NoError(t, err)
	_, err = auth.Authenticate(ctx, access)
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, res.Tokens.Access)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	require.NoError(t, auth.Logout(ctx, res.Tokens.Refresh))
	_, err = auth.Refresh(ctx, res.Tokens.Refresh)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	require.NoError(t, auth.Logout(ctx, ""))
	assert.Equal(t, "Invalid refresh token", fieldErrors(t, auth.Logout(ctx, "garbage"))["refresh_token"])
}

func TestGoogleLogin(t *testing.T) {
	auth, repos, google := newAuth(t)
	ctx := context.Background()
	google.identities["id-token"] = &service.GoogleIdentity{
		Subject:    "1234567890",
		Email:      "gina@example.com",
		GivenName:  "Gina",
		FamilyName: "Lopez",
		Picture:    "https://example.com/a.png",
	}

	first, err := auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, "gina@example.com", first.User.Username)
	assert.Equal(t, "Gina Lopez", first.User.FullName)
	assert.Equal(t, "https://example.com/a.png", first.User.ProfilePictureURL)

	google.identities["id-token"].Picture = "https://example.com/b.png"
	second, err := auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "https://example.com/b.png", second.User.ProfilePictureURL)

	stored, err := repos.User.FindByID(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b.png", stored.ProfilePictureURL())

	_, err = auth.GoogleLogin(ctx, "forged")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestUpdateProfileAndPassword(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()
	res := register(t, auth, "alice", "correct-horse")
	id := res.User.ID

	bio := "film buff"
	plan := "premium"
	user, err := auth.UpdateProfile(ctx, id, service.ProfileUpdate{Bio: &bio, SubscriptionPlan: &plan})
	require.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	assert.Equal(t, plan, user.SubscriptionPlan)
	assert.Equal(t, "alice@example.com", user.Email)

	gold := "gold"
	_, err = auth.UpdateProfile(ctx, id, service.ProfileUpdate{SubscriptionPlan: &gold})
	assert.Contains(t, fieldErrors(t, err), "subscription_plan")

	err = auth.ChangePassword(ctx, id, "wrong-horse", "battery-staple", "battery-staple")
	assert.Contains(t, fieldErrors(t, err), "old_password")
	err = auth.ChangePassword(ctx, id, "correct-horse", "battery-staple", "battery-stapler")
	assert.Contains(t, fieldErrors(t, err), "non_field_errors")

	require.NoError(t, auth.ChangePassword(ctx, id, "correct-horse", "battery-staple", "battery-staple"))
	_, err = auth.Login(ctx, "alice", "battery-staple")
	require.NoError(t, err)
}
