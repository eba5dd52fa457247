package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"
)

const (
	googleIssuer     = "https://accounts.google.com"
	googleIssuerBare = "accounts.google.com"
	googleKeysURL    = "https://www.googleapis.com/oauth2/v3/certs"
)

// GoogleIdentity 经过验证的 Google 账号信息
type GoogleIdentity struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// GoogleVerifier 校验 Google ID Token
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// OIDCGoogleVerifier 通过 Google 公钥校验 ID Token 的签名、签发方与受众
type OIDCGoogleVerifier struct {
	verifiers []*rp.IDTokenVerifier
}

// NewGoogleVerifier clientID 为空时所有校验都会失败
func NewGoogleVerifier(clientID string) *OIDCGoogleVerifier {
	keySet := rp.NewRemoteKeySet(&http.Client{Timeout: 10 * time.Second}, googleKeysURL)
	return &OIDCGoogleVerifier{
		verifiers: []*rp.IDTokenVerifier{
			rp.NewIDTokenVerifier(googleIssuer, clientID, keySet),
			rp.NewIDTokenVerifier(googleIssuerBare, clientID, keySet),
		},
	}
}

// Verify Google 会使用两种 iss 写法，依次尝试
func (v *OIDCGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	var lastErr error
	for _, verifier := range v.verifiers {
		claims, err := rp.VerifyIDToken[*oidc.IDTokenClaims](ctx, idToken, verifier)
		if err == nil {
			return &GoogleIdentity{
				Subject:    claims.Subject,
				Email:      claims.Email,
				GivenName:  claims.GivenName,
				FamilyName: claims.FamilyName,
				Picture:    claims.Picture,
			}, nil
		}
		lastErr = err
		if !errors.Is(err, oidc.ErrIssuerInvalid) {
			break
		}
	}
	return nil, lastErr
}
