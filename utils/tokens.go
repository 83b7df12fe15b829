package utils

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/Startup925/realestate/models"
)

// AccessToken holds the custom claims of an access token.
type AccessToken struct {
	UserID   string      `json:"user_id"`
	UserType models.Role `json:"user_type"`
}

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshStore allow-lists refresh token ids until they are used or revoked.
type RefreshStore interface {
	Allow(ctx context.Context, id string, ttl time.Duration) error
	// Consume removes id and reports whether it was present.
	Consume(ctx context.Context, id string) (bool, error)
}

var errRevoked = errors.New("token revoked")

type TokenIssuer struct {
	accessSigner    *jwt.Signer
	accessVerifier  *jwt.Verifier
	refreshSigner   *jwt.Signer
	refreshVerifier *jwt.Verifier
	refreshTTL      time.Duration
	refresh         RefreshStore
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, refresh RefreshStore) *TokenIssuer {
	accessVerifier := jwt.NewVerifier(jwt.HS256, []byte(accessSecret))
	accessVerifier.WithDefaultBlocklist()

	return &TokenIssuer{
		accessSigner:    jwt.NewSigner(jwt.HS256, []byte(accessSecret), accessTTL),
		accessVerifier:  accessVerifier,
		refreshSigner:   jwt.NewSigner(jwt.HS256, []byte(refreshSecret), refreshTTL),
		refreshVerifier: jwt.NewVerifier(jwt.HS256, []byte(refreshSecret)),
		refreshTTL:      refreshTTL,
		refresh:         refresh,
	}
}

// Issue signs an access token for user and allow-lists a fresh refresh token.
func (t *TokenIssuer) Issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := t.accessSigner.Sign(AccessToken{UserID: user.ID, UserType: user.Role})
	if err != nil {
		return nil, err
	}

	refreshID := uuid.NewString()
	refreshToken, err := t.refreshSigner.Sign(jwt.Claims{ID: refreshID, Subject: user.ID})
	if err != nil {
		return nil, err
	}

	// A little longer than the token itself so expiry is decided by the signature.
	if err := t.refresh.Allow(ctx, refreshID, t.refreshTTL+5*time.Minute); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: string(accessToken), RefreshToken: string(refreshToken)}, nil
}

// Verify checks signature, expiry and the block-list of an access token.
func (t *TokenIssuer) Verify(token string) (*AccessToken, error) {
	verified, err := t.accessVerifier.VerifyToken([]byte(token), t.accessVerifier.Blocklist)
	if err != nil {
		return nil, Unauthenticated("Invalid or expired token")
	}

	var claims AccessToken
	if err := verified.Claims(&claims); err != nil || claims.UserID == "" {
		return nil, Unauthenticated("Invalid token claims")
	}
	return &claims, nil
}

// Revoke blocks an access token until it expires.
func (t *TokenIssuer) Revoke(token string) error {
	verified, err := t.accessVerifier.VerifyToken([]byte(token))
	if err != nil {
		return Unauthenticated("Invalid or expired token")
	}
	return t.accessVerifier.Blocklist.InvalidateToken(verified.Token, verified.StandardClaims)
}

// Rotate consumes a refresh token and returns the user id it was issued to.
// Each refresh token is accepted once.
func (t *TokenIssuer) Rotate(ctx context.Context, refreshToken string) (string, error) {
	verified, err := t.refreshVerifier.VerifyToken([]byte(refreshToken))
	if err != nil {
		return "", Unauthenticated("Invalid or expired refresh token")
	}

	claims := verified.StandardClaims
	ok, err := t.refresh.Consume(ctx, claims.ID)
	if err != nil {
		return "", Internal(err)
	}
	if !ok {
		return "", &AppError{Kind: KindUnauthenticated, Message: "Refresh token already used or revoked", Err: errRevoked}
	}
	return claims.Subject, nil
}

// Discard drops a refresh token from the allow-list, ignoring unknown tokens.
func (t *TokenIssuer) Discard(ctx context.Context, refreshToken string) error {
	verified, err := t.refreshVerifier.VerifyToken([]byte(refreshToken))
	if err != nil {
		return nil
	}
	_, err = t.refresh.Consume(ctx, verified.StandardClaims.ID)
	return err
}
