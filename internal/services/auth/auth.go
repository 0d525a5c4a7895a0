// Package auth turns a bearer token into the principal a request acts as.
// Tokens are issued by the SSO service and signed with the shared app secret.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"cinerate/proj/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

type GetUserParams struct {
	ID       int64
	Email    string
	IsActive bool
}

type SsoProvider interface {
	GetUser(ctx context.Context, params GetUserParams) (*models.User, error)
}

type AuthService struct {
	log    *slog.Logger
	secret []byte
	sso    SsoProvider
}

// New builds the service. sso may be nil, then a valid token alone identifies the user.
func New(log *slog.Logger, appSecret string, ssoProvider SsoProvider) *AuthService {
	return &AuthService{
		log:    log,
		secret: []byte(appSecret),
		sso:    ssoProvider,
	}
}

func (a *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	log := a.log.With("op", op)
	userID, err := a.parseToken(token)
	if err != nil {
		log.Info("rejected token", "reason", err.Error())
		return nil, ErrInvalidToken
	}
	log = log.With("userID", userID)
	if a.sso == nil {
		return &models.User{ID: userID, IsActive: true}, nil
	}
	user, err := a.sso.GetUser(ctx, GetUserParams{ID: userID, IsActive: true})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn("user not found")
			return nil, ErrUserNotFound
		}
		log.Error("Error calling Sso.GetUser", "errMsg", err.Error())
		return nil, err
	}
	return user, nil
}

func (a *AuthService) parseToken(token string) (int64, error) {
	parsed, err := jwt.Parse(
		token,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("unexpected claims type")
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid < 1 {
		return 0, errors.New("token has no uid claim")
	}
	return int64(uid), nil
}
