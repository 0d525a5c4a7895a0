package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinerate/proj/internal/domain/errs"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/lib/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

type ssoStub struct {
	users map[int64]*models.User
	err   error
	calls int
}

func (s *ssoStub) GetUser(_ context.Context, params GetUserParams) (*models.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[params.ID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func TestAuthenticate_WithoutSSO(t *testing.T) {
	a := New(logger.Discard(), secret, nil)
	token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"uid": 42, "exp": time.Now().Add(time.Hour).Unix(),
	})
	user, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, user.ID)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	a := New(logger.Discard(), secret, nil)
	testCases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"uid": 1})},
		{"expired", signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"uid": 1, "exp": time.Now().Add(-time.Minute).Unix(),
		})},
		{"no uid", signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "1"})},
		{"other algorithm", signToken(t, jwt.SigningMethodHS512, []byte(secret), jwt.MapClaims{"uid": 1})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Authenticate(context.Background(), tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, errs.ErrUnauthenticated)
		})
	}
}

func TestAuthenticate_ConfirmsWithSSO(t *testing.T) {
	sso := &ssoStub{users: map[int64]*models.User{7: {ID: 7, Username: "neo", IsActive: true}}}
	a := New(logger.Discard(), secret, sso)

	user, err := a.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"uid": 7}))
	require.NoError(t, err)
	assert.Equal(t, "neo", user.Username)

	_, err = a.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"uid": 8}))
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	sso.err = errors.New("unavailable")
	_, err = a.Authenticate(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"uid": 7}))
	assert.EqualError(t, err, "unavailable")
	assert.Equal(t, 3, sso.calls)
}
