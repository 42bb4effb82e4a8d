package service_test

import (
	"context"
	"testing"
	"time"

	"liftlog/workout-app/internal/apperr"
	"liftlog/workout-app/internal/service"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthService(users *fakeUserRepo) service.AuthService {
	return service.NewAuthService(users, fixedClock{now: testNow}, &seqIDGenerator{}, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "id-1", registered.ID)
	assert.Empty(t, registered.PasswordHash, "hash never leaves the service")
	assert.Equal(t, testNow, registered.CreatedAt)

	token, user, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	assert.Equal(t, "id-1", claims["uid"])
	assert.Equal(t, "alice", claims["username"])
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "hunter22")
	assert.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))
	_, err = svc.Register(ctx, "other", "alice@example.com", "hunter22")
	assert.Equal(t, apperr.KindAlreadyExists, apperr.KindOf(err))
	_, err = svc.Register(ctx, "", "x@example.com", "hunter22")
	assert.Equal(t, apperr.KindMisc, apperr.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserRepo())
	_, err := svc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
	_, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}
