package service

import (
	"context"
	"testing"
	"time"

	"github.com/messagely/messagely/internal/core/domain"
	"github.com/messagely/messagely/internal/core/repository"
	"github.com/messagely/messagely/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, tokenTTL time.Duration) (*AuthService, repository.UserRepository) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	// MinCost keeps hashing fast in tests
	return NewAuthService(userRepo, "test-secret", "HS256", bcrypt.MinCost, tokenTTL), userRepo
}

func TestHashAndVerifyPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, 0)

	hash, err := svc.HashPassword("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)
	assert.True(t, svc.VerifyPassword("pw1", hash))
	assert.False(t, svc.VerifyPassword("pw2", hash))
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	ok, err := svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown username collapses into the same invalid-credentials error
	// a bad password would produce at the login boundary
	_, err = svc.Authenticate(ctx, "ghost", "pw1")
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 400, de.Status)
}

func TestAuthenticateHasNoSideEffects(t *testing.T) {
	svc, userRepo := newTestAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	before, err := userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)

	after, err := userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, after.LastLoginAt)
	assert.True(t, after.LastLoginAt.Equal(*before.LastLoginAt))
}

func TestRegisterIssuesTokenAndStampsLogin(t *testing.T) {
	svc, userRepo := newTestAuthService(t, 0)
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	principal, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal)

	user, err := userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "pw2", "Imposter", "Smith", "+14155550199")
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 400, de.Status)
}

func TestLogin(t *testing.T) {
	svc, userRepo := newTestAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	registered, err := userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	token, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	principal, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal)

	// last_login_at strictly increases on each successful login
	loggedIn, err := userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, loggedIn.LastLoginAt)
	assert.True(t, loggedIn.LastLoginAt.After(*registered.LastLoginAt))
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestAuthService(t, 0)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1", "Alice", "Anderson", "+14155550101")
	require.NoError(t, err)

	// Wrong password and unknown user produce identical errors
	_, badPassword := svc.Login(ctx, "alice", "wrong")
	_, badUser := svc.Login(ctx, "ghost", "pw1")
	require.Error(t, badPassword)
	require.Error(t, badUser)
	assert.Equal(t, badPassword.Error(), badUser.Error())
	assert.Equal(t, 400, domain.StatusOf(badPassword))
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	svc, _ := newTestAuthService(t, 0)

	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token + "x")
	assert.Equal(t, 401, domain.StatusOf(err))

	_, err = svc.VerifyToken("not-a-token")
	assert.Equal(t, 401, domain.StatusOf(err))

	// A token signed with a different secret is rejected
	other := NewAuthService(nil, "other-secret", "HS256", 4, 0)
	foreign, err := other.IssueToken("alice")
	require.NoError(t, err)
	_, err = svc.VerifyToken(foreign)
	assert.Equal(t, 401, domain.StatusOf(err))
}

func TestTokenExpiry(t *testing.T) {
	// Default configuration issues non-expiring tokens; with a TTL set,
	// expired tokens are rejected.
	svc, _ := newTestAuthService(t, time.Millisecond)

	token, err := svc.IssueToken("alice")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = svc.VerifyToken(token)
	assert.Equal(t, 401, domain.StatusOf(err))
}
