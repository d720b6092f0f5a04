package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-radar/internal/config"
	"github.com/jonathan/job-radar/internal/types"
)

func testUserService(store Store) *UserService {
	return NewUserService(store, &config.PasswordConfig{BcryptCost: 10})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testUserService(newFakeStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{
		Email:    "sam@example.com",
		Password: "long-enough-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Empty(t, user.HashedPassword, "hash must never leave the service")

	logged, err := svc.Login(ctx, &types.LoginRequest{Email: "sam@example.com", Password: "long-enough-pw"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := testUserService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateUserRequest{Email: "sam@example.com", Password: "long-enough-pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &types.CreateUserRequest{Email: "sam@example.com", Password: "another-pw-123"})
	require.Error(t, err)
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)
}

func TestLoginFailures(t *testing.T) {
	svc := testUserService(newFakeStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, &types.CreateUserRequest{Email: "sam@example.com", Password: "long-enough-pw"})
	require.NoError(t, err)

	// Wrong password and unknown email both collapse to the same error
	var invalid *ErrInvalidCredentials

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "sam@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "nobody@example.com", Password: "long-enough-pw"})
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdatePassword(t *testing.T) {
	svc := testUserService(newFakeStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{Email: "sam@example.com", Password: "original-pw-1"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "original-pw-1", "replacement-pw"))

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "sam@example.com", Password: "original-pw-1"})
	assert.Error(t, err, "old password no longer works")

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "sam@example.com", Password: "replacement-pw"})
	assert.NoError(t, err)
}

func TestUpdatePasswordMismatch(t *testing.T) {
	svc := testUserService(newFakeStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{Email: "sam@example.com", Password: "original-pw-1"})
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, user.ID, "not-the-password", "replacement-pw")
	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUpdatePasswordUnknownUser(t *testing.T) {
	svc := testUserService(newFakeStore())

	err := svc.UpdatePassword(context.Background(), uuid.New(), "x", "replacement-pw")
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
