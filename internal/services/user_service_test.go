package services

import (
	"context"
	"testing"

	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.RegisterUser(context.Background(), "+77001234567", "secret123", "Dana")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "Dana", user.Name)

	// The stored password is a bcrypt hash, not the plaintext.
	assert.NotEqual(t, "secret123", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("secret123")))
}

func TestRegisterUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	cases := []struct {
		name     string
		phone    string
		password string
	}{
		{"missingPhone", "", "secret123"},
		{"missingPassword", "+77001234567", ""},
		{"malformedPhone", "not-a-phone", "secret123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tc.phone, tc.password, "Dana")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRegisterUserDuplicatePhone(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.RegisterUser(context.Background(), "+77001234567", "secret123", "Dana")
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), "+77001234567", "other456", "Impostor")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthenticateUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	registered, err := svc.RegisterUser(context.Background(), "+77001234567", "secret123", "Dana")
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(context.Background(), "+77001234567", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateUserBadCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.RegisterUser(context.Background(), "+77001234567", "secret123", "Dana")
	require.NoError(t, err)

	// Wrong password and unknown phone fail identically.
	_, err = svc.AuthenticateUser(context.Background(), "+77001234567", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, err = svc.AuthenticateUser(context.Background(), "+77009999999", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestGetUsersPagination(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	for i := 0; i < 25; i++ {
		store.addUser("+7700"+string(rune('a'+i)), "user")
	}

	users, total, err := svc.GetUsers(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, users, 5)
}
