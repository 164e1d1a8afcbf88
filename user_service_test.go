package attend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.workpoint.io/attend/domain"
	"go.workpoint.io/attend/internal/auth"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	// Low cost keeps hashing fast in tests.
	return NewUserService(repo, auth.NewBcryptPasswordHasher(4), fixedClock(now)), repo
}

func TestRegisterUser(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Register(context.Background(), " Ann@WorkPoint.io ", "hunter22", "Ann", domain.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, "ann@workpoint.io", user.Email, "emails are normalized")
	assert.True(t, user.Active)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	stored, err := repo.GetByEmail(context.Background(), "ann@workpoint.io")
	require.NoError(t, err)
	assert.NoError(t, auth.NewBcryptPasswordHasher(0).Verify(stored.PasswordHash, "hunter22"))

	fetched, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, fetched.Email)
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _ := newTestUserService(t)

	tests := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{"empty email", "", "hunter22", domain.RoleEmployee},
		{"no at sign", "ann.workpoint.io", "hunter22", domain.RoleEmployee},
		{"short password", "ann@workpoint.io", "abc", domain.RoleEmployee},
		{"unknown role", "ann@workpoint.io", "hunter22", domain.Role("superuser")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password, "Ann", tt.role)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "ann@workpoint.io", "hunter22", "Ann", domain.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ANN@workpoint.io", "hunter22", "Other Ann", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
