package attend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go.workpoint.io/attend/domain"
	"go.workpoint.io/attend/internal/auth"
)

// UserService provisions employee accounts. Only admins reach its mutating
// operations; the HTTP layer enforces the role.
type UserService struct {
	repo   domain.UserRepository
	hasher auth.PasswordHasher
	now    func() time.Time
}

// NewUserService creates a UserService. Pass nil for hasher to use bcrypt at
// the default cost, nil for now to use the wall clock.
func NewUserService(repo domain.UserRepository, hasher auth.PasswordHasher, now func() time.Time) *UserService {
	if hasher == nil {
		hasher = auth.NewBcryptPasswordHasher(0)
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{repo: repo, hasher: hasher, now: now}
}

// Register creates an active account. The email is lowercased so logins are
// case-insensitive; a duplicate surfaces as domain.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if role != domain.RoleEmployee && role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	ts := s.now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Active:       true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get fetches one account by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
