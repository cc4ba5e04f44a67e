package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/commodity-gate/internal/auth"
	"github.com/spec-kit/commodity-gate/internal/domain"
)

// UserRepository defines read access to user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns an in-memory repository holding users.
func NewMemoryUserRepository(users ...domain.User) UserRepository {
	r := &memoryUserRepository{
		byID:    make(map[string]domain.User, len(users)),
		byEmail: make(map[string]string, len(users)),
	}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byEmail[normalizeEmail(u.Email)] = u.ID
	}
	return r
}

// NewDemoUserRepository seeds the manager and store keeper accounts, both
// using password.
func NewDemoUserRepository(password string, bcryptCost int) (UserRepository, error) {
	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return NewMemoryUserRepository(
		domain.User{ID: "1", Email: "manager@slooze.com", Name: "John Manager", Role: domain.RoleManager, PasswordHash: hash, CreatedAt: now},
		domain.User{ID: "2", Email: "storekeeper@slooze.com", Name: "Jane StoreKeeper", Role: domain.RoleStoreKeeper, PasswordHash: hash, CreatedAt: now},
	), nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
