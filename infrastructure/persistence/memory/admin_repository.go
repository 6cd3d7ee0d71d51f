package memory

import (
	"context"
	"sync"

	"coursehub/application/ports"
	"coursehub/domain/admins"
	pkgerrors "coursehub/pkg/errors"
)

// AdminRepository keeps admin identities in a map keyed by email
type AdminRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*admins.Admin
}

// NewAdminRepository creates an empty in-memory admin repository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		byEmail: make(map[string]*admins.Admin),
	}
}

// Create stores a new admin; email must be unused
func (r *AdminRepository) Create(ctx context.Context, admin *admins.Admin) error {
	if err := admin.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[admin.Email]; exists {
		return pkgerrors.NewConflictError("email already registered")
	}

	clone := *admin
	r.byEmail[admin.Email] = &clone
	return nil
}

// FindByEmail retrieves an admin by email
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.byEmail[email]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("admin")
	}
	clone := *admin
	return &clone, nil
}

// UpdatePassword replaces the stored credential hash
func (r *AdminRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.byEmail[email]
	if !ok {
		return pkgerrors.NewNotFoundError("admin")
	}
	admin.PasswordHash = passwordHash
	return nil
}

var _ ports.AdminRepository = (*AdminRepository)(nil)
