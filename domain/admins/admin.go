package admins

import (
	"strings"
	"time"

	pkgerrors "coursehub/pkg/errors"
)

// Admin is the operator identity allowed to run catalog mutations
type Admin struct {
	ID           string    `json:"id" dynamodbav:"ID"`
	Email        string    `json:"email" dynamodbav:"Email"`
	Name         string    `json:"name" dynamodbav:"Name"`
	PasswordHash string    `json:"-" dynamodbav:"PasswordHash"`
	Role         string    `json:"role" dynamodbav:"Role"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"CreatedAt"`
}

// Validate enforces the admin record invariants
func (a *Admin) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return pkgerrors.NewValidationError("email is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return pkgerrors.NewValidationError("name is required")
	}
	if a.PasswordHash == "" {
		return pkgerrors.NewValidationError("password is required")
	}
	return nil
}
