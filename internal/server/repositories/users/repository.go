// Package users contains the user record repositories of the server.
package users

import (
	"context"

	"github.com/avolkovx/userdesk/internal/server/models"
)

// Repository abstracts user record storage. List returns one page of records
// in newest-first order together with the total record count. Create and
// Update return common.ErrAlreadyExists when the email is taken by another
// record; lookups return common.ErrNotFound for missing IDs.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int, error)
}
