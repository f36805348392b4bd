package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
)

// UserRepository is the persistence capability the workflows depend on.
// Implementations return *apperror.Error values; anything else is wrapped into
// an internal error before it leaves the implementation.
type UserRepository interface {
	// FindAll returns every user, most recently created first.
	FindAll(ctx context.Context) ([]*entity.User, error)
	// Save inserts u. It never updates an existing row; a duplicate id is an error.
	Save(ctx context.Context, u *entity.User) error
}

// ErrUserAlreadyExists is the cause recorded when Save hits an existing id.
var ErrUserAlreadyExists = errors.New("user already exists")
