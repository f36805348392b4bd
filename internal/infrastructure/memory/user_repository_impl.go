// Package memory provides a process-local user store, used for tests and
// DB_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	"github.com/oksasatya/go-mcp-user-server/internal/domain/repository"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
)

type UserRepository struct {
	mu    sync.RWMutex
	users []*entity.User
	ids   map[string]struct{}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{ids: make(map[string]struct{})}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Internal("Failed to find all users", err)
	}
	r.mu.RLock()
	out := slices.Clone(r.users)
	r.mu.RUnlock()
	if out == nil {
		out = []*entity.User{}
	}
	slices.SortStableFunc(out, func(a, b *entity.User) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		switch {
		case a.ID() > b.ID():
			return -1
		case a.ID() < b.ID():
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := ctx.Err(); err != nil {
		return apperror.Internal("Failed to save user", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := u.ID().String()
	if _, ok := r.ids[id]; ok {
		return apperror.Internal("Failed to save user", fmt.Errorf("%w: %s", repository.ErrUserAlreadyExists, id))
	}
	r.ids[id] = struct{}{}
	r.users = append(r.users, u)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
