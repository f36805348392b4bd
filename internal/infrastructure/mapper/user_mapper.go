// Package mapper converts persisted user rows into domain entities.
package mapper

import (
	"fmt"

	"github.com/oksasatya/go-mcp-user-server/internal/domain/entity"
	vo "github.com/oksasatya/go-mcp-user-server/internal/domain/valueobject"
	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

// UserRow is the storage shape of a user.
type UserRow struct {
	ID        string
	Name      string
	Age       int64
	CreatedAt string
	UpdatedAt string
}

// ToRow flattens u into its storage shape.
func ToRow(u *entity.User) UserRow {
	return UserRow{
		ID:        u.ID().String(),
		Name:      u.Name().String(),
		Age:       int64(u.Age().Int()),
		CreatedAt: helpers.FormatISO(u.CreatedAt()),
		UpdatedAt: helpers.FormatISO(u.UpdatedAt()),
	}
}

// ToUser re-validates every field of row through the value objects. A row
// that fails is reported as a validation error naming the row id.
func ToUser(row UserRow) (*entity.User, error) {
	id, err := vo.NewUserID(row.ID)
	if err != nil {
		return nil, err
	}
	name, err := vo.NewUserName(row.Name)
	if err != nil {
		return nil, err
	}
	age, err := vo.NewUserAge(row.Age)
	if err != nil {
		return nil, err
	}
	createdAt, err := helpers.ParseISO(row.CreatedAt)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("Invalid created_at for user %s: %v", row.ID, err))
	}
	updatedAt, err := helpers.ParseISO(row.UpdatedAt)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("Invalid updated_at for user %s: %v", row.ID, err))
	}
	return entity.RegisteredUser(id, name, age, createdAt, updatedAt), nil
}

// ToUsers maps rows in order and stops at the first invalid row.
func ToUsers(rows []UserRow) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		u, err := ToUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
