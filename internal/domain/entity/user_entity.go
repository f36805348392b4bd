package entity

import (
	"time"

	vo "github.com/oksasatya/go-mcp-user-server/internal/domain/valueobject"
	"github.com/oksasatya/go-mcp-user-server/pkg/helpers"
)

// User is the aggregate root for the user domain.
// Fields are only reachable through the factories below, so a User always
// holds validated value objects and its id never changes after creation.
type User struct {
	id        vo.UserID
	name      vo.UserName
	age       vo.UserAge
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user that has never been persisted: a fresh id and
// createdAt == updatedAt == now.
func NewUser(name vo.UserName, age vo.UserAge) *User {
	now := helpers.Now()
	return RegisteredUser(vo.UserID(helpers.NewID()), name, age, now, now)
}

// RegisteredUser rehydrates a stored user. Inputs are expected to have been
// validated already.
func RegisteredUser(id vo.UserID, name vo.UserName, age vo.UserAge, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		age:       age,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() vo.UserID        { return u.id }
func (u *User) Name() vo.UserName    { return u.name }
func (u *User) Age() vo.UserAge      { return u.age }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
