package valueobject

import "github.com/oksasatya/go-mcp-user-server/pkg/validation"

// UserID identifies a user. Ids are generated server-side; NewUserID is only
// used when rehydrating persisted rows.
type UserID string

var userIDRules = []validation.Rule{
	{Tag: "min=1", Message: "User ID cannot be empty"},
	{Tag: "max=100", Message: "User ID cannot exceed 100 characters"},
}

func NewUserID(input any) (UserID, error) {
	s, err := trimmedString(input, "Invalid user ID", userIDRules)
	if err != nil {
		return "", err
	}
	return UserID(s), nil
}

func (id UserID) String() string { return string(id) }
