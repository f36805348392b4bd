package valueobject

import (
	"strings"

	"github.com/oksasatya/go-mcp-user-server/pkg/apperror"
	"github.com/oksasatya/go-mcp-user-server/pkg/validation"
)

// UserName is a trimmed user name of 1 to 100 characters.
type UserName string

var userNameRules = []validation.Rule{
	{Tag: "min=1", Message: "User name cannot be empty"},
	{Tag: "max=100", Message: "User name cannot exceed 100 characters"},
}

// NewUserName validates untrusted input and returns the trimmed name.
func NewUserName(input any) (UserName, error) {
	s, err := trimmedString(input, "Invalid user name", userNameRules)
	if err != nil {
		return "", err
	}
	return UserName(s), nil
}

func (n UserName) String() string { return string(n) }

func trimmedString(input any, prefix string, rules []validation.Rule) (string, error) {
	if input == Missing {
		return "", invalid(prefix, []string{"Required"})
	}
	s, ok := input.(string)
	if !ok {
		return "", invalid(prefix, []string{"Expected string, received " + validation.TypeName(input)})
	}
	s = strings.TrimSpace(s)
	if msgs := validation.Violations(s, rules...); len(msgs) > 0 {
		return "", invalid(prefix, msgs)
	}
	return s, nil
}

func invalid(prefix string, msgs []string) *apperror.Error {
	return apperror.Validation(prefix + ": " + strings.Join(msgs, ", "))
}
