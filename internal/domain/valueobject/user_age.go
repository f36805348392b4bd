package valueobject

import (
	"encoding/json"
	"reflect"

	"github.com/oksasatya/go-mcp-user-server/pkg/validation"
)

// UserAge is an integer age between 0 and 150 inclusive.
type UserAge int

var userAgeRules = []validation.Rule{
	{Tag: "integral", Message: "Age must be an integer"},
	{Tag: "gte=0", Message: "Age must be 0 or greater"},
	{Tag: "lte=150", Message: "Age must be 150 or less"},
}

// NewUserAge validates untrusted input. Any Go numeric type is accepted, as is
// json.Number; decoded JSON numbers arrive as float64.
func NewUserAge(input any) (UserAge, error) {
	if input == Missing {
		return 0, invalid("Invalid age", []string{"Required"})
	}
	n, ok := asFloat(input)
	if !ok {
		return 0, invalid("Invalid age", []string{"Expected number, received " + validation.TypeName(input)})
	}
	if msgs := validation.Violations(n, userAgeRules...); len(msgs) > 0 {
		return 0, invalid("Invalid age", msgs)
	}
	return UserAge(int(n)), nil
}

func (a UserAge) Int() int { return int(a) }

func asFloat(input any) (float64, bool) {
	if num, ok := input.(json.Number); ok {
		f, err := num.Float64()
		return f, err == nil
	}
	if input == nil {
		return 0, false
	}
	v := reflect.ValueOf(input)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}
