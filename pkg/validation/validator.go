package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Engine returns the shared validator with the project's custom rules registered.
// - integral: numeric value without a fractional part.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("integral", isIntegral); err != nil {
			panic(fmt.Sprintf("register integral rule: %v", err))
		}
		validate = v
	})
	return validate
}

// Rule is a single validator tag and the message reported when it fails.
// An empty Message reports the validator's own error text.
type Rule struct {
	Tag     string
	Message string
}

// Violations runs every rule against value and returns the messages of the
// failed ones in rule order. A nil result means the value passed.
func Violations(value any, rules ...Rule) []string {
	var out []string
	for _, r := range rules {
		err := Engine().Var(value, r.Tag)
		if err == nil {
			continue
		}
		if r.Message == "" {
			out = append(out, err.Error())
			continue
		}
		out = append(out, r.Message)
	}
	return out
}

// TypeName names the JSON type of a decoded value, for "expected X, received Y" messages.
func TypeName(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Pointer:
		return TypeName(reflect.ValueOf(v).Elem().Interface())
	default:
		return reflect.TypeOf(v).String()
	}
}

func isIntegral(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
