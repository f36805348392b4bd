package valueobject

// Missing stands in for a parameter that was not supplied at all, as opposed
// to one supplied as null. Constructors report it as "Required".
var Missing any = missing{}

type missing struct{}

// Field returns params[key], or Missing when the key is absent.
func Field(params map[string]any, key string) any {
	if v, ok := params[key]; ok {
		return v
	}
	return Missing
}
