// Package request defines the tool invocation shape shared by every
// transport: a tool name plus named arguments decoded from JSON.
package request

// Source indicates where a request originated.
type Source uint8

// Request origins.
const (
	SourceInternal Source = iota
	SourceHTTP
	SourceStdio
	SourceMacro
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceHTTP:
		return "http"
	case SourceStdio:
		return "stdio"
	case SourceMacro:
		return "macro"
	default:
		return "internal"
	}
}

// Args holds a request's named arguments. Values come from decoded
// JSON, so numbers usually arrive as float64.
type Args map[string]any

// Get retrieves a raw value and whether it was present.
func (a Args) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a[key]
	return v, ok
}

// Has reports whether the argument was supplied at all.
func (a Args) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// GetString retrieves a string value, or "" when absent or not a
// string.
func (a Args) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value. JSON numbers and Lua integers both
// convert.
func (a Args) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetFloat retrieves a float value.
func (a Args) GetFloat(key string) float64 {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value, or false when absent or not a bool.
func (a Args) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Request is one tool invocation.
type Request struct {
	// ID is the correlation id the transport assigned.
	ID string

	// Name is the tool identifier (e.g. "get_paragraph").
	Name string

	// Args contains the tool's named arguments.
	Args Args

	// Source indicates where this request originated.
	Source Source
}

// WithArgs returns a copy of the request with the arguments replaced.
func (r Request) WithArgs(args Args) Request {
	r.Args = args
	return r
}
