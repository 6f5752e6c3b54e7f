package handler

import "fmt"

// ResultStatus indicates the outcome of a tool call.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a tool call.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional human-readable status message.
	Message string

	// Data holds tool-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// SuccessWith creates a successful result carrying the given data.
func SuccessWith(data map[string]any) Result {
	return Result{Status: StatusOK, Data: data}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value any) Result {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from the result data.
func (r Result) GetDataString(key string) string {
	if v, ok := r.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataInt retrieves an int value from the result data.
func (r Result) GetDataInt(key string) int {
	if v, ok := r.GetData(key); ok {
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

// GetDataBool retrieves a bool value from the result data.
func (r Result) GetDataBool(key string) bool {
	if v, ok := r.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Payload converts the result into the wire shape shared by every
// transport: {"success": true, ...data} with the message under
// "message", or {"success": false, "error": "..."} on failure.
func (r Result) Payload() map[string]any {
	out := make(map[string]any, len(r.Data)+2)
	if r.IsError() {
		out["success"] = false
		if r.Error != nil {
			out["error"] = r.Error.Error()
		} else {
			out["error"] = "unknown error"
		}
		return out
	}

	for k, v := range r.Data {
		out[k] = v
	}
	out["success"] = true
	if r.Message != "" {
		out["message"] = r.Message
	}
	return out
}
