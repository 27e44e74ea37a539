package twoindex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrInvalidBaseURL      = errors.New("invalid base URL")
	ErrInvalidProxyURL     = errors.New("invalid proxy URL")
	ErrInvalidResponse     = errors.New("invalid API response")
	ErrMissingResponseKey  = errors.New("response is missing expected key")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrInvalidBoolean      = errors.New("invalid boolean")
	ErrNegativeCount       = errors.New("count must not be negative")
)

// Sentinels matched by APIError.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// APIError is returned when the server answered but the operation failed,
// either through an explicit "success": false in the body or through an HTTP
// error status.
type APIError struct {
	// Message is the flattened "errors" field, else the "message" field,
	// else "API Error".
	Message string `json:"message" yaml:"message"`
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"status_code" yaml:"status_code"`
	// Errors is the decoded "errors" field. It is never nil. List-shaped
	// errors are keyed by their index.
	Errors map[string]interface{} `json:"errors" yaml:"errors"`
	// InvalidLinks lists the submitted links the API rejected. It is never nil.
	InvalidLinks []string `json:"invalid_links" yaml:"invalid_links"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	case 422:
		return target == ErrValidation
	case 429:
		return target == ErrRateLimited
	}

	return false
}

// FieldErrors returns the messages recorded for one field or category,
// flattened to strings.
func (e *APIError) FieldErrors(field string) []string {
	value, ok := e.Errors[field]
	if !ok {
		return nil
	}

	return flattenValue(value)
}

// Fields returns the field or category names present in Errors, sorted.
func (e *APIError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}

func flattenValue(value interface{}) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []interface{}:
		var out []string
		for _, item := range typed {
			out = append(out, flattenValue(item)...)
		}

		return out
	case map[string]interface{}:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		var out []string
		for _, key := range keys {
			out = append(out, flattenValue(typed[key])...)
		}

		return out
	case string:
		return []string{typed}
	default:
		return []string{fmt.Sprint(typed)}
	}
}

// NetworkError represents a transport failure or a response that could not
// be decoded. The outcome of the request is unknown to the caller.
type NetworkError struct {
	// Op is the HTTP method of the failed request.
	Op string
	// URL is the request URL.
	URL string
	// StatusCode is set when a response was received but its body was unusable.
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, e.Op)
	}

	if e.URL != "" {
		parts = append(parts, e.URL)
	}

	if len(parts) == 0 {
		return fmt.Sprintf("network error: %v", e.Err)
	}

	return fmt.Sprintf("network error: %s: %v", strings.Join(parts, " "), e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsAPIError checks if the error is an application-level API error.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsNetworkError checks if the error is a transport or decoding failure.
func IsNetworkError(err error) bool {
	netErr := &NetworkError{}

	return errors.As(err, &netErr)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
