// Package apperror holds the failure kinds surfaced by the stores and
// services. The HTTP layer translates each kind into a status code.
package apperror

import (
	"errors"
	"fmt"
)

// AuthError is a rejected credential or a caller that may not perform the
// action. Code is the machine readable reason, e.g. "token_expired".
type AuthError struct {
	Code string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Code, e.Err)
	}
	return "auth: " + e.Code
}

func (e *AuthError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

type ConflictError struct {
	Resource string
	Reason   string
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %s", e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// NotFoundError covers both missing rows and rows owned by someone else.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// UpstreamError is a failed call to the external marketplace. StatusCode is
// zero when no response was received.
type UpstreamError struct {
	Code       string
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream: %s: status %d: %s", e.Code, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("upstream: %s: %s", e.Code, e.Detail)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ConfigError is a request that cannot be served because the process is
// missing configuration, e.g. "admin_not_configured".
type ConfigError struct {
	Code string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Code
}

func Auth(code string) error {
	return &AuthError{Code: code}
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

func Conflict(resource, reason string, err error) error {
	return &ConflictError{Resource: resource, Reason: reason, Err: err}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// AuthCode returns the reason code of a wrapped AuthError, or "" when err is
// not one.
func AuthCode(err error) string {
	var target *AuthError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
