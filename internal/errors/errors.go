// Package errors provides custom error types for the playground.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrInvalidRecord = errors.New("invalid chat record")
	ErrUnknownKey    = errors.New("unknown config key")
	ErrInvalidValue  = errors.New("invalid config value")
)

// ParseError represents a transcript line that could not be decoded
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidRecord {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message string, line int) *ParseError {
	return &ParseError{Message: message, Line: line}
}

// ConfigError represents a failure to read or change a configuration key
type ConfigError struct {
	Key     string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error [%s]: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is allows comparison with another ConfigError
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// NewUnknownKeyError creates a ConfigError for a key that does not exist
func NewUnknownKeyError(key string) *ConfigError {
	return &ConfigError{Key: key, Message: "unknown key", Err: ErrUnknownKey}
}

// NewInvalidValueError creates a ConfigError for a value that cannot be applied
func NewInvalidValueError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message, Err: ErrInvalidValue}
}

// IsParseError reports whether err is a transcript parse error
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// GetLine returns the transcript line number carried by err, or 0
func GetLine(err error) int {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}

// GetKey returns the config key carried by err, or ""
func GetKey(err error) string {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Key
	}
	return ""
}
