/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured, coded errors for firmware validation.
//
// Every failure the validator can report maps onto one ErrorCode so callers
// can branch on the category without parsing messages:
//
//	if errors.CodeOf(err) == errors.ErrCodeNotFound {
//	    // path missing or not a regular file
//	}
//
// StructuredError supports the standard library's errors.Is and errors.As.
// Two StructuredErrors match under errors.Is when their codes are equal.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorCode categorizes a validation or runtime failure.
type ErrorCode string

const (
	// ErrCodeNotFound means the path is missing or is not a regular file.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeIO means a stat, open or read failed after existence was confirmed.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodePatternMismatch means a filename or version pattern did not match.
	ErrCodePatternMismatch ErrorCode = "PATTERN_MISMATCH"

	// ErrCodeUnsupportedModel means the model id is not in the compatibility table.
	ErrCodeUnsupportedModel ErrorCode = "UNSUPPORTED_MODEL"

	// ErrCodeSizeOutOfRange means the file size is outside an accepted envelope.
	ErrCodeSizeOutOfRange ErrorCode = "SIZE_OUT_OF_RANGE"

	// ErrCodeInvalidRequest means the caller supplied an invalid argument.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrCodeInternal is an unexpected fault.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error carrying a code, a message, an optional cause
// and optional key/value context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// New creates a StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a StructuredError that wraps cause.
// Returns nil if cause is nil.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	if cause == nil {
		return nil
	}
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext creates a StructuredError with context attached.
func WithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("] ")
	b.WriteString(e.Message)

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a StructuredError with the same code.
func (e *StructuredError) Is(target error) bool {
	t, ok := target.(*StructuredError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or an empty code if there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// MessageOf returns the message of the first StructuredError in err's chain,
// falling back to err.Error() for plain errors.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
