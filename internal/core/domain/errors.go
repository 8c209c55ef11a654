package domain

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Code identifies the kind of a configuration violation.
// It is a string newtype and implements error, so it can be matched with errors.Is.
type Code string

func (c Code) Error() string { return string(c) }

const (
	ErrRange                 Code = "range_error"
	ErrEnum                  Code = "enum_error"
	ErrFormat                Code = "format_error"
	ErrMissingRequiredField  Code = "missing_required_field"
	ErrUnresolvedReference   Code = "unresolved_reference"
	ErrKindMismatch          Code = "kind_mismatch"
	ErrDuplicateIdentifier   Code = "duplicate_identifier"
	ErrUnsupportedCapability Code = "unsupported_capability"
)

// FieldError is a single violation located at a configuration path
// such as sensor[1].voc_index.algorithm_tuning.std_initial.
type FieldError struct {
	Code Code   `json:"code" yaml:"code"`
	Path string `json:"path" yaml:"path"`
	Msg  string `json:"message" yaml:"message"`
}

func NewFieldError(code Code, path string, format string, args ...any) *FieldError {
	return &FieldError{
		Code: code,
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Msg)
}

func (e *FieldError) Unwrap() error { return e.Code }

// Violations flattens an aggregated error into its field errors.
// Errors that are not field errors are reported with an empty path.
func Violations(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
			continue
		}
		out = append(out, &FieldError{Code: ErrFormat, Msg: e.Error()})
	}
	return out
}

// CodeOf returns the violation code carried by err, or "" when there is none.
func CodeOf(err error) Code {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ""
}
