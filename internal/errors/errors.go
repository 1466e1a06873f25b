// Package errors provides structured error types for loom.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindOutOfRange
	KindInvalidConstraint
	KindCommand
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindOutOfRange:
		return "index out of range"
	case KindInvalidConstraint:
		return "invalid layout constraint"
	case KindCommand:
		return "command error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for loom.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Index errors
func OutOfRange(op Op, index, length int) error {
	return E(op, KindOutOfRange, fmt.Sprintf("index %d out of range [0,%d)", index, length))
}

// Layout errors
func InvalidConstraint(layout, constraint string) error {
	return E(Op("ui.Attach"), KindInvalidConstraint, fmt.Sprintf("%s does not accept %s constraints", layout, constraint))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Work item errors
func ItemNotFound(id string) error {
	return E(Op("workitem.Get"), KindNotFound, fmt.Sprintf("work item %s not found", id))
}

// Command errors
func UnknownCommand(name string) error {
	return E(Op("executor.Execute"), KindCommand, fmt.Sprintf("unknown command: %s", name))
}

func CommandFailed(name string, err error) error {
	return E(Op("executor.Execute"), KindCommand, fmt.Sprintf("command %s failed", name), err)
}

func CommandTimeout(name string) error {
	return E(Op("executor.Execute"), KindTimeout, fmt.Sprintf("timeout waiting for command %s", name))
}

// Message returns the text of err without operation prefixes, for showing
// to a user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	msg := Message(e.Err)
	if e.Context != "" {
		return e.Context + ": " + msg
	}
	return msg
}
