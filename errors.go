// Package cmpt365 holds the error kinds shared by the BMP parser, the codecs
// and the .cmpt365 container.
package cmpt365

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Error is the interface implemented by every error this module returns. Use
// [errors.Is] with one of the ErrXxx values below to find out which kind it is.
type Error interface {
	error
	// WithMessage returns an error of the same kind with `message` appended.
	WithMessage(message string) Error
	// Wrap attaches `err` as the cause. The result matches both this error's
	// kind and `err` under [errors.Is].
	Wrap(err error) Error
}

type baseError string

const rootError = baseError("")

// ErrFormat is returned for a malformed or truncated BMP header.
var ErrFormat = rootError.WithMessage("Malformed BMP data")

// ErrUnsupportedFormat is returned for well-formed input using a layout this
// module doesn't understand: small info headers, unknown container versions
// or algorithm IDs.
var ErrUnsupportedFormat = rootError.WithMessage("Unsupported format")

// ErrCorruption is returned when a container or a compressed stream is
// internally inconsistent.
var ErrCorruption = rootError.WithMessage("Corrupted data")

// ErrIO is returned when the underlying stream or file fails.
var ErrIO = rootError.WithMessage("Input/output error")

func (e baseError) Error() string {
	return string(e)
}

func (e baseError) WithMessage(message string) Error {
	return customError{
		message:       message,
		originalError: e,
	}
}

func (e baseError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customError) Error() string {
	return e.message
}

func (e customError) WithMessage(message string) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customError) Wrap(err error) Error {
	return customError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customError) Unwrap() error {
	return e.originalError
}
