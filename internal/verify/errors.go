package verify

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes verification errors.
type ErrorCode string

const (
	// CodeConfig indicates invalid caller configuration, e.g. an empty
	// specification name. Fatal, raised immediately, not retried.
	CodeConfig ErrorCode = "CONFIG"

	// CodeEncode indicates the value could not be canonicalized or
	// serialized (cyclic structure, non-finite number).
	CodeEncode ErrorCode = "ENCODE"

	// CodeStorage indicates the baseline store or artifact location was
	// unreadable or unwritable. The baseline-missing case on first run is
	// NOT a storage error - it is the Created path.
	CodeStorage ErrorCode = "STORAGE"
)

// Error is a structured verification error.
type Error struct {
	Code ErrorCode
	Name string // specification name, when known
	Err  error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %v (spec=%s)", e.Code, e.Err, e.Name)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Code == CodeConfig
}

// IsStorageError reports whether err is a storage error.
func IsStorageError(err error) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Code == CodeStorage
}
