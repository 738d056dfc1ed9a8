// Package errors provides standardized error handling for imgview.
// It defines the error kinds the viewer distinguishes, typed errors for
// files, decodes and configuration, and helpers for wrapping and matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	PathNotFound
	FileAccessDenied
	InvalidPath
	EmptyDirectory
	UnsupportedFile
	// Decode error kinds
	DecodeFailure
	// Caller bugs
	ContractViolation
	// Config error kinds
	InvalidConfig
	ConfigNotFound
)

// String returns a short name for the kind
func (k ErrorKind) String() string {
	switch k {
	case PathNotFound:
		return "path_not_found"
	case FileAccessDenied:
		return "file_access_denied"
	case InvalidPath:
		return "invalid_path"
	case EmptyDirectory:
		return "empty_directory"
	case UnsupportedFile:
		return "unsupported_file"
	case DecodeFailure:
		return "decode_failure"
	case ContractViolation:
		return "contract_violation"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrPathNotFound     = NewFileError("path not found", "", PathNotFound, nil)
	ErrEmptyDirectory   = NewFileError("no supported images in directory", "", EmptyDirectory, nil)
	ErrUnsupportedFile  = NewFileError("unsupported file", "", UnsupportedFile, nil)
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrNotRequested     = NewContractError("path was never requested")
	ErrConcurrentMutate = NewContractError("listing mutated concurrently")
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to a path on disk
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// DecodeError is recorded when an image cannot be turned into a bitmap.
type DecodeError struct {
	ApplicationError
	path   string
	format string
}

// NewDecodeError creates a new decode error
func NewDecodeError(path string, format string, err error) *DecodeError {
	return &DecodeError{
		ApplicationError: ApplicationError{
			msg:  "failed to decode image",
			err:  err,
			kind: DecodeFailure,
		},
		path:   path,
		format: format,
	}
}

// Error returns the decode error message
func (e *DecodeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, e.path)
}

// Path returns the path that failed to decode
func (e *DecodeError) Path() string {
	return e.path
}

// Format returns the detected format name, if any
func (e *DecodeError) Format() string {
	return e.format
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// NewContractError creates an error describing a caller bug. These are
// raised with panic rather than returned.
func NewContractError(msg string) *ApplicationError {
	return &ApplicationError{
		msg:  msg,
		kind: ContractViolation,
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the outermost application error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsPathNotFound checks if the error is a path not found error
func IsPathNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == PathNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsDecodeFailure checks if the error is a decode error
func IsDecodeFailure(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsContractViolation checks if any error in err's chain describes a caller bug
func IsContractViolation(err error) bool {
	for err != nil {
		if kinded, ok := err.(interface{ Kind() ErrorKind }); ok && kinded.Kind() == ContractViolation {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
