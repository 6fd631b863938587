// Package errors defines the typed errors shared by the jxview packages
// and their user-facing rendering.
package errors

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by AppError values.
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrInvalidXML      = errors.New("invalid XML format")
	ErrNoFix           = errors.New("no automatic fix found")
	ErrNothingToCopy   = errors.New("nothing to copy")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType says which stage of the pipeline failed.
type ErrorType string

const (
	ErrorTypeInput       ErrorType = "input"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeXML         ErrorType = "xml"
	ErrorTypeFix         ErrorType = "fix"
	ErrorTypeFormat      ErrorType = "format"
	ErrorTypeOutput      ErrorType = "output"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeClipboard   ErrorType = "clipboard"
	ErrorTypePreferences ErrorType = "preferences"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError carries the failing stage, a message for the user and the cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewInputError reports a file or stdin problem.
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError reports invalid JSON. The message ends with
// "at position N" when the parser located the failure.
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewXMLError reports a document that is not well-formed XML.
func NewXMLError(message string, err error) *AppError {
	return newError(ErrorTypeXML, message, err)
}

// NewFixError reports a repair that could not be applied.
func NewFixError(message string, err error) *AppError {
	return newError(ErrorTypeFix, message, err)
}

// NewFormatError reports a document the requested rewrite cannot handle.
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError reports a failed write.
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

func NewClipboardError(message string, err error) *AppError {
	return newError(ErrorTypeClipboard, message, err)
}

func NewPreferencesError(message string, err error) *AppError {
	return newError(ErrorTypePreferences, message, err)
}

// UserFriendlyError renders err as a one-line message for the terminal.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeXML:
			return fmt.Sprintf("XML parsing error: %s", appErr.Message)
		case ErrorTypeFix:
			return fmt.Sprintf("Auto-fix error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeClipboard:
			return fmt.Sprintf("Clipboard error: %s", appErr.Message)
		case ErrorTypePreferences:
			return fmt.Sprintf("Preferences error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	for _, h := range sentinelHints {
		if errors.Is(err, h.err) {
			return "Error: " + h.hint
		}
	}

	return fmt.Sprintf("Error: %v", err)
}

// sentinelHints is consulted in order for errors that are not an AppError.
var sentinelHints = []struct {
	err  error
	hint string
}{
	{ErrEmptyInput, "The input is empty. Please provide JSON or XML data."},
	{ErrInvalidJSON, "The input contains invalid JSON. Please check your JSON syntax."},
	{ErrInvalidXML, "The input contains invalid XML. Please check your XML syntax."},
	{ErrNoFix, "The input could not be repaired automatically."},
	{ErrNothingToCopy, "There is nothing to copy."},
	{ErrFileNotFound, "The specified file could not be found. Please check the file path."},
	{ErrFileEmpty, "The specified file is empty."},
	{ErrNoInput, "No input provided. Please specify a file or pipe data to stdin."},
	{ErrInvalidFilePath, "The path does not name a readable file."},
}
