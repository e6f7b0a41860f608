package ir

import "fmt"

// ErrorCode represents a machine-readable generation error code.
type ErrorCode string

const (
	// CodeUnsupportedTypeKind means flattening encountered a parameter type
	// outside the supported set (int, unsigned int, char, pointer, struct).
	CodeUnsupportedTypeKind ErrorCode = "unsupported_type_kind"

	// CodeUnsupportedKind means synthesis saw a flat-sequence entry it cannot
	// handle. This indicates a flattener/synthesizer mismatch, not bad input.
	CodeUnsupportedKind ErrorCode = "unsupported_kind"

	// CodeNoFunctionFound means function enumeration yielded no candidate in
	// the primary file.
	CodeNoFunctionFound ErrorCode = "no_function_found"

	// CodeMissingDeclaration means a composite type's field list could not be
	// resolved (e.g. the struct is only forward-declared).
	CodeMissingDeclaration ErrorCode = "missing_declaration"

	// CodeHarnessExists means the input already contains a generated harness.
	CodeHarnessExists ErrorCode = "harness_exists"

	// CodeInvalidConfig means the generator configuration failed validation.
	CodeInvalidConfig ErrorCode = "invalid_config"

	// CodeParseFailed means the external parser could not produce a usable
	// translation unit.
	CodeParseFailed ErrorCode = "parse_failed"
)

// Error is the generation error envelope. Callers branch on Code with
// errors.As rather than matching message text. Generation has no retries and
// no partial results: any Error aborts the whole invocation.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new generation error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates a new generation error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
