// Package apperr defines the structured error taxonomy shared by the rule
// store, the contract logic engine, and the protocol server.
//
// Every error carries a JSON-RPC-style numeric code and a stable symbolic
// kind. The protocol layer serializes these into the standard error
// envelope; nothing below the protocol layer ever formats errors for the
// wire itself.
package apperr

import (
	"errors"
	"fmt"
)

// Numeric codes on the wire. Parameter-shaped failures share the JSON-RPC
// invalid-params code; the Kind disambiguates.
const (
	CodeInvalidParams       = -32602
	CodeInternal            = -32001
	CodeDBSync              = 2001
	CodeElicitationRequired = 3001
)

// Kind identifies the failure class independent of the numeric code.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindInvalidClauseType   Kind = "INVALID_CLAUSE_TYPE"
	KindUnknownRiskType     Kind = "UNKNOWN_RISK_TYPE"
	KindValidation          Kind = "VALIDATION_ERROR"
	KindElicitationRequired Kind = "ELICITATION_REQUIRED"
	KindDBSync              Kind = "DB_SYNC_ERROR"
	KindInternal            Kind = "INTERNAL_ERROR"
)

// Error is a structured, typed error. Details hold machine-readable
// context, e.g. the legal basis for a rejected parameter.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Envelope returns the wire representation used by the protocol server.
func (e *Error) Envelope() map[string]any {
	env := map[string]any{
		"code":    e.Code,
		"error":   string(e.Kind),
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		env["details"] = e.Details
	}
	return env
}

// NotFound reports an unknown rule or template identifier.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// InvalidClauseType reports a clause type outside the rule store's tag set.
func InvalidClauseType(clauseType string) *Error {
	return &Error{
		Kind:    KindInvalidClauseType,
		Code:    CodeInvalidParams,
		Message: fmt.Sprintf("未知条款类型: %s", clauseType),
		Details: map[string]any{"clause_type": clauseType},
	}
}

// UnknownRiskType reports a risk type with no suggestion template.
func UnknownRiskType(riskType string) *Error {
	return &Error{
		Kind:    KindUnknownRiskType,
		Code:    CodeInvalidParams,
		Message: fmt.Sprintf("未知风险类型: %s", riskType),
		Details: map[string]any{"risk_type": riskType},
	}
}

// Validation reports malformed or legally impermissible arguments.
func Validation(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Code: CodeInvalidParams, Message: message, Details: details}
}

// ElicitationRequired reports input that needs explicit user confirmation
// before it may be processed (PIPL-sensitive fields).
func ElicitationRequired(message string) *Error {
	return &Error{Kind: KindElicitationRequired, Code: CodeElicitationRequired, Message: message}
}

// DBSync reports a failure to reach the legal reference database.
func DBSync(message string) *Error {
	return &Error{Kind: KindDBSync, Code: CodeDBSync, Message: message}
}

// Internal reports an unexpected failure inside the logic layer.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err into *Error, or nil if it is not one.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	if e := As(err); e != nil {
		return e.Kind == kind
	}
	return false
}
