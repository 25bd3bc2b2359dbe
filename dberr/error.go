// Package dberr defines the single error type used throughout the engine
// (parser, schema, executor, storage) and its mapping onto CQL wire error
// codes at the connection boundary.
package dberr

import "fmt"

// Code is the CQL protocol error code associated with an Error, per the CQL
// v4 spec's ERROR message body and this project's own error taxonomy.
type Code int32

const (
	CodeServerError     = Code(0x0000)
	CodeProtocolError   = Code(0x000A)
	CodeOverloaded      = Code(0x000B)
	CodeIsBootstrapping = Code(0x000C)
	CodeTruncateError   = Code(0x000D)
	CodeUnavailable     = Code(0x1000)
	CodeReadTimeout     = Code(0x1200)
	CodeWriteTimeout    = Code(0x1300)
	CodeReadFailure     = Code(0x1400)
	CodeWriteFailure    = Code(0x1500)
	CodeFunctionFailure = Code(0x1600)
	CodeSyntaxError     = Code(0x2000)
	CodeUnauthorized    = Code(0x2100)
	CodeInvalid         = Code(0x2200)
	CodeConfigError     = Code(0x2300)
	CodeAlreadyExists   = Code(0x2400)
	CodeUnprepared      = Code(0x2500)
)

// Error is the one error type produced by every engine package below the
// connection boundary: parsing, schema lookups, planning, execution, and
// storage. It is never a panic; every fallible operation returns one of
// these through a normal error return.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, cause error, context string) *Error {
	return &Error{Code: code, Message: fmt.Sprintf("%s: %s", context, cause.Error())}
}

// ServerError reports an internal invariant violation: storage I/O failure,
// codec bug, or similar fault that is not the client's doing.
func ServerError(format string, args ...interface{}) *Error {
	return New(CodeServerError, format, args...)
}

// SyntaxError reports that the query text could not be parsed at all.
func SyntaxError(format string, args ...interface{}) *Error {
	return New(CodeSyntaxError, format, args...)
}

// Invalid reports a well-formed statement with invalid semantics: unknown
// table, unknown column, reserved-but-unimplemented function, type mismatch.
func Invalid(format string, args ...interface{}) *Error {
	return New(CodeInvalid, format, args...)
}

// AlreadyExists builds an ALREADY_EXISTS error. No engine path returns it:
// a CREATE TABLE naming an existing table overwrites the old definition
// (see schema.Catalog.CreateTable).
func AlreadyExists(format string, args ...interface{}) *Error {
	return New(CodeAlreadyExists, format, args...)
}

// ProtocolError reports a frame-level protocol violation: unsupported
// version, unknown opcode, QUERY sent before STARTUP, malformed frame body.
func ProtocolError(format string, args ...interface{}) *Error {
	return New(CodeProtocolError, format, args...)
}

// Unprepared reports a request referencing an opcode this server recognizes
// but does not implement (PREPARE, EXECUTE, BATCH, REGISTER, ...).
func Unprepared(format string, args ...interface{}) *Error {
	return New(CodeUnprepared, format, args...)
}

// ReadFailure reports a KV-store read error surfaced during SELECT.
func ReadFailure(format string, args ...interface{}) *Error {
	return New(CodeReadFailure, format, args...)
}

// WriteFailure reports a KV-store write error surfaced during INSERT.
func WriteFailure(format string, args ...interface{}) *Error {
	return New(CodeWriteFailure, format, args...)
}

func (c Code) String() string {
	switch c {
	case CodeServerError:
		return "SERVER_ERROR"
	case CodeProtocolError:
		return "PROTOCOL_ERROR"
	case CodeUnavailable:
		return "UNAVAILABLE"
	case CodeOverloaded:
		return "OVERLOADED"
	case CodeIsBootstrapping:
		return "IS_BOOTSTRAPPING"
	case CodeTruncateError:
		return "TRUNCATE_ERROR"
	case CodeWriteTimeout:
		return "WRITE_TIMEOUT"
	case CodeReadTimeout:
		return "READ_TIMEOUT"
	case CodeReadFailure:
		return "READ_FAILURE"
	case CodeFunctionFailure:
		return "FUNCTION_FAILURE"
	case CodeWriteFailure:
		return "WRITE_FAILURE"
	case CodeSyntaxError:
		return "SYNTAX_ERROR"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeInvalid:
		return "INVALID"
	case CodeConfigError:
		return "CONFIG_ERROR"
	case CodeAlreadyExists:
		return "ALREADY_EXISTS"
	case CodeUnprepared:
		return "UNPREPARED"
	default:
		return fmt.Sprintf("UNKNOWN(0x%04x)", int32(c))
	}
}

// AsDbError unwraps err into an *Error if it is one, wrapping it as a
// SERVER_ERROR otherwise so that callers at the connection boundary always
// have a (code, message) pair to send back to the client.
func AsDbError(err error) *Error {
	if err == nil {
		return nil
	}
	if dbErr, ok := err.(*Error); ok {
		return dbErr
	}
	return ServerError("%s", err.Error())
}
