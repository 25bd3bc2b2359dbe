package dberr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeStringKnownCodes(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeServerError, "SERVER_ERROR"},
		{CodeProtocolError, "PROTOCOL_ERROR"},
		{CodeOverloaded, "OVERLOADED"},
		{CodeIsBootstrapping, "IS_BOOTSTRAPPING"},
		{CodeTruncateError, "TRUNCATE_ERROR"},
		{CodeUnavailable, "UNAVAILABLE"},
		{CodeReadTimeout, "READ_TIMEOUT"},
		{CodeWriteTimeout, "WRITE_TIMEOUT"},
		{CodeReadFailure, "READ_FAILURE"},
		{CodeWriteFailure, "WRITE_FAILURE"},
		{CodeFunctionFailure, "FUNCTION_FAILURE"},
		{CodeSyntaxError, "SYNTAX_ERROR"},
		{CodeUnauthorized, "UNAUTHORIZED"},
		{CodeInvalid, "INVALID"},
		{CodeConfigError, "CONFIG_ERROR"},
		{CodeAlreadyExists, "ALREADY_EXISTS"},
		{CodeUnprepared, "UNPREPARED"},
	}
	for _, test := range tests {
		t.Run(test.want, func(t *testing.T) {
			assert.Equal(t, test.want, test.code.String())
		})
	}
}

func TestCodeStringUnknownCode(t *testing.T) {
	assert.Equal(t, "UNKNOWN(0x002a)", Code(0x002a).String())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantCode Code
		wantMsg  string
	}{
		{"server error", ServerError("disk full: %s", "/data"), CodeServerError, "disk full: /data"},
		{"syntax error", SyntaxError("unexpected token %q", ";"), CodeSyntaxError, `unexpected token ";"`},
		{"invalid", Invalid("unknown table %s", "users"), CodeInvalid, "unknown table users"},
		{"already exists", AlreadyExists("table %s already exists", "users"), CodeAlreadyExists, "table users already exists"},
		{"protocol error", ProtocolError("unsupported version %d", 5), CodeProtocolError, "unsupported version 5"},
		{"unprepared", Unprepared("opcode %d not implemented", 9), CodeUnprepared, "opcode 9 not implemented"},
		{"read failure", ReadFailure("read %s: eof", "users"), CodeReadFailure, "read users: eof"},
		{"write failure", WriteFailure("write %s: eof", "users"), CodeWriteFailure, "write users: eof"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.wantCode, test.err.Code)
			assert.Equal(t, test.wantMsg, test.err.Message)
			assert.Equal(t, test.wantMsg, test.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := Wrap(CodeReadFailure, cause, "reading partition")
	assert.Equal(t, CodeReadFailure, wrapped.Code)
	assert.Equal(t, "reading partition: connection reset", wrapped.Message)
}

func TestAsDbErrorPassesThroughExistingError(t *testing.T) {
	original := Invalid("bad column")
	result := AsDbError(original)
	assert.Same(t, original, result)
}

func TestAsDbErrorWrapsGenericError(t *testing.T) {
	result := AsDbError(errors.New("unexpected EOF"))
	assert.Equal(t, CodeServerError, result.Code)
	assert.Equal(t, "unexpected EOF", result.Message)
}

func TestAsDbErrorNilIsNil(t *testing.T) {
	assert.Nil(t, AsDbError(nil))
}
