package primitive

import "fmt"

// ProtocolVersion is the one-byte version field of a frame header, with the
// direction bit (0x80) masked off. This server speaks protocol version 4 only.
type ProtocolVersion uint8

const ProtocolVersion4 = ProtocolVersion(0x04)

func (v ProtocolVersion) IsSupported() bool {
	return v == ProtocolVersion4
}

func (v ProtocolVersion) String() string {
	return fmt.Sprintf("v%d", uint8(v))
}

// OpCode is the one-byte message type discriminator in the frame header.
type OpCode uint8

const (
	OpCodeError        = OpCode(0x00)
	OpCodeStartup      = OpCode(0x01)
	OpCodeReady        = OpCode(0x02)
	OpCodeAuthenticate = OpCode(0x03)
	OpCodeOptions      = OpCode(0x05)
	OpCodeSupported    = OpCode(0x06)
	OpCodeQuery        = OpCode(0x07)
	OpCodeResult       = OpCode(0x08)
	OpCodePrepare      = OpCode(0x09)
	OpCodeExecute      = OpCode(0x0A)
	OpCodeRegister     = OpCode(0x0B)
	OpCodeEvent        = OpCode(0x0C)
	OpCodeBatch        = OpCode(0x0D)
	OpCodeAuthChallenge = OpCode(0x0E)
	OpCodeAuthResponse  = OpCode(0x0F)
	OpCodeAuthSuccess   = OpCode(0x10)
)

// IsValid reports whether code is a known CQL v4 opcode, whether or not this
// server implements a codec for it.
func (c OpCode) IsValid() bool {
	switch c {
	case OpCodeError, OpCodeStartup, OpCodeReady, OpCodeAuthenticate,
		OpCodeOptions, OpCodeSupported, OpCodeQuery, OpCodeResult,
		OpCodePrepare, OpCodeExecute, OpCodeRegister, OpCodeEvent,
		OpCodeBatch, OpCodeAuthChallenge, OpCodeAuthResponse, OpCodeAuthSuccess:
		return true
	default:
		return false
	}
}

func (c OpCode) String() string {
	switch c {
	case OpCodeError:
		return "ERROR"
	case OpCodeStartup:
		return "STARTUP"
	case OpCodeReady:
		return "READY"
	case OpCodeAuthenticate:
		return "AUTHENTICATE"
	case OpCodeOptions:
		return "OPTIONS"
	case OpCodeSupported:
		return "SUPPORTED"
	case OpCodeQuery:
		return "QUERY"
	case OpCodeResult:
		return "RESULT"
	case OpCodePrepare:
		return "PREPARE"
	case OpCodeExecute:
		return "EXECUTE"
	case OpCodeRegister:
		return "REGISTER"
	case OpCodeEvent:
		return "EVENT"
	case OpCodeBatch:
		return "BATCH"
	case OpCodeAuthChallenge:
		return "AUTH_CHALLENGE"
	case OpCodeAuthResponse:
		return "AUTH_RESPONSE"
	case OpCodeAuthSuccess:
		return "AUTH_SUCCESS"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", uint8(c))
	}
}

// HeaderFlag is the one-byte flags field of a frame header.
type HeaderFlag uint8

const (
	HeaderFlagCompressed   = HeaderFlag(0x01)
	HeaderFlagTracing      = HeaderFlag(0x02)
	HeaderFlagCustomPayload = HeaderFlag(0x04)
	HeaderFlagWarning      = HeaderFlag(0x08)
)

func (f HeaderFlag) Contains(other HeaderFlag) bool {
	return f&other == other
}

func (f HeaderFlag) Add(other HeaderFlag) HeaderFlag {
	return f | other
}

func (f HeaderFlag) Remove(other HeaderFlag) HeaderFlag {
	return f &^ other
}

// ConsistencyLevel corresponds to the [consistency] wire primitive.
type ConsistencyLevel uint16

const (
	ConsistencyLevelAny         = ConsistencyLevel(0x0000)
	ConsistencyLevelOne         = ConsistencyLevel(0x0001)
	ConsistencyLevelTwo         = ConsistencyLevel(0x0002)
	ConsistencyLevelThree       = ConsistencyLevel(0x0003)
	ConsistencyLevelQuorum      = ConsistencyLevel(0x0004)
	ConsistencyLevelAll         = ConsistencyLevel(0x0005)
	ConsistencyLevelLocalQuorum = ConsistencyLevel(0x0006)
	ConsistencyLevelEachQuorum  = ConsistencyLevel(0x0007)
	ConsistencyLevelSerial      = ConsistencyLevel(0x0008)
	ConsistencyLevelLocalSerial = ConsistencyLevel(0x0009)
	ConsistencyLevelLocalOne    = ConsistencyLevel(0x000A)
)

func (c ConsistencyLevel) IsValid() bool {
	return c <= ConsistencyLevelLocalOne
}

func (c ConsistencyLevel) String() string {
	switch c {
	case ConsistencyLevelAny:
		return "ANY"
	case ConsistencyLevelOne:
		return "ONE"
	case ConsistencyLevelTwo:
		return "TWO"
	case ConsistencyLevelThree:
		return "THREE"
	case ConsistencyLevelQuorum:
		return "QUORUM"
	case ConsistencyLevelAll:
		return "ALL"
	case ConsistencyLevelLocalQuorum:
		return "LOCAL_QUORUM"
	case ConsistencyLevelEachQuorum:
		return "EACH_QUORUM"
	case ConsistencyLevelSerial:
		return "SERIAL"
	case ConsistencyLevelLocalSerial:
		return "LOCAL_SERIAL"
	case ConsistencyLevelLocalOne:
		return "LOCAL_ONE"
	default:
		return fmt.Sprintf("UNKNOWN(0x%04x)", uint16(c))
	}
}

// QueryFlag is the one-byte flags field of a QUERY message body, using the
// canonical CQL v4 bit positions (powers of two) rather than sequential
// ordinals — a sequential assignment would collide SKIP_METADATA with
// PAGE_SIZE.
type QueryFlag uint8

const (
	QueryFlagValues             = QueryFlag(0x01)
	QueryFlagSkipMetadata       = QueryFlag(0x02)
	QueryFlagPageSize           = QueryFlag(0x04)
	QueryFlagPagingState        = QueryFlag(0x08)
	QueryFlagSerialConsistency  = QueryFlag(0x10)
	QueryFlagDefaultTimestamp   = QueryFlag(0x20)
	QueryFlagValueNames         = QueryFlag(0x40)
)

func (f QueryFlag) Contains(other QueryFlag) bool {
	return f&other == other
}

func (f QueryFlag) Add(other QueryFlag) QueryFlag {
	return f | other
}

// ResultType is the [int] discriminator at the head of a RESULT message body.
type ResultType int32

const (
	ResultTypeVoid       = ResultType(0x0001)
	ResultTypeRows       = ResultType(0x0002)
	ResultTypeSetKeyspace = ResultType(0x0003)
)

const (
	// RowsFlagGlobalTablesSpec indicates that a single keyspace/table applies to all columns.
	RowsFlagGlobalTablesSpec = int32(0x0001)
	// RowsFlagHasPagingState indicates a paging state is present (never set by this server).
	RowsFlagHasPagingState = int32(0x0002)
	// RowsFlagNoMetadata indicates column metadata was omitted.
	RowsFlagNoMetadata = int32(0x0004)
)
