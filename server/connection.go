package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/compression/lz4"
	"github.com/rickfast/tarrasque-go/compression/snappy"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/exec"
	"github.com/rickfast/tarrasque-go/frame"
	"github.com/rickfast/tarrasque-go/message"
	"github.com/rickfast/tarrasque-go/parser"
	"github.com/rickfast/tarrasque-go/row"
	"github.com/rickfast/tarrasque-go/schema"
)

// connState is the minimal handshake state machine this server enforces:
// every new connection starts Fresh and must send STARTUP before it is
// allowed to send QUERY. OPTIONS/SUPPORTED works in either state, matching
// real drivers that probe supported options before or after authenticating.
type connState int

const (
	stateFresh connState = iota
	stateReady
)

// supportedCompressionAlgorithms lists the compressors this server can
// decode, advertised in response to OPTIONS. A client selects one through
// the COMPRESSION option of its STARTUP; responses are sent uncompressed.
var supportedCompressionAlgorithms = []string{
	snappy.BodyCompressor{}.Algorithm(),
	lz4.BodyCompressor{}.Algorithm(),
}

// connection handles one accepted TCP connection end to end: decoding
// frames, enforcing the handshake, and dispatching QUERY bodies to the
// executor.
type connection struct {
	conn     net.Conn
	codec    frame.Codec
	catalog  *schema.Catalog
	executor *exec.Executor
	parser   *parser.Parser
	state    connState
}

func newConnection(conn net.Conn, catalog *schema.Catalog, executor *exec.Executor, p *parser.Parser) *connection {
	return &connection{
		conn:     conn,
		codec:    frame.NewCodec(),
		catalog:  catalog,
		executor: executor,
		parser:   p,
		state:    stateFresh,
	}
}

func (c *connection) String() string {
	return fmt.Sprintf("CQL conn [%s <-> %s]", c.conn.LocalAddr(), c.conn.RemoteAddr())
}

// serve reads and responds to frames until the connection is closed or a
// malformed frame forces it shut. It owns conn's lifetime: it always closes
// it before returning.
func (c *connection) serve() {
	defer c.conn.Close()
	log.Debug().Msgf("%s: serving", c)
	for {
		incoming, err := c.codec.DecodeFrame(c.conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug().Msgf("%s: closed by peer", c)
			} else {
				log.Warn().Err(err).Msgf("%s: malformed frame, closing", c)
			}
			return
		}

		response := c.handle(incoming)
		if response == nil {
			continue
		}
		if err := c.codec.EncodeFrame(response, c.conn); err != nil {
			log.Warn().Err(err).Msgf("%s: failed to write response, closing", c)
			return
		}
	}
}

// handle dispatches one decoded request frame to its response frame. A
// decoded message that is not STARTUP, OPTIONS or QUERY (a response-type
// message sent by the client) yields an ERROR response without closing the
// connection. Recognized opcodes with no registered codec (PREPARE, EXECUTE,
// ...) never reach here: DecodeFrame fails on them and serve closes the
// connection without a reply.
func (c *connection) handle(incoming *frame.Frame) *frame.Frame {
	streamId := incoming.Header.StreamId
	version := incoming.Header.Version

	var respMsg message.Message
	switch req := incoming.Body.Message.(type) {
	case *message.Startup:
		switch strings.ToUpper(req.Options[message.SupportedCompression]) {
		case snappy.BodyCompressor{}.Algorithm():
			c.codec = frame.NewCodecWithCompression(snappy.BodyCompressor{})
		case lz4.BodyCompressor{}.Algorithm():
			c.codec = frame.NewCodecWithCompression(lz4.BodyCompressor{})
		}
		c.state = stateReady
		respMsg = &message.Ready{}

	case *message.Options:
		respMsg = message.NewSupported(supportedCompressionAlgorithms)

	case *message.Query:
		if c.state != stateReady {
			respMsg = message.FromDbError(dberr.ProtocolError("QUERY received before STARTUP"))
		} else {
			respMsg = c.handleQuery(req)
		}

	default:
		respMsg = message.FromDbError(dberr.ProtocolError("unsupported request opcode %s", incoming.Header.OpCode))
	}

	return frame.NewFrame(version, streamId, respMsg)
}

func (c *connection) handleQuery(q *message.Query) message.Message {
	stmt, err := c.parser.Parse(q.CqlQuery, c.catalog)
	if err != nil {
		return message.FromDbError(dberr.AsDbError(err))
	}

	switch {
	case stmt.Create != nil:
		if err := c.executor.ExecuteCreate(stmt.Create); err != nil {
			return message.FromDbError(dberr.AsDbError(err))
		}
		return message.NewVoidResult()

	case stmt.Insert != nil:
		table, err := c.catalog.Lookup(stmt.Insert.Table)
		if err != nil {
			return message.FromDbError(dberr.AsDbError(err))
		}
		if err := c.executor.ExecuteInsert(stmt.Insert, table); err != nil {
			return message.FromDbError(dberr.AsDbError(err))
		}
		return message.NewVoidResult()

	case stmt.Select != nil:
		table, err := c.catalog.Lookup(stmt.Select.Table)
		if err != nil {
			return message.FromDbError(dberr.AsDbError(err))
		}
		rows, err := c.executor.ExecuteSelect(stmt.Select, table)
		if err != nil {
			return message.FromDbError(dberr.AsDbError(err))
		}
		return message.NewRowsResult(rowsMetadata(stmt.Select, table), rowsWireData(rows))

	default:
		return message.FromDbError(dberr.Invalid("empty parsed statement"))
	}
}

// rowsMetadata builds the ROWS column metadata for query's projection,
// reusing table's declared column types for plain column references and
// Boolean for function-call projections (the only function results this
// server can produce, per the built-in catalog).
func rowsMetadata(query *parser.ParsedQuery, table *schema.TableMetadata) *message.RowsMetadata {
	columns := make([]message.ResultColumn, len(query.Projection))
	for i, proj := range query.Projection {
		col := message.ResultColumn{Keyspace: "", Table: table.Name}
		switch {
		case proj.Column != nil:
			col.Name = proj.Column.TargetColumn
			if meta, ok := table.Columns.Lookup(proj.Column.TargetColumn); ok {
				col.Type = meta.Type
			}
		case proj.Function != nil:
			col.Name = proj.Function.Name
			col.Type = coltype.Boolean
		}
		columns[i] = col
	}
	return &message.RowsMetadata{GlobalTableSpec: true, Keyspace: "", Table: table.Name, Columns: columns}
}

// rowsWireData serializes each projected row.Value to its CQL [bytes]
// wire form: the raw type payload, or nil for SQL NULL.
func rowsWireData(rows []row.Row) [][][]byte {
	data := make([][][]byte, len(rows))
	for r, values := range rows {
		wireRow := make([][]byte, len(values))
		for i, v := range values {
			if v.Null {
				wireRow[i] = nil
			} else {
				wireRow[i] = v.Contents
			}
		}
		data[r] = wireRow
	}
	return data
}
