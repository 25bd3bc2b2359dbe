package parser

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"

	"github.com/rickfast/tarrasque-go/coltype"
	"github.com/rickfast/tarrasque-go/dberr"
	"github.com/rickfast/tarrasque-go/row"
)

// restoreExpr renders expr back to CQL text, the same technique
// Pieczasz-smf uses to pull literal text out of a TiDB AST node
// (format.NewRestoreCtx over expr.Restore), rather than reaching into the
// parser's internal Datum representation.
func restoreExpr(expr ast.ExprNode) (string, error) {
	var sb strings.Builder
	ctx := format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)
	if err := expr.Restore(ctx); err != nil {
		return "", dberr.Invalid("cannot render expression: %s", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// unquoteStringLiteral strips a single layer of SQL string quoting
// (`'...'` or `"..."`) and un-escapes doubled quote characters.
func unquoteStringLiteral(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	quote := s[0]
	if (quote != '\'' && quote != '"') || s[len(s)-1] != quote {
		return "", false
	}
	inner := s[1 : len(s)-1]
	doubled := string(quote) + string(quote)
	return strings.ReplaceAll(inner, doubled, string(quote)), true
}

func isNullLiteral(text string) bool {
	return strings.EqualFold(text, "NULL")
}

// CoerceLiteral resolves a parsed expression into a row.Value of exactly
// target's type: numeric literals coerce to the target's numeric type,
// string literals to varchar-shaped payloads (ascii/blob/decimal/varint/
// inet are all stored as their literal bytes), booleans to boolean, and
// NULL to an absent value of target's type.
func CoerceLiteral(expr ast.ExprNode, target coltype.Type) (row.Value, error) {
	text, err := restoreExpr(expr)
	if err != nil {
		return row.Value{}, err
	}
	if isNullLiteral(text) {
		return row.NewNull(target), nil
	}
	switch target {
	case coltype.Int, coltype.Bigint, coltype.Smallint, coltype.Tinyint, coltype.Counter:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as %s: %s", text, target, err)
		}
		return row.NewValue(target, intBytes(target, n)), nil
	case coltype.Double, coltype.Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as %s: %s", text, target, err)
		}
		return row.NewValue(target, floatBytes(target, f)), nil
	case coltype.Boolean:
		b, err := parseBool(text)
		if err != nil {
			return row.Value{}, err
		}
		v := byte(0)
		if b {
			v = 1
		}
		return row.NewValue(target, []byte{v}), nil
	case coltype.Varchar, coltype.Ascii:
		unquoted, ok := unquoteStringLiteral(text)
		if !ok {
			unquoted = text
		}
		return row.NewValue(target, []byte(unquoted)), nil
	case coltype.Uuid, coltype.Timeuuid:
		unquoted, ok := unquoteStringLiteral(text)
		if !ok {
			unquoted = text
		}
		id, err := uuid.Parse(unquoted)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as %s: %s", text, target, err)
		}
		idBytes := id[:]
		return row.NewValue(target, idBytes), nil
	case coltype.Date:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as date (days since epoch): %s", text, err)
		}
		return row.NewValue(target, intBytes(target, n)), nil
	case coltype.Time:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as time (nanoseconds): %s", text, err)
		}
		return row.NewValue(target, intBytes(target, n)), nil
	case coltype.Timestamp:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return row.Value{}, dberr.Invalid("cannot parse %q as timestamp: %s", text, err)
		}
		return row.NewValue(target, intBytes(target, n)), nil
	case coltype.Blob, coltype.Decimal, coltype.Varint, coltype.Inet:
		unquoted, ok := unquoteStringLiteral(text)
		if !ok {
			unquoted = text
		}
		return row.NewValue(target, []byte(unquoted)), nil
	default:
		return row.Value{}, dberr.Invalid("unsupported target column type %s", target)
	}
}

func parseBool(text string) (bool, error) {
	switch strings.ToUpper(text) {
	case "TRUE", "1":
		return true, nil
	case "FALSE", "0":
		return false, nil
	default:
		return false, dberr.Invalid("cannot parse %q as boolean", text)
	}
}

func intBytes(t coltype.Type, n int64) []byte {
	switch t {
	case coltype.Tinyint:
		return []byte{byte(n)}
	case coltype.Smallint:
		b := make([]byte, 2)
		binary.BigEndian.PutUint16(b, uint16(n))
		return b
	case coltype.Int, coltype.Date:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(n))
		return b
	default: // Bigint, Counter, Time, Timestamp
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, uint64(n))
		return b
	}
}

func floatBytes(t coltype.Type, f float64) []byte {
	if t == coltype.Float {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, math.Float32bits(float32(f)))
		return b
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return b
}
