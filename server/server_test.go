package server

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickfast/tarrasque-go/frame"
	"github.com/rickfast/tarrasque-go/message"
	"github.com/rickfast/tarrasque-go/primitive"
)

// startTestServer binds on an ephemeral local port and returns its address,
// stopping the server when the test finishes.
func startTestServer(t *testing.T) string {
	t.Helper()
	srv, err := New("127.0.0.1:0", t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	addrCtx, addrCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer addrCancel()
	addr, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		<-errCh
	})
	return addr.String()
}

func dialAndHandshake(t *testing.T, addr string) (net.Conn, frame.Codec) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	codec := frame.NewCodec()
	startupFrame := frame.NewFrame(primitive.ProtocolVersion4, 1, message.NewStartup())
	require.NoError(t, codec.EncodeFrame(startupFrame, conn))

	resp, err := codec.DecodeFrame(conn)
	require.NoError(t, err)
	_, ok := resp.Body.Message.(*message.Ready)
	require.True(t, ok)
	return conn, codec
}

func sendQuery(t *testing.T, conn net.Conn, codec frame.Codec, streamId int16, cql string) message.Message {
	t.Helper()
	req := frame.NewFrame(primitive.ProtocolVersion4, streamId, &message.Query{CqlQuery: cql, Options: &message.QueryOptions{}})
	require.NoError(t, codec.EncodeFrame(req, conn))
	resp, err := codec.DecodeFrame(conn)
	require.NoError(t, err)
	return resp.Body.Message
}

func TestStartupHandshake(t *testing.T) {
	addr := startTestServer(t)
	dialAndHandshake(t, addr)
}

func TestOptionsNegotiation(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	codec := frame.NewCodec()
	req := frame.NewFrame(primitive.ProtocolVersion4, 1, &message.Options{})
	require.NoError(t, codec.EncodeFrame(req, conn))

	resp, err := codec.DecodeFrame(conn)
	require.NoError(t, err)
	supported, ok := resp.Body.Message.(*message.Supported)
	require.True(t, ok)
	assert.Contains(t, supported.Options, message.SupportedCompression)
}

func TestQueryBeforeStartupIsProtocolError(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	codec := frame.NewCodec()
	resp := sendQuery(t, conn, codec, 1, "SELECT * FROM users")
	errMsg, ok := resp.(*message.Error)
	require.True(t, ok)
	assert.NotEmpty(t, errMsg.Message)
}

func TestFullScanCreateInsertSelect(t *testing.T) {
	addr := startTestServer(t)
	conn, codec := dialAndHandshake(t, addr)

	resp := sendQuery(t, conn, codec, 2, "CREATE TABLE users (id int, name text)")
	_, ok := resp.(*message.Result)
	require.True(t, ok)

	resp = sendQuery(t, conn, codec, 3, `INSERT INTO users (id, name) VALUES (1, 'alice')`)
	result, ok := resp.(*message.Result)
	require.True(t, ok)
	require.NotNil(t, result.Void)

	resp = sendQuery(t, conn, codec, 4, "SELECT id, name FROM users")
	result, ok = resp.(*message.Result)
	require.True(t, ok)
	require.NotNil(t, result.Rows)
	require.Len(t, result.Rows.Data, 1)
	assert.Equal(t, "alice", string(result.Rows.Data[0][1]))
}

func TestInvalidTableErrorKeepsConnectionOpen(t *testing.T) {
	addr := startTestServer(t)
	conn, codec := dialAndHandshake(t, addr)

	resp := sendQuery(t, conn, codec, 5, "SELECT * FROM ghosts")
	_, ok := resp.(*message.Error)
	require.True(t, ok)

	// The connection should still be usable after an ERROR response.
	resp = sendQuery(t, conn, codec, 6, "CREATE TABLE users (id int)")
	_, ok = resp.(*message.Result)
	require.True(t, ok)
}

func TestFragmentedFrameIsDecodedCorrectly(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	codec := frame.NewCodec()
	startupFrame := frame.NewFrame(primitive.ProtocolVersion4, 1, message.NewStartup())
	encoded := &bytes.Buffer{}
	require.NoError(t, codec.EncodeFrame(startupFrame, encoded))

	payload := encoded.Bytes()
	for _, b := range payload {
		_, err := conn.Write([]byte{b})
		require.NoError(t, err)
	}

	resp, err := codec.DecodeFrame(conn)
	require.NoError(t, err)
	_, ok := resp.Body.Message.(*message.Ready)
	require.True(t, ok)
}
