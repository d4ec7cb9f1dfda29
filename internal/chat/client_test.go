// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package chat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// chatServer is a scripted websocket backend for the client tests.
type chatServer struct {
	*httptest.Server

	dials  atomic.Int64
	tokens chan string

	// script runs for each accepted connection.
	script func(conn *websocket.Conn)
}

func newChatServer(t *testing.T, script func(conn *websocket.Conn)) *chatServer {
	t.Helper()

	server := &chatServer{script: script, tokens: make(chan string, 16)}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.dials.Add(1)
		server.tokens <- request.URL.Query().Get("token")

		conn, err := upgrader.Upgrade(writer, request, nil)
		require.NoError(t, err)
		defer conn.Close()

		if server.script != nil {
			server.script(conn)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// wsURL converts the test server's http:// address to ws://.
func (server *chatServer) wsURL() string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

// readEnvelope blocks until the server receives one frame from the client.
func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	var envelope Envelope
	require.NoError(t, conn.ReadJSON(&envelope))
	return envelope
}

func writeEnvelope(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Envelope{Event: event, Data: raw}))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestClient_HistoryAndBroadcast(t *testing.T) {
	server := newChatServer(t, func(conn *websocket.Conn) {
		// 1. The client asks for history right after connecting
		envelope := readEnvelope(t, conn)
		assert.Equal(t, EventGetMessages, envelope.Event)

		// 2. Deliver the history, then a live broadcast
		writeEnvelope(t, conn, EventGetMessages, []Message{
			{ID: 1, UserID: 4, Username: "jsmith", Content: "hello"},
			{ID: 2, UserID: 5, Username: "agarcia", Content: "hi"},
		})
		writeEnvelope(t, conn, EventGetMessage, Message{ID: 3, UserID: 4, Username: "jsmith", Content: "anyone up for a match?"})

		// 3. Hold the connection open until the test finishes
		conn.ReadMessage()
	})

	client := NewClient(server.wsURL(), WithLogger(quietLogger()))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	// The broadcast must be appended after the history, not dropped
	waitFor(t, func() bool { return len(client.Messages()) == 3 })

	messages := client.Messages()
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "anyone up for a match?", messages[2].Content)
}

func TestClient_TokenQueryParam(t *testing.T) {
	server := newChatServer(t, func(conn *websocket.Conn) {
		readEnvelope(t, conn)
		conn.ReadMessage()
	})

	client := NewClient(server.wsURL(), WithToken("acc-123"), WithLogger(quietLogger()))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	assert.Equal(t, "acc-123", <-server.tokens)
}

func TestClient_Send(t *testing.T) {
	received := make(chan Envelope, 1)
	server := newChatServer(t, func(conn *websocket.Conn) {
		readEnvelope(t, conn) // history request
		received <- readEnvelope(t, conn)
		conn.ReadMessage()
	})

	client := NewClient(server.wsURL(), WithLogger(quietLogger()))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	// Wait for the connection before writing
	waitFor(t, func() bool { return client.Send("good game") == nil })

	envelope := <-received
	assert.Equal(t, EventSendMessage, envelope.Event)

	var outgoing outgoingMessage
	require.NoError(t, json.Unmarshal(envelope.Data, &outgoing))
	assert.Equal(t, "good game", outgoing.Content)
}

func TestClient_ReconnectAfterDrop(t *testing.T) {
	server := newChatServer(t, func(conn *websocket.Conn) {
		readEnvelope(t, conn)
		// Drop the connection abruptly; the client must redial
		conn.Close()
	})

	client := NewClient(server.wsURL(), WithLogger(quietLogger()))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Run(ctx)

	waitFor(t, func() bool { return server.dials.Load() >= 2 })
}

func TestClient_CleanCloseDoesNotReconnect(t *testing.T) {
	server := newChatServer(t, func(conn *websocket.Conn) {
		readEnvelope(t, conn)
		conn.ReadMessage()
	})

	client := NewClient(server.wsURL(), WithLogger(quietLogger()))

	done := make(chan error, 1)
	go func() { done <- client.Run(context.Background()) }()

	waitFor(t, func() bool { return server.dials.Load() == 1 })
	require.NoError(t, client.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run loop did not stop after close")
	}

	// Give any stray reconnect a moment to show itself
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), server.dials.Load())
}

func TestClient_HistoryBound(t *testing.T) {
	client := NewClient("ws://unused", WithLogger(quietLogger()))

	for id := 0; id < 250; id++ {
		client.appendHistory(Message{ID: id})
	}

	messages := client.Messages()
	require.Len(t, messages, 200)
	assert.Equal(t, 50, messages[0].ID)
	assert.Equal(t, 249, messages[len(messages)-1].ID)
}
