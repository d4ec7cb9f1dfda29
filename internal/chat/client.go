// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"github.com/frageo/frageo/internal/platform/constants"
)

// # Client

// Client owns one websocket connection to the chat backend.
//
// # Lifecycle
//
// Run dials, requests the history, and reads frames until the connection
// drops or the context is cancelled. A dropped connection is redialed with
// exponential backoff up to a fixed attempt budget; Close performs a clean
// shutdown that suppresses any reconnect.
type Client struct {
	endpoint string
	token    string
	dialer   *websocket.Dialer
	log      *slog.Logger

	// writeMu serializes frame writes; gorilla permits one concurrent writer.
	writeMu sync.Mutex
	conn    *websocket.Conn

	// historyMu guards the bounded message list.
	historyMu sync.Mutex
	history   []Message

	// closeMu guards the closed flag set by Close.
	closeMu sync.Mutex
	closed  bool
}

// Option customizes a [Client].
type Option func(*Client)

// WithToken attaches the session's access token to the connection URL.
func WithToken(token string) Option {
	return func(client *Client) { client.token = token }
}

// WithDialer overrides the websocket dialer, mainly for tests.
func WithDialer(dialer *websocket.Dialer) Option {
	return func(client *Client) { client.dialer = dialer }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(client *Client) { client.log = log }
}

/*
NewClient constructs a chat client for the given websocket endpoint.

Parameters:
  - endpoint: the ws:// or wss:// URL of the chat backend.
  - options: optional token, dialer, and logger overrides.

Returns:
  - A client ready for [Client.Run].
*/
func NewClient(endpoint string, options ...Option) *Client {
	client := &Client{
		endpoint: endpoint,
		dialer:   websocket.DefaultDialer,
		log:      slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// # Connection Lifecycle

/*
Run connects and processes frames until the context is cancelled or the
client is closed.

Description: Each dropped connection is redialed with exponential backoff
(capped interval, bounded attempts). A successful connection resets the
attempt budget. A clean [Client.Close] or context cancellation ends the loop
without redialing.

Returns:
  - nil after a clean close or context cancellation's ctx.Err().
  - An error when the reconnect budget is exhausted.
*/
func (client *Client) Run(context context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = constants.ChatReconnectInitialInterval
	policy.MaxInterval = constants.ChatReconnectMaxInterval
	policy.MaxElapsedTime = 0

	attempts := 0

	for {
		connected, err := client.connectAndRead(context)

		// 1. Deliberate shutdown never reconnects
		if client.isClosed() {
			return nil
		}
		if context.Err() != nil {
			return context.Err()
		}

		// 2. A clean server-side closure ends the loop
		if err == nil {
			return nil
		}

		// 3. A session that made it past the dial resets the budget
		if connected {
			policy.Reset()
			attempts = 0
		}

		// 4. Budgeted reconnect with exponential delay
		attempts++
		if attempts > constants.ChatReconnectMaxAttempts {
			return fmt.Errorf("chat_reconnect_exhausted: %w", err)
		}

		delay := policy.NextBackOff()
		client.log.Warn("chat_reconnecting",
			slog.Int("attempt", attempts),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)

		select {
		case <-time.After(delay):
		case <-context.Done():
			return context.Err()
		}
	}
}

// connectAndRead dials once and reads frames until the connection dies.
//
// The boolean reports whether the dial succeeded; a nil error means the
// server closed the connection cleanly.
func (client *Client) connectAndRead(context context.Context) (bool, error) {
	conn, _, err := client.dialer.DialContext(context, client.connectURL(), nil)
	if err != nil {
		return false, fmt.Errorf("chat_dial_failed: %w", err)
	}

	client.writeMu.Lock()
	client.conn = conn
	client.writeMu.Unlock()

	defer func() {
		client.writeMu.Lock()
		client.conn = nil
		client.writeMu.Unlock()
		conn.Close()
	}()

	// Request the recent history immediately after connecting
	if err := client.send(EventGetMessages, nil); err != nil {
		return true, fmt.Errorf("chat_history_request_failed: %w", err)
	}

	client.log.Info("chat_connected", slog.String("endpoint", client.endpoint))

	// Close the connection when the context ends so ReadMessage unblocks
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-context.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true, nil
			}
			if client.isClosed() || context.Err() != nil {
				return true, nil
			}
			return true, fmt.Errorf("chat_read_failed: %w", err)
		}

		client.dispatch(frame)
	}
}

// connectURL appends the access token as a query parameter when present.
func (client *Client) connectURL() string {
	if client.token == "" {
		return client.endpoint
	}

	parsed, err := url.Parse(client.endpoint)
	if err != nil {
		return client.endpoint
	}

	query := parsed.Query()
	query.Set("token", client.token)
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

/*
Close performs a clean shutdown.

Description: Sends a normal-closure frame when connected and marks the
client closed so the read loop ends without reconnecting. Safe to call more
than once.
*/
func (client *Client) Close() error {
	client.closeMu.Lock()
	if client.closed {
		client.closeMu.Unlock()
		return nil
	}
	client.closed = true
	client.closeMu.Unlock()

	client.writeMu.Lock()
	defer client.writeMu.Unlock()

	if client.conn == nil {
		return nil
	}

	deadline := time.Now().Add(time.Second)
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = client.conn.WriteControl(websocket.CloseMessage, message, deadline)
	return client.conn.Close()
}

func (client *Client) isClosed() bool {
	client.closeMu.Lock()
	defer client.closeMu.Unlock()
	return client.closed
}

// # Outbound

/*
Send submits a chat line over the open connection.

Returns:
  - An error when the connection is down or the write fails.
*/
func (client *Client) Send(content string) error {
	return client.send(EventSendMessage, outgoingMessage{Content: content})
}

func (client *Client) send(event string, data any) error {
	envelope, err := newEnvelope(event, data)
	if err != nil {
		return fmt.Errorf("chat_encode_failed: %w", err)
	}

	client.writeMu.Lock()
	defer client.writeMu.Unlock()

	if client.conn == nil {
		return fmt.Errorf("chat_not_connected")
	}

	if err := client.conn.WriteJSON(envelope); err != nil {
		return fmt.Errorf("chat_write_failed: %w", err)
	}
	return nil
}

// # Inbound Dispatch

// dispatch routes one inbound frame by event name.
func (client *Client) dispatch(frame []byte) {
	var envelope Envelope
	if err := json.Unmarshal(frame, &envelope); err != nil {
		client.log.Warn("chat_bad_frame", slog.String("error", err.Error()))
		return
	}

	switch envelope.Event {

	case EventGetMessages:
		var messages []Message
		if err := json.Unmarshal(envelope.Data, &messages); err != nil {
			client.log.Warn("chat_bad_history", slog.String("error", err.Error()))
			return
		}
		client.replaceHistory(messages)

	case EventGetMessage:
		var message Message
		if err := json.Unmarshal(envelope.Data, &message); err != nil {
			client.log.Warn("chat_bad_message", slog.String("error", err.Error()))
			return
		}
		client.appendHistory(message)
		client.log.Debug("chat_message_received", slog.Int("message_id", message.ID))

	default:
		client.log.Debug("chat_event_ignored", slog.String("event", envelope.Event))
	}
}

// # History

// replaceHistory swaps the full message list, keeping only the newest
// entries within the history limit.
func (client *Client) replaceHistory(messages []Message) {
	if len(messages) > constants.ChatHistoryLimit {
		messages = messages[len(messages)-constants.ChatHistoryLimit:]
	}

	client.historyMu.Lock()
	client.history = append([]Message(nil), messages...)
	client.historyMu.Unlock()
}

// appendHistory adds one message, evicting the oldest beyond the limit.
func (client *Client) appendHistory(message Message) {
	client.historyMu.Lock()
	client.history = append(client.history, message)
	if len(client.history) > constants.ChatHistoryLimit {
		client.history = client.history[len(client.history)-constants.ChatHistoryLimit:]
	}
	client.historyMu.Unlock()
}

// Messages returns a snapshot of the current history, oldest first.
func (client *Client) Messages() []Message {
	client.historyMu.Lock()
	defer client.historyMu.Unlock()
	return append([]Message(nil), client.history...)
}
