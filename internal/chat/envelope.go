// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package chat maintains the portal's realtime chat connection.

It speaks a small envelope protocol over a single websocket: every frame in
both directions is `{event: string, data: <json>}`. The client keeps a
bounded in-memory history that the chat panel renders on each page load.

Architecture:

  - Envelope: the wire frame shared by both directions.
  - Message: one chat line as the backend broadcasts it.
  - Client: connection owner; one reader goroutine, reconnect with
    exponential backoff, mutex-guarded history.

Delivery is best-effort and at-most-once. The client makes no ordering or
backpressure guarantees beyond what the single websocket provides.
*/
package chat

import "encoding/json"

// # Wire Protocol

// Event names understood by the portal.
const (
	// EventGetMessages requests (client → server) or delivers
	// (server → client) the full recent history.
	EventGetMessages = "get_messages"

	// EventGetMessage delivers a single newly broadcast message.
	EventGetMessage = "get_message"

	// EventSendMessage submits a new chat line.
	EventSendMessage = "send_message"
)

// Envelope is the frame exchanged over the websocket in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Message is one chat line as the backend broadcasts it.
type Message struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// outgoingMessage is the payload of a send_message frame.
type outgoingMessage struct {
	Content string `json:"content"`
}

// newEnvelope marshals data into a ready-to-send frame.
func newEnvelope(event string, data any) (*Envelope, error) {
	if data == nil {
		return &Envelope{Event: event}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Envelope{Event: event, Data: raw}, nil
}
