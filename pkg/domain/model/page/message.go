package page

import (
	"context"
	"encoding/json"

	"github.com/secmon-lab/greetr/pkg/utils/clock"
)

// Message types exchanged with a live page.
const (
	TypeRender = "render"
	TypeStatus = "status"
	TypePing   = "ping"
	TypePong   = "pong"
	TypeError  = "error"
)

// Message is a server-to-page message. For TypeRender the page replaces the
// inner HTML of every element matching Selector with HTML.
type Message struct {
	Type      string `json:"type"`
	Selector  string `json:"selector,omitempty"`
	HTML      string `json:"html,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Request is a page-to-server message. Only pings are understood.
type Request struct {
	Type string `json:"type"`
}

func (m *Message) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}

func (r *Request) FromBytes(data []byte) error {
	return json.Unmarshal(data, r)
}

func newMessage(ctx context.Context, msgType string) *Message {
	return &Message{
		Type:      msgType,
		Timestamp: clock.Now(ctx).Unix(),
	}
}

func NewRenderMessage(ctx context.Context, selector, html string) *Message {
	m := newMessage(ctx, TypeRender)
	m.Selector = selector
	m.HTML = html
	return m
}

func NewStatusMessage(ctx context.Context, content string) *Message {
	m := newMessage(ctx, TypeStatus)
	m.Content = content
	return m
}

func NewErrorMessage(ctx context.Context, content string) *Message {
	m := newMessage(ctx, TypeError)
	m.Content = content
	return m
}

func NewPongMessage(ctx context.Context) *Message {
	return newMessage(ctx, TypePong)
}
