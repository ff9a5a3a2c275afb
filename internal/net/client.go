package net

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"GestureBoard/internal/gesture"
)

// Client is the replay side of the protocol: it pushes landmark samples to
// a host and receives canvas frames back.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

// Dial connects to a host at addr (host:port) on the given WebSocket path.
func Dial(ctx context.Context, addr, path string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: path}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// LocalAddr returns the client's side of the connection.
func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

func (c *Client) send(msg NetworkMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// SendSample pushes one frame of landmarks; an empty sample reports that
// no hand was detected.
func (c *Client) SendSample(s gesture.Sample) error {
	return c.send(LandmarksMessage(s))
}

// RequestSave asks the host to persist the canvas. format may be empty.
func (c *Client) RequestSave(format string) error {
	return c.send(NetworkMessage{Type: TypeSaveCanvas, Format: format})
}

// Receive blocks for the next message from the host.
func (c *Client) Receive() (NetworkMessage, error) {
	var msg NetworkMessage
	err := c.conn.ReadJSON(&msg)
	return msg, err
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	c.mu.Unlock()
	return c.conn.Close()
}
