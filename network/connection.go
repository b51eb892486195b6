// network/connection.go
package network

import (
	"bytes"
	"io"
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection is one bidirectional byte stream toward a connected player.
// Every message travels as a fixed-size null-padded text frame.
type Connection interface {
	SendText(text string) error
	ReadFrame() (string, error)
	Close() error
	RemoteAddr() net.Addr
}

// encodeFrame copies text into a FrameSize buffer, null-padded, truncated if
// longer. The last byte stays NUL so the receiver always finds a terminator.
func encodeFrame(text string) []byte {
	frame := make([]byte, FrameSize)
	copy(frame[:FrameSize-1], text)
	return frame
}

// decodeFrame returns the text up to the first NUL.
func decodeFrame(frame []byte) string {
	if i := bytes.IndexByte(frame, 0); i >= 0 {
		return string(frame[:i])
	}
	return string(frame)
}

// TCPConnection frames messages over a raw TCP stream.
type TCPConnection struct {
	conn      net.Conn
	sendMutex sync.Mutex
}

func NewTCPConnection(conn net.Conn) *TCPConnection {
	return &TCPConnection{conn: conn}
}

func (c *TCPConnection) SendText(text string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	_, err := c.conn.Write(encodeFrame(text))
	return err
}

func (c *TCPConnection) ReadFrame() (string, error) {
	frame := make([]byte, FrameSize)
	if _, err := io.ReadFull(c.conn, frame); err != nil {
		return "", err
	}
	return decodeFrame(frame), nil
}

func (c *TCPConnection) Close() error {
	return c.conn.Close()
}

func (c *TCPConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// WSConnection carries the same fixed-size frames as WebSocket binary
// messages, so browser-hosted clients speak the identical protocol.
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) SendText(text string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	return c.conn.WriteMessage(websocket.BinaryMessage, encodeFrame(text))
}

func (c *WSConnection) ReadFrame() (string, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	if len(data) > FrameSize {
		data = data[:FrameSize]
	}
	return decodeFrame(data), nil
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
