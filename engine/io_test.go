package engine

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Progxy/phalsophobia-multiplayer/inbox"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/network"
	"github.com/Progxy/phalsophobia-multiplayer/session"
	"github.com/Progxy/phalsophobia-multiplayer/timer"
)

// captureConn records outbound frames; inbound frames come from the inbox
// directly, so ReadFrame is never used.
type captureConn struct {
	sent []string
}

func (c *captureConn) SendText(text string) error {
	c.sent = append(c.sent, text)
	return nil
}

func (c *captureConn) ReadFrame() (string, error) { return "", nil }
func (c *captureConn) Close() error               { return nil }
func (c *captureConn) RemoteAddr() net.Addr       { return &net.TCPAddr{} }

func TestRemoteIOAskSendsPromptAndInputToken(t *testing.T) {
	conn := &captureConn{}
	remote := session.NewSession("r1", conn)
	box := inbox.New()
	box.Put("r1", "3")

	rio := NewRemoteIO(remote, box, nil, nil, 0, 0)

	got, err := rio.Ask(context.Background(), "pick an action: ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "3" {
		t.Errorf("reply = %q, want %q", got, "3")
	}
	if len(conn.sent) != 2 || conn.sent[0] != "pick an action: " || conn.sent[1] != network.TokenUserInput {
		t.Errorf("sent = %v, want the prompt followed by the input token", conn.sent)
	}
}

func TestRemoteIOAskWarnsWhileReplyIsStalled(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	restore := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = restore }()

	conn := &captureConn{}
	remote := session.NewSession("r1", conn)
	box := inbox.New()
	timers := timer.NewTimerManager()
	defer timers.Stop()

	rio := NewRemoteIO(remote, box, nil, timers, 0, 50*time.Millisecond)

	go func() {
		time.Sleep(400 * time.Millisecond)
		box.Put("r1", "late answer")
	}()

	got, err := rio.Ask(context.Background(), "still there? ")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "late answer" {
		t.Errorf("reply = %q, want %q", got, "late answer")
	}

	warned := false
	for _, entry := range logs.All() {
		if entry.Message == "still waiting on remote reply" {
			warned = true
			break
		}
	}
	if !warned {
		t.Error("the watchdog should warn while the reply is outstanding")
	}
}

func TestRemoteIOAskTimesOut(t *testing.T) {
	conn := &captureConn{}
	remote := session.NewSession("r1", conn)
	box := inbox.New()

	rio := NewRemoteIO(remote, box, nil, nil, 50*time.Millisecond, 0)

	if _, err := rio.Ask(context.Background(), "anyone? "); err != ErrReplyTimeout {
		t.Errorf("error = %v, want ErrReplyTimeout", err)
	}
}

func TestRemoteIOAskReportsDisconnect(t *testing.T) {
	conn := &captureConn{}
	remote := session.NewSession("r1", conn)
	box := inbox.New()
	box.MarkClosed("r1")

	rio := NewRemoteIO(remote, box, nil, nil, 0, 0)

	if _, err := rio.Ask(context.Background(), "anyone? "); err != ErrDisconnected {
		t.Errorf("error = %v, want ErrDisconnected", err)
	}
}
