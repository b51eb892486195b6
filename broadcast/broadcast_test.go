package broadcast

import (
	"errors"
	"net"
	"os"
	"testing"

	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/session"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// recordConn is a test double for the network.Connection interface that
// records sent frames and can fail on demand.
type recordConn struct {
	sent    []string
	sendErr error
}

func (c *recordConn) SendText(text string) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, text)
	return nil
}

func (c *recordConn) ReadFrame() (string, error) { return "", nil }
func (c *recordConn) Close() error               { return nil }
func (c *recordConn) RemoteAddr() net.Addr       { return &net.TCPAddr{} }

func boundSession(id string, seat int, conn *recordConn) *session.Session {
	sess := session.NewSession(id, conn)
	sess.Bind(seat, id)
	return sess
}

func TestSendToPlayer(t *testing.T) {
	manager := session.NewManager()
	conn := &recordConn{}
	manager.Add(boundSession("s1", 1, conn))
	bc := NewSessionBroadcaster(manager)

	if err := bc.SendToPlayer(1, "hello"); err != nil {
		t.Fatalf("SendToPlayer failed: %v", err)
	}
	if len(conn.sent) != 1 || conn.sent[0] != "hello" {
		t.Errorf("sent = %v, want the delivered frame", conn.sent)
	}

	if err := bc.SendToPlayer(9, "nobody"); !errors.Is(err, ErrNoSession) {
		t.Errorf("error = %v, want ErrNoSession for an unbound seat", err)
	}
}

func TestBroadcastToRemotesSkipsUnboundAndFailing(t *testing.T) {
	manager := session.NewManager()
	healthy := &recordConn{}
	failing := &recordConn{sendErr: errors.New("broken pipe")}
	unbound := &recordConn{}

	manager.Add(boundSession("healthy", 1, healthy))
	manager.Add(boundSession("failing", 2, failing))
	manager.Add(session.NewSession("pending", unbound))

	bc := NewSessionBroadcaster(manager)
	bc.BroadcastToRemotes("round over")

	if len(healthy.sent) != 1 || healthy.sent[0] != "round over" {
		t.Errorf("healthy remote received %v, want the broadcast", healthy.sent)
	}
	if len(unbound.sent) != 0 {
		t.Error("an unbound session must not receive broadcasts")
	}
}

func TestBroadcastToRemotesExcept(t *testing.T) {
	manager := session.NewManager()
	first := &recordConn{}
	second := &recordConn{}
	manager.Add(boundSession("first", 1, first))
	manager.Add(boundSession("second", 2, second))

	bc := NewSessionBroadcaster(manager)
	bc.BroadcastToRemotesExcept(1, "not for you")

	if len(first.sent) != 0 {
		t.Errorf("the excluded seat received %v", first.sent)
	}
	if len(second.sent) != 1 {
		t.Errorf("the other seat received %v, want the broadcast", second.sent)
	}
}
