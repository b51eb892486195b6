package session

import (
	"net"
	"testing"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent   []string
	closed bool
}

func (m *MockConnection) SendText(text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *MockConnection) ReadFrame() (string, error) { return "", nil }

func (m *MockConnection) Close() error {
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr { return &net.TCPAddr{} }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	// Test Add
	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	// Test Get
	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	// Test Remove
	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByPlayerIndex(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.Bind(1, "alice")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.Bind(2, "bob")

	sess3 := NewSession("session3", &MockConnection{})

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	found, exists := manager.GetByPlayerIndex(2)
	if !exists {
		t.Fatal("GetByPlayerIndex should find the bound session")
	}
	if found != sess2 {
		t.Error("GetByPlayerIndex should return the session bound to the seat")
	}

	if _, exists := manager.GetByPlayerIndex(7); exists {
		t.Error("GetByPlayerIndex should not find an unbound seat")
	}
}

func TestSession_Bind(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})

	if sess.PlayerIndex != -1 {
		t.Errorf("A new session should be unbound, got seat %d", sess.PlayerIndex)
	}

	sess.Bind(3, "carol")
	if sess.PlayerIndex != 3 {
		t.Errorf("PlayerIndex = %d, want 3", sess.PlayerIndex)
	}
	if sess.Name != "carol" {
		t.Errorf("Name = %q, want %q", sess.Name, "carol")
	}
}

func TestSession_SendTextUpdatesActivity(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("test_session", conn)
	before := sess.LastActive

	if err := sess.SendText("hello"); err != nil {
		t.Fatalf("SendText failed: %v", err)
	}

	if len(conn.sent) != 1 || conn.sent[0] != "hello" {
		t.Errorf("sent = %v, want the forwarded text", conn.sent)
	}
	if sess.LastActive.Before(before) {
		t.Error("SendText should refresh LastActive")
	}
}

func TestManager_CloseAll(t *testing.T) {
	manager := NewManager()
	conn1 := &MockConnection{}
	conn2 := &MockConnection{}
	manager.Add(NewSession("s1", conn1))
	manager.Add(NewSession("s2", conn2))

	manager.CloseAll()

	if manager.Count() != 0 {
		t.Errorf("Expected an empty manager after CloseAll, got %d", manager.Count())
	}
	if !conn1.closed || !conn2.closed {
		t.Error("CloseAll should close every connection")
	}
}
