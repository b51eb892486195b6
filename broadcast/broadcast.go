package broadcast

import (
	"errors"

	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/session"
)

var (
	ErrNoSession = errors.New("no session bound to player")
)

// Broadcaster fans text frames out to the remote players.
type Broadcaster interface {
	SendToPlayer(playerIndex int, text string) error
	BroadcastToRemotes(text string)
	BroadcastToRemotesExcept(playerIndex int, text string)
}

// SessionBroadcaster delivers over the session manager's connections.
type SessionBroadcaster struct {
	sessionManager *session.Manager
}

func NewSessionBroadcaster(sessionManager *session.Manager) *SessionBroadcaster {
	return &SessionBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *SessionBroadcaster) SendToPlayer(playerIndex int, text string) error {
	sess, exists := b.sessionManager.GetByPlayerIndex(playerIndex)
	if !exists {
		return ErrNoSession
	}
	return sess.SendText(text)
}

// BroadcastToRemotes sends to every bound remote seat. Send failures are
// logged and skipped; the disconnect surfaces on that player's next turn.
func (b *SessionBroadcaster) BroadcastToRemotes(text string) {
	b.BroadcastToRemotesExcept(-1, text)
}

func (b *SessionBroadcaster) BroadcastToRemotesExcept(playerIndex int, text string) {
	for _, sess := range b.sessionManager.All() {
		if sess.PlayerIndex < 0 || sess.PlayerIndex == playerIndex {
			continue
		}
		if err := sess.SendText(text); err != nil {
			logger.Log.Warnw("broadcast send failed", "session", sess.ID, "player", sess.PlayerIndex, "error", err)
			continue
		}
	}
}
