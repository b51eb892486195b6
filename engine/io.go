package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Progxy/phalsophobia-multiplayer/inbox"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/monitor"
	"github.com/Progxy/phalsophobia-multiplayer/network"
	"github.com/Progxy/phalsophobia-multiplayer/session"
	"github.com/Progxy/phalsophobia-multiplayer/timer"
)

var (
	// ErrDisconnected is returned when the player's connection dropped
	// while the engine was waiting on them.
	ErrDisconnected = errors.New("player disconnected")

	// ErrReplyTimeout is returned when a remote player exceeded the
	// configured turn timeout.
	ErrReplyTimeout = errors.New("player reply timed out")
)

// PlayerIO is one player's input and output surface. The host plays over
// the terminal, remote players over their connection; the turn loop treats
// both the same.
type PlayerIO interface {
	Show(text string)
	Ask(ctx context.Context, prompt string) (string, error)
}

// RemoteIO speaks to one remote player: Show is a plain frame, Ask sends
// the prompt followed by the input-request token and blocks on the inbox
// until that connection answers.
type RemoteIO struct {
	sess    *session.Session
	box     *inbox.Inbox
	mon     *monitor.Monitor
	timers  *timer.TimerManager
	timeout time.Duration

	// warnAfter is the silence after which the watchdog logs while a reply
	// is still outstanding. Zero disables it.
	warnAfter time.Duration
}

func NewRemoteIO(sess *session.Session, box *inbox.Inbox, mon *monitor.Monitor, timers *timer.TimerManager, timeout, warnAfter time.Duration) *RemoteIO {
	return &RemoteIO{
		sess:      sess,
		box:       box,
		mon:       mon,
		timers:    timers,
		timeout:   timeout,
		warnAfter: warnAfter,
	}
}

func (r *RemoteIO) Show(text string) {
	if err := r.sess.SendText(text); err != nil {
		logger.Log.Warnw("remote show failed", "session", r.sess.ID, "error", err)
	}
}

func (r *RemoteIO) Ask(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		if err := r.sess.SendText(prompt); err != nil {
			return "", ErrDisconnected
		}
	}
	if err := r.sess.SendText(network.TokenUserInput); err != nil {
		return "", ErrDisconnected
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if r.timers != nil && r.warnAfter > 0 {
		watchdog := r.timers.AddTimer(r.warnAfter, r.warnAfter, func() {
			logger.Log.Warnw("still waiting on remote reply",
				"session", r.sess.ID, "player", r.sess.PlayerIndex, "waited", time.Since(start))
		})
		defer r.timers.RemoveTimer(watchdog)
	}

	entry, err := r.box.AwaitFrom(ctx, r.sess.ID)
	if err != nil {
		if errors.Is(err, inbox.ErrDisconnected) {
			return "", ErrDisconnected
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrReplyTimeout
		}
		return "", err
	}

	if r.mon != nil {
		r.mon.ObserveRemoteReply(time.Since(start))
	}
	return entry.Payload, nil
}
