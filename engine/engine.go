package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Progxy/phalsophobia-multiplayer/broadcast"
	"github.com/Progxy/phalsophobia-multiplayer/game"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/monitor"
	"github.com/Progxy/phalsophobia-multiplayer/network"
	"github.com/Progxy/phalsophobia-multiplayer/term"
)

// ErrGameExited is returned by Run when a player chose to exit the game.
var ErrGameExited = errors.New("game exited")

const turnMenu = "\n1) Go to the caravan to deposit all the evidence from the backpack;" +
	"\n2) Go to the next zone;" +
	"\n3) Pick the evidence from the current zone;" +
	"\n4) Pick the object from the current zone;" +
	"\n5) Use an object from the backpack;" +
	"\n6) Skip the turn;" +
	"\n7) Give an object to another player in the same room;" +
	"\n8) Remove an object;" +
	"\n9) Reorganize the backpack;" +
	"\n10) Print the player info;" +
	"\n11) Print the current zone info;" +
	"\n12) Print all the evidence in the caravan;" +
	"\n13) Print the ghost info;" +
	"\n14) Print the game info;" +
	"\n15) Exit the game.\nChoose an action from the option above: "

const invalidInput = "\nError: please insert a valid input!"

// Engine runs the round loop: it draws a turn order, plays every seat's
// turn through its PlayerIO and stops on win, game over or exit. Seat 0 is
// always the host.
type Engine struct {
	sess  *game.Session
	ios   []PlayerIO
	names []string
	bc    broadcast.Broadcaster
	mon   *monitor.Monitor
}

func New(sess *game.Session, ios []PlayerIO, names []string, bc broadcast.Broadcaster, mon *monitor.Monitor) *Engine {
	return &Engine{
		sess:  sess,
		ios:   ios,
		names: names,
		bc:    bc,
		mon:   mon,
	}
}

// Run plays rounds until the game resolves. The returned status is
// StatusPlaying only when the error is non-nil (exit or cancellation).
func (e *Engine) Run(ctx context.Context) (game.Status, error) {
	for {
		order := e.turnOrder()
		logger.Log.Infow("round started", "round", e.sess.Round()+1, "order", order)

		for turnIdx, seat := range order {
			e.signalTurn(seat)

			status, eliminated := e.sess.CheckStatus()
			e.announceEliminations(eliminated)
			if status != game.StatusPlaying {
				e.finish(status)
				return status, nil
			}

			if !e.sess.Alive(seat) {
				e.bc.BroadcastToRemotes(network.TokenTurnTerminated)
				continue
			}

			if err := e.playTurn(ctx, seat, turnIdx); err != nil {
				switch {
				case errors.Is(err, ErrDisconnected):
					e.sess.EliminatePlayer(seat)
					e.showAll(term.Colored(term.Red, fmt.Sprintf("\n%s has disconnected, and has been eliminated!", e.names[seat])))
					e.bc.BroadcastToRemotes(network.TokenTurnTerminated)
				default:
					return game.StatusPlaying, err
				}
			}

			if e.mon != nil {
				e.mon.SetPlayersAlive(e.sess.AliveCount())
			}
		}

		e.sess.NextRound()
		if e.mon != nil {
			e.mon.IncRoundsPlayed()
		}
	}
}

// turnOrder draws a random permutation of the seats by rejection sampling.
func (e *Engine) turnOrder() []int {
	n := e.sess.PlayerCount()
	order := make([]int, 0, n)
	taken := make([]bool, n)

	for len(order) < n {
		seat := e.sess.Roll(n)
		if taken[seat] {
			continue
		}
		taken[seat] = true
		order = append(order, seat)
	}
	return order
}

// signalTurn tells every remote whose turn it is.
func (e *Engine) signalTurn(seat int) {
	for i := 1; i < e.sess.PlayerCount(); i++ {
		if i == seat {
			e.bc.SendToPlayer(i, network.TokenIsYourTurn)
			continue
		}
		e.bc.SendToPlayer(i, network.TokenNotYourTurn)
	}
}

func (e *Engine) announceEliminations(eliminated []int) {
	for _, seat := range eliminated {
		text := term.Colored(term.Red, "\nYou have been eliminated because your mental health is less than 0!")
		if seat == 0 {
			e.ios[0].Show(text)
		} else {
			e.bc.SendToPlayer(seat, text)
		}
		e.showAll(term.Colored(term.Red, fmt.Sprintf("\n%s has been eliminated!", e.names[seat])))
	}
}

func (e *Engine) finish(status game.Status) {
	var banner string
	if status == game.StatusWin {
		banner = term.Colored(term.Green, "\nThe game ends, the players have won, congratulations!")
	} else {
		banner = term.Colored(term.Red, "\nGame Over, the players have lost!")
	}
	e.showAll(banner)
	e.bc.BroadcastToRemotes(network.TokenGameTerminated)
}

// showAll prints on the host terminal and sends to every remote.
func (e *Engine) showAll(text string) {
	e.ios[0].Show(text)
	e.bc.BroadcastToRemotes(text)
}

// playTurn drives one player's turn until they take a turn-ending action
// (deposit, advance or skip). Every other action keeps the turn open.
func (e *Engine) playTurn(ctx context.Context, seat, turnIdx int) error {
	io := e.ios[seat]
	name := e.names[seat]

	for {
		header := term.Colored(term.Magenta,
			fmt.Sprintf("\nROUND: %d - TURN: %d - CURRENTLY PLAYING: %s\n", e.sess.Round()+1, turnIdx+1, name))
		e.showAllExcept(seat, header+term.Colored(term.Yellow, "\nWait the end of the current turn!"))
		io.Show(header)

		if player := e.sess.Player(seat); player != nil && player.UseAdvice {
			spacer := "\n----------------------------------------------------------------------------------------------------\n"
			io.Show(spacer + term.Colored(term.Cyan, e.sess.AdviceFor(seat)) + spacer)
		} else if seat != 0 {
			e.bc.SendToPlayer(seat, network.TokenNoAdvice)
		}

		answer, err := io.Ask(ctx, turnMenu)
		if errors.Is(err, ErrReplyTimeout) {
			e.showAll(term.Colored(term.Yellow, fmt.Sprintf("\n%s took too long, and the turn has been skipped!", name)))
			e.bc.BroadcastToRemotes(network.TokenTurnTerminated)
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(answer))
		if convErr != nil {
			io.Show(term.Colored(term.Red, invalidInput))
			if err := e.confirm(ctx, io); err != nil {
				return err
			}
			continue
		}

		finished := false
		var actionErr error
		var menuErr error

		switch choice {
		case 1:
			var msgs []string
			msgs, actionErr = e.sess.ReturnToCaravan(seat)
			if actionErr == nil {
				e.showMessages(io, msgs)
				finished = true
			}

		case 2:
			e.showMessages(io, e.sess.MoveToNextZone(seat))
			finished = true

		case 3:
			var msgs []string
			msgs, actionErr = e.sess.PickEvidence(seat)
			if actionErr == nil {
				// Ghost events concern everyone, not just the picker.
				for _, msg := range msgs {
					e.showAll(term.Colored(term.Magenta, "\n"+msg))
				}
			}

		case 4:
			var msg string
			msg, actionErr = e.sess.PickObject(seat)
			if actionErr == nil {
				io.Show(term.Colored(term.Magenta, "\n"+msg))
			}

		case 5:
			menuErr = e.useObjectMenu(ctx, seat)

		case 6:
			io.Show(term.Colored(term.Yellow, "\nYou have skipped your turn!"))
			finished = true

		case 7:
			menuErr = e.giveMenu(ctx, seat)

		case 8:
			menuErr = e.removeMenu(ctx, seat)

		case 9:
			menuErr = e.reorganizeMenu(ctx, seat)

		case 10:
			io.Show(e.sess.PlayerInfoString(seat, seat != 0))

		case 11:
			io.Show(e.sess.ZoneInfoString(seat))

		case 12:
			io.Show(e.sess.CaravanString())

		case 13:
			io.Show(e.sess.GhostInfoString())

		case 14:
			io.Show(header + e.sess.SettingsString())

		case 15:
			return ErrGameExited

		default:
			io.Show(term.Colored(term.Red, invalidInput))
		}

		if menuErr != nil {
			if errors.Is(menuErr, ErrReplyTimeout) {
				e.showAll(term.Colored(term.Yellow, fmt.Sprintf("\n%s took too long, and the turn has been skipped!", name)))
				e.bc.BroadcastToRemotes(network.TokenTurnTerminated)
				return nil
			}
			return menuErr
		}

		if actionErr != nil {
			io.Show(term.Colored(term.Yellow, "\n"+upperFirst(actionErr.Error())+"!"))
		}

		if finished {
			if health, hit := e.sess.ApplyTurnFatigue(seat); hit {
				io.Show(term.Colored(term.Yellow, fmt.Sprintf("\n\nYour mental health has decreased to %d", health)))
			}
			if err := e.confirm(ctx, io); err != nil {
				return err
			}
			e.bc.BroadcastToRemotes(network.TokenTurnTerminated)
			return nil
		}

		if err := e.confirm(ctx, io); err != nil {
			return err
		}
	}
}

// confirm waits for the player to acknowledge before the screen moves on.
// A reply timeout is treated as an acknowledgement.
func (e *Engine) confirm(ctx context.Context, io PlayerIO) error {
	_, err := io.Ask(ctx, term.Colored(term.Yellow, "\n\nPress ENTER to continue: "))
	if errors.Is(err, ErrReplyTimeout) {
		return nil
	}
	return err
}

func (e *Engine) showMessages(io PlayerIO, msgs []string) {
	for _, msg := range msgs {
		io.Show(term.Colored(term.Magenta, "\n"+msg))
	}
}

func (e *Engine) showAllExcept(seat int, text string) {
	if seat != 0 {
		e.ios[0].Show(text)
	}
	e.bc.BroadcastToRemotesExcept(seat, text)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
