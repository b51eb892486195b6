package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Progxy/phalsophobia-multiplayer/broadcast"
	"github.com/Progxy/phalsophobia-multiplayer/config"
	"github.com/Progxy/phalsophobia-multiplayer/engine"
	"github.com/Progxy/phalsophobia-multiplayer/game"
	"github.com/Progxy/phalsophobia-multiplayer/inbox"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/monitor"
	"github.com/Progxy/phalsophobia-multiplayer/network"
	"github.com/Progxy/phalsophobia-multiplayer/rpc"
	"github.com/Progxy/phalsophobia-multiplayer/services"
	"github.com/Progxy/phalsophobia-multiplayer/session"
	"github.com/Progxy/phalsophobia-multiplayer/state"
	"github.com/Progxy/phalsophobia-multiplayer/term"
	"github.com/Progxy/phalsophobia-multiplayer/timer"
)

const welcomeBanner = "\n------------- WELCOME TO PHALSOPHOBIA -------------\n" +
	"\nThe rules are simple:\n" +
	"\nTo win the game you need to collect in the caravan,\nall the three different types of evidence: [EMF, SPIRIT_BOX and CAMERA].\n" +
	"\nBut be careful to not let your mental health decrease to zero!" +
	"\nOtherwise you will be eliminated!" +
	"\n\nSaid that, good luck!"

const mapEditorMenu = "\n1) Insert a new zone;" +
	"\n2) Delete the last zone;" +
	"\n3) Print the zones currently on the map;" +
	"\n4) Close the map." +
	"\nChoose between the option listed above: "

const difficultyMenu = "\n1) Amateur;" +
	"\n2) Intermediate;" +
	"\n3) Nightmare." +
	"\nChoose the difficulty level from the option above: "

// GameServer owns the whole lifetime of one hosted game: the lobby, the
// setup dialogue on the host terminal, the engine run and the teardown.
type GameServer struct {
	cfg      *config.ServerConfig
	prompter *term.Prompter
	box      *inbox.Inbox
	sess     *game.Session
	sessions *session.Manager
	bc       *broadcast.SessionBroadcaster
	mon      *monitor.Monitor
	records  *services.RecordService
	timers   *timer.TimerManager
	machine  *state.BaseStateMachine

	gameID    string
	startedAt time.Time
	names     []string
	// seats[i] is the session bound to seat i+1, in join order.
	seats []*session.Session

	tcpListener net.Listener
	wsServer    *http.Server
	joinCh      chan network.Connection
}

func NewGameServer(cfg *config.ServerConfig, prompter *term.Prompter, sess *game.Session, mon *monitor.Monitor, records *services.RecordService, timers *timer.TimerManager) *GameServer {
	lobby := state.NewLobbyPhase()
	setup := state.NewSetupPhase()
	playing := state.NewPlayingPhase()
	ended := state.NewEndedPhase()

	machine := state.NewBaseStateMachine(lobby)
	machine.AddTransition(lobby, setup, nil)
	machine.AddTransition(setup, playing, nil)
	machine.AddTransition(playing, ended, nil)

	manager := session.NewManager()

	return &GameServer{
		cfg:      cfg,
		prompter: prompter,
		box:      inbox.New(),
		sess:     sess,
		sessions: manager,
		bc:       broadcast.NewSessionBroadcaster(manager),
		mon:      mon,
		records:  records,
		timers:   timers,
		machine:  machine,
		gameID:   uuid.New().String(),
		joinCh:   make(chan network.Connection, 8),
	}
}

// Snapshot implements rpc.StatusSource.
func (s *GameServer) Snapshot() rpc.StatusSnapshot {
	return rpc.StatusSnapshot{
		Phase:            s.machine.GetCurrentState().GetID(),
		Round:            s.sess.Round(),
		PlayersAlive:     s.sess.AliveCount(),
		PlayersConnected: s.sessions.Count(),
		GhostZone:        s.sess.GhostZone().String(),
		GhostProbability: s.sess.GhostProbability(),
	}
}

// Run plays one full game from lobby to teardown.
func (s *GameServer) Run(ctx context.Context) error {
	defer s.teardown()

	s.prompter.Clear()
	s.prompter.Show(term.Colored(term.Magenta, welcomeBanner))
	if err := s.pressEnter(ctx); err != nil {
		return err
	}

	if err := s.runLobby(ctx); err != nil {
		return err
	}

	s.machine.ChangeState(state.NewSetupPhase())
	if err := s.runSetup(ctx); err != nil {
		return err
	}

	s.machine.ChangeState(state.NewPlayingPhase())
	s.startedAt = time.Now()
	status, err := s.runGame(ctx)

	s.machine.ChangeState(state.NewEndedPhase())
	outcome := "ABORTED"
	switch status {
	case game.StatusWin:
		outcome = "WIN"
	case game.StatusGameOver:
		outcome = "GAME_OVER"
	}
	s.records.Save(s.records.BuildRecord(s.gameID, s.sess, s.names, outcome, s.startedAt))

	if err != nil && !errors.Is(err, engine.ErrGameExited) {
		return err
	}
	return nil
}

// runLobby accepts remote connections until the host ends the search or
// every seat is taken.
func (s *GameServer) runLobby(ctx context.Context) error {
	if err := s.startListeners(); err != nil {
		return err
	}

	s.prompter.Clear()
	s.prompter.Show("\nWaiting the first user to connect...")

	for s.sessions.Count() < s.cfg.MaxRemotePlayers {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case conn := <-s.joinCh:
			s.admit(conn)
		}

		s.prompter.Clear()
		s.prompter.Show("\n-------------------- USERS CONNECTED --------------------\n")
		for i, sess := range s.seats {
			s.prompter.Show(fmt.Sprintf("\n%d) Ip: %s ;", i+1, sess.Conn.RemoteAddr()))
		}

		if s.sessions.Count() >= s.cfg.MaxRemotePlayers {
			break
		}

		done, err := s.askYesNo(ctx, "\n\nDo you want to end the search? (Y/N): ")
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	s.stopListeners()
	return nil
}

func (s *GameServer) admit(conn network.Connection) {
	sess := session.NewSession(uuid.New().String(), conn)
	s.sessions.Add(sess)
	s.seats = append(s.seats, sess)
	s.box.StartReader(sess.ID, conn, func(string) {
		if s.mon != nil {
			s.mon.IncFramesReceived()
		}
	})
	if s.mon != nil {
		s.mon.IncPlayersConnected()
	}
	logger.Log.Infow("player connected", "session", sess.ID, "addr", conn.RemoteAddr().String())
}

// runSetup walks the host through difficulty, map editing and profiles,
// then collects every remote profile and broadcasts the settings.
func (s *GameServer) runSetup(ctx context.Context) error {
	s.sess.SetPlayerCount(len(s.seats) + 1)
	s.names = make([]string, len(s.seats)+1)

	if err := s.chooseDifficulty(ctx); err != nil {
		return err
	}
	if err := s.editMap(ctx); err != nil {
		return err
	}
	if err := s.hostProfile(ctx); err != nil {
		return err
	}
	if err := s.collectProfiles(ctx); err != nil {
		return err
	}

	s.sess.ResetForPlay()
	s.box.Reset()

	settings := s.sess.SettingsString()
	s.bc.BroadcastToRemotes(settings + term.Colored(term.Yellow, "\n\nWait the game master to start the game..."))
	s.prompter.Clear()
	s.prompter.Show(settings)
	return s.pressEnter(ctx)
}

func (s *GameServer) chooseDifficulty(ctx context.Context) error {
	for {
		s.prompter.Clear()
		s.prompter.Show(term.Colored(term.Magenta, "\n------------- DIFFICULTY LEVELS -------------\n"))

		answer, err := s.prompter.Ask(ctx, difficultyMenu)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(answer) {
		case "1":
			s.sess.SetDifficulty(game.Amateur)
		case "2":
			s.sess.SetDifficulty(game.Intermediate)
		case "3":
			s.sess.SetDifficulty(game.Nightmare)
		default:
			s.prompter.Show(term.Colored(term.Red, "\nError: please insert a valid input!"))
			if err := s.pressEnter(ctx); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

func (s *GameServer) editMap(ctx context.Context) error {
	for {
		s.prompter.Clear()
		s.prompter.Show(term.Colored(term.Magenta, "\n------------- MAP EDITOR -------------\n"))

		answer, err := s.prompter.Ask(ctx, mapEditorMenu)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(answer) {
		case "1":
			s.sess.AppendZone()
			s.prompter.Show("\nFirst Zone: " + s.sess.MapString())
		case "2":
			if !s.sess.RemoveLastZone() {
				s.prompter.Show(term.Colored(term.Yellow, "\nThe map is already empty!"))
			} else {
				s.prompter.Show("\nFirst Zone: " + s.sess.MapString())
			}
		case "3":
			s.prompter.Show("\nFirst Zone: " + s.sess.MapString())
		case "4":
			if s.sess.ZoneCount() == 0 {
				s.prompter.Show(term.Colored(term.Red, "Before closing the map, set at least one zone!\n"))
			} else {
				return nil
			}
		default:
			s.prompter.Show(term.Colored(term.Red, "\nError: please insert a valid input!"))
		}

		if err := s.pressEnter(ctx); err != nil {
			return err
		}
	}
}

func (s *GameServer) hostProfile(ctx context.Context) error {
	s.prompter.Clear()
	s.prompter.Show(term.Colored(term.Magenta, "\n------------- PLAYER INFO -------------\n"))

	var name string
	for {
		answer, err := s.prompter.Ask(ctx, "\nInsert the name of the player "+term.Colored(term.Yellow, "(MAX 225 characters)")+": ")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(answer)
		if name != "" {
			break
		}
		s.prompter.Show(term.Colored(term.Red, "\nError: please insert a valid input!\n"))
	}

	useAdvice, err := s.askYesNo(ctx, term.Colored(term.Yellow, "\nDo you want to receive advices during the game? (Y/N): "))
	if err != nil {
		return err
	}

	s.sess.RegisterPlayer(0, name, useAdvice)
	s.names[0] = name
	return nil
}

// collectProfiles asks every remote for their profile frame (name>Y|N).
func (s *GameServer) collectProfiles(ctx context.Context) error {
	for i, remote := range s.seats {
		seat := i + 1

		if err := remote.SendText(network.TokenSendPlayerInfo); err != nil {
			logger.Log.Warnw("profile request failed", "session", remote.ID, "error", err)
			s.dropSeat(seat, remote)
			continue
		}

		s.prompter.Clear()
		s.prompter.Show("\nWaiting to receive the player data...\n")

		entry, err := s.box.AwaitFrom(ctx, remote.ID)
		if err != nil {
			if errors.Is(err, inbox.ErrDisconnected) {
				logger.Log.Warnw("player disconnected during setup", "session", remote.ID)
				s.dropSeat(seat, remote)
				continue
			}
			return err
		}

		name, useAdvice := parseProfile(entry.Payload)
		if name == "" {
			name = fmt.Sprintf("Player %d", seat+1)
		}
		s.sess.RegisterPlayer(seat, name, useAdvice)
		remote.Bind(seat, name)
		s.names[seat] = name
		logger.Log.Infow("player registered", "seat", seat, "name", name, "advice", useAdvice)
	}
	return nil
}

func parseProfile(payload string) (string, bool) {
	idx := strings.Index(payload, network.ProfileSeparator)
	if idx < 0 {
		return strings.TrimSpace(payload), false
	}
	name := strings.TrimSpace(payload[:idx])
	useAdvice := strings.HasPrefix(payload[idx+1:], "Y")
	return name, useAdvice
}

func (s *GameServer) dropSeat(seat int, remote *session.Session) {
	s.sess.RegisterPlayer(seat, fmt.Sprintf("Player %d", seat+1), false)
	s.sess.EliminatePlayer(seat)
	s.names[seat] = fmt.Sprintf("Player %d", seat+1)
	s.sessions.Remove(remote.ID)
	remote.Close()
	if s.mon != nil {
		s.mon.DecPlayersConnected()
	}
}

func (s *GameServer) runGame(ctx context.Context) (game.Status, error) {
	ios := make([]engine.PlayerIO, s.sess.PlayerCount())
	ios[0] = s.prompter
	for i, remote := range s.seats {
		ios[i+1] = engine.NewRemoteIO(remote, s.box, s.mon, s.timers, s.cfg.TurnTimeout, s.cfg.AwaitWarn)
	}

	if s.mon != nil {
		s.mon.SetPlayersAlive(s.sess.AliveCount())
	}

	eng := engine.New(s.sess, ios, s.names, s.bc, s.mon)
	return eng.Run(ctx)
}

// --- listeners ---

func (s *GameServer) startListeners() error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddress, err)
	}
	s.tcpListener = listener
	logger.Log.Infof("Server listening on %s", s.cfg.ListenAddress)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			s.joinCh <- network.NewTCPConnection(conn)
		}
	}()

	if s.cfg.WSAddress != "" {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		}
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				logger.Log.Errorf("Failed to upgrade connection: %v", err)
				return
			}
			s.joinCh <- network.NewWSConnection(conn)
		})
		s.wsServer = &http.Server{Addr: s.cfg.WSAddress, Handler: mux}
		go func() {
			if err := s.wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Log.Errorf("WebSocket server error: %v", err)
			}
		}()
		logger.Log.Infof("WebSocket listener on %s", s.cfg.WSAddress)
	}

	return nil
}

func (s *GameServer) stopListeners() {
	if s.tcpListener != nil {
		s.tcpListener.Close()
		s.tcpListener = nil
	}
	if s.wsServer != nil {
		s.wsServer.Close()
		s.wsServer = nil
	}
}

func (s *GameServer) teardown() {
	s.stopListeners()
	s.sessions.CloseAll()
	logger.Log.Info("Closing the server!")
}

// --- host prompts ---

func (s *GameServer) pressEnter(ctx context.Context) error {
	_, err := s.prompter.Ask(ctx, term.Colored(term.Yellow, "\n\nPress ENTER to continue: "))
	return err
}

func (s *GameServer) askYesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		answer, err := s.prompter.Ask(ctx, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(strings.TrimSpace(answer)) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		s.prompter.Show(term.Colored(term.Red, "\nError: please insert a valid input!\n"))
	}
}
