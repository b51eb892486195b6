package state

import (
	"errors"
	"sync"

	"github.com/Progxy/phalsophobia-multiplayer/logger"
)

// StateMachine drives the server through its lifecycle phases.
type StateMachine interface {
	ChangeState(state State) error
	GetCurrentState() State
	AddTransition(from State, to State, condition func() bool) error
}

type State interface {
	OnEnter()
	OnExit()
	GetID() string
}

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

type BaseStateMachine struct {
	currentState State
	transitions  map[string]map[string]func() bool // fromState -> toState -> condition
	mutex        sync.RWMutex
}

func NewBaseStateMachine(initialState State) *BaseStateMachine {
	machine := &BaseStateMachine{
		currentState: initialState,
		transitions:  make(map[string]map[string]func() bool),
	}
	initialState.OnEnter()
	return machine
}

func (sm *BaseStateMachine) ChangeState(newState State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	currentID := sm.currentState.GetID()
	newID := newState.GetID()

	// A state with registered transitions only allows the registered
	// targets; a state with none stays unrestricted.
	if conditions, exists := sm.transitions[currentID]; exists {
		condition, allowed := conditions[newID]
		if !allowed {
			return ErrTransitionNotAllowed
		}
		if condition != nil && !condition() {
			return ErrTransitionNotAllowed
		}
	}

	sm.currentState.OnExit()
	sm.currentState = newState
	sm.currentState.OnEnter()

	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.currentState
}

func (sm *BaseStateMachine) AddTransition(from State, to State, condition func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	toID := to.GetID()

	if _, exists := sm.transitions[fromID]; !exists {
		sm.transitions[fromID] = make(map[string]func() bool)
	}

	sm.transitions[fromID][toID] = condition
	return nil
}

// GamePhase is a lifecycle phase of the server: lobby, setup, playing or
// ended.
type GamePhase struct {
	ID string
}

func (p *GamePhase) GetID() string {
	return p.ID
}

func (p *GamePhase) OnEnter() {
	logger.Log.Infow("entering phase", "phase", p.ID)
}

func (p *GamePhase) OnExit() {
	logger.Log.Infow("leaving phase", "phase", p.ID)
}

func NewLobbyPhase() *GamePhase   { return &GamePhase{ID: "lobby"} }
func NewSetupPhase() *GamePhase   { return &GamePhase{ID: "setup"} }
func NewPlayingPhase() *GamePhase { return &GamePhase{ID: "playing"} }
func NewEndedPhase() *GamePhase   { return &GamePhase{ID: "ended"} }
