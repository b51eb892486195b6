package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Status is the coarse outcome of a status check.
type Status int

const (
	StatusPlaying Status = iota
	StatusWin
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusWin:
		return "WIN"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "PLAYING"
	}
}

// Failures of game actions. The acting player may always retry with a
// different action; none of these mutate state.
var (
	ErrGhostBlocksCaravan  = errors.New("you can't go to the caravan, because there's a ghost at your position")
	ErrNoEvidenceHere      = errors.New("there's no object in this zone that can be picked")
	ErrMissingTool         = errors.New("you don't have the object to pick the evidence in this zone")
	ErrNoZoneObject        = errors.New("the current zone has no objects")
	ErrBackpackFull        = errors.New("the backpack's slots are full, you can't pick the object")
	ErrNotUsable           = errors.New("the selected object can't be used")
	ErrNeedsExchange       = errors.New("the HUNDRED_DOLLAR needs an exchange choice")
	ErrTradeAlone          = errors.New("you can't trade with yourself")
	ErrRecipientFull       = errors.New("the selected player hasn't empty slots")
	ErrNotColocated        = errors.New("the selected player is not in your zone")
	ErrEmptySlot           = errors.New("the selected slot is empty")
	ErrNothingToReorganize = errors.New("all the slots are empty, there's nothing to reorganize")
	ErrSameSlot            = errors.New("a slot can't be swapped with itself")
	ErrInvalidSlot         = errors.New("the selected slot does not exist")
	ErrNoSuchPlayer        = errors.New("the selected player does not exist")
)

const healthRestore = 40 // sedative / tranquillizer effect

// Session owns every piece of mutable game state for one process lifetime:
// the patrol ring, the roster, the caravan registry and the ghost. All
// transitions happen through its methods; randomness comes from the
// injected source so every draw is reproducible.
type Session struct {
	mu sync.RWMutex

	difficulty Difficulty
	zones      *Ring
	players    []*Player
	caravan    [3]Item
	ghostZone  ZoneKind
	ghostProb  int
	round      int
	rng        *rand.Rand
}

func NewSession(rng *rand.Rand) *Session {
	return &Session{
		zones:     NewRing(),
		ghostZone: ZoneNone,
		rng:       rng,
	}
}

// Roll returns a uniform value in [0, n) from the session's random source.
func (s *Session) Roll(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *Session) SetDifficulty(d Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.difficulty = d
}

func (s *Session) Difficulty() Difficulty {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.difficulty
}

func (s *Session) GhostZone() ZoneKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ghostZone
}

func (s *Session) GhostProbability() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ghostProb
}

func (s *Session) Round() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round
}

func (s *Session) NextRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
}

// ResetForPlay clears the round state right before the first round: ghost
// absent at its difficulty base probability, caravan registry empty.
func (s *Session) ResetForPlay() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round = 0
	s.ghostZone = ZoneNone
	s.ghostProb = s.difficulty.params().BaseGhostChance
	for i := range s.caravan {
		s.caravan[i] = NoItem
	}
}

// --- map editing (pre-game only) ---

// AppendZone adds one zone to the ring tail: a uniformly random non-caravan
// kind with a random startup object.
func (s *Session) AppendZone() *Zone {
	s.mu.Lock()
	defer s.mu.Unlock()

	zone := &Zone{
		Kind:     mapZoneKinds[s.rng.Intn(len(mapZoneKinds))],
		Evidence: NoItem,
		Object:   s.rollObject(),
	}
	s.zones.Append(zone)
	return zone
}

// RemoveLastZone drops the tail zone; false when the ring is already empty.
func (s *Session) RemoveLastZone() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zones.RemoveLast()
}

func (s *Session) ZoneCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zones.Len()
}

func (s *Session) MapString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zones.String()
}

// --- roster ---

// SetPlayerCount sizes the roster; index 0 is the host.
func (s *Session) SetPlayerCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make([]*Player, n)
}

// RegisterPlayer creates the player at the given index: full mental health,
// one random starter item in slot 0, positioned at the first zone. Returns
// the starter item.
func (s *Session) RegisterPlayer(index int, name string, useAdvice bool) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	starter := starterItems[s.rng.Intn(len(starterItems))]
	player := &Player{
		Name:         name,
		MentalHealth: StartingMentalHealth,
		Position:     s.zones.First(),
		UseAdvice:    useAdvice,
	}
	player.Backpack[0] = starter
	s.players[index] = player
	return starter
}

// Player returns the player at index, or nil when eliminated or out of
// range.
func (s *Session) Player(index int) *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.players) {
		return nil
	}
	return s.players[index]
}

func (s *Session) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *Session) Alive(index int) bool {
	return s.Player(index) != nil
}

// EliminatePlayer removes a player from the game, releasing the seat.
func (s *Session) EliminatePlayer(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= 0 && index < len(s.players) {
		s.players[index] = nil
	}
}

func (s *Session) AliveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alive := 0
	for _, p := range s.players {
		if p != nil {
			alive++
		}
	}
	return alive
}

// --- turn actions ---

// ReturnToCaravan deposits every held evidence into the registry (idempotent
// per kind) and repositions the player at the first zone. Refused while the
// ghost occupies the player's zone.
func (s *Session) ReturnToCaravan(index int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	if s.ghostZone != ZoneNone && s.ghostZone == player.Position.Kind {
		return nil, ErrGhostBlocksCaravan
	}

	var msgs []string
	deposited := false
	for i, held := range player.Backpack {
		if !held.IsEvidence() {
			continue
		}
		deposited = true
		// Duplicates of an already-collected kind are simply discarded.
		s.caravan[caravanSlot[held]] = held
		player.Backpack[i] = NoItem
		msgs = append(msgs, fmt.Sprintf("Evidence (%s) has been left in the caravan!", held))
	}

	if !deposited {
		msgs = append(msgs, "You don't have evidences!")
	}

	player.Position = s.zones.First()
	msgs = append(msgs, "You have been repositioned in the first zone!")
	return msgs, nil
}

// MoveToNextZone advances the player one zone, regenerating zone contents
// along the way. The draw order is fixed: current-zone object (only when
// absent), new-zone evidence, new-zone object (only when absent).
func (s *Session) MoveToNextZone(index int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveToNextZoneLocked(index)
}

func (s *Session) moveToNextZoneLocked(index int) []string {
	player := s.players[index]
	var msgs []string

	if player.Position.Object == NoItem {
		player.Position.Object = s.rollObject()
		msgs = append(msgs, fmt.Sprintf("The object in the %s has been added!", player.Position.Kind))
	}

	player.Position = player.Position.Next()
	msgs = append(msgs, fmt.Sprintf("You have been repositioned in the %s!", player.Position.Kind))

	player.Position.Evidence = s.rollEvidence()
	msgs = append(msgs, fmt.Sprintf("The evidence in the %s has been changed!", player.Position.Kind))

	if player.Position.Object == NoItem {
		player.Position.Object = s.rollObject()
		msgs = append(msgs, fmt.Sprintf("The object in the %s has been added!", player.Position.Kind))
	}

	return msgs
}

// PickEvidence converts the matching tool in the backpack into the zone's
// evidence, then rolls for a ghost appearance and raises the appearance
// probability by the difficulty step.
func (s *Session) PickEvidence(index int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	evidence := player.Position.Evidence
	if evidence == NoItem {
		return nil, ErrNoEvidenceHere
	}

	tool := toolForEvidence[evidence]
	slot := player.HoldsItem(tool)
	if slot < 0 {
		return nil, ErrMissingTool
	}

	player.Backpack[slot] = evidence
	msgs := []string{fmt.Sprintf("Evidence %s has been picked!", evidence)}

	if s.rng.Intn(100) < s.ghostProb {
		s.ghostZone = player.Position.Kind
		msgs = append(msgs, fmt.Sprintf("The ghost spawn in the %s zone!", s.ghostZone))

		for _, other := range s.players {
			if other == nil || other.Position.Kind != s.ghostZone {
				continue
			}
			if other.SaltProtection {
				other.SaltProtection = false
				msgs = append(msgs, fmt.Sprintf("The salt has protected %s from the ghost!", other.Name))
				continue
			}
			other.MentalHealth -= s.difficulty.params().GhostDamage
			msgs = append(msgs, fmt.Sprintf(
				"The ghost is in the same room as %s, so %s's mental health decrease to %d!",
				other.Name, other.Name, other.MentalHealth))
		}
	}

	// No upper clamp: past 100 the ghost is simply guaranteed.
	s.ghostProb += s.difficulty.params().GhostChanceStep
	msgs = append(msgs, fmt.Sprintf("The probabilities that the ghost appears have been increased to %d%%", s.ghostProb))

	return msgs, nil
}

// PickObject moves the zone's object into the first empty backpack slot.
func (s *Session) PickObject(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	if player.Position.Object == NoItem {
		return "", ErrNoZoneObject
	}

	slot := player.EmptySlot()
	if slot < 0 {
		return "", ErrBackpackFull
	}

	player.Backpack[slot] = player.Position.Object
	player.Position.Object = NoItem
	return fmt.Sprintf("You have picked the %s!", player.Backpack[slot]), nil
}

// UseItem activates the item in the given slot. The HUNDRED_DOLLAR is the
// only item needing a follow-up choice; see ExchangeHundredDollar.
func (s *Session) UseItem(index, slot int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	if slot < 0 || slot >= BackpackSize {
		return nil, ErrInvalidSlot
	}

	item := player.Backpack[slot]
	if !item.IsUsable() {
		return nil, ErrNotUsable
	}

	switch item {
	case Sedative, Tranquillizer:
		player.MentalHealth += healthRestore
		player.Backpack[slot] = NoItem
		return []string{fmt.Sprintf("You used the %s, and your mental health has increased to %d!", item, player.MentalHealth)}, nil

	case Salt:
		player.SaltProtection = true
		player.Backpack[slot] = NoItem
		return []string{"You used the SALT, the next appearence of the ghost won't affect your mental health!"}, nil

	case Adrenaline:
		player.Backpack[slot] = NoItem
		msgs := []string{"You used the ADRENALINE, and went to the next zone, obtaining an extra turn!"}
		return append(msgs, s.moveToNextZoneLocked(index)...), nil

	case HundredDollar:
		return nil, ErrNeedsExchange

	case Knife:
		player.Backpack[slot] = NoItem
		zone := player.Position.Kind
		var msgs []string
		if player.MentalHealth < 30 {
			for i, other := range s.players {
				if other == nil || i == index || other.Position.Kind != zone {
					continue
				}
				msgs = append(msgs, fmt.Sprintf("You used the KNIFE, and killed %s!", other.Name))
				s.players[i] = nil
			}
		}
		if len(msgs) == 0 {
			msgs = append(msgs, "You used the KNIFE, but you didn't hurt anybody!")
		}
		return msgs, nil
	}

	return nil, ErrNotUsable
}

// ExchangeHundredDollar swaps a held HUNDRED_DOLLAR for a TRANQUILLIZER or
// SALT.
func (s *Session) ExchangeHundredDollar(index, slot int, purchase Item) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	if slot < 0 || slot >= BackpackSize || player.Backpack[slot] != HundredDollar {
		return "", ErrInvalidSlot
	}
	if purchase != Tranquillizer && purchase != Salt {
		return "", ErrNotUsable
	}

	player.Backpack[slot] = purchase
	return fmt.Sprintf("You bought the %s!", purchase), nil
}

// GiveItem moves one item to a co-located recipient with a free slot.
func (s *Session) GiveItem(from, to, slot int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.players) < 2 {
		return "", ErrTradeAlone
	}
	giver := s.players[from]
	if slot < 0 || slot >= BackpackSize {
		return "", ErrInvalidSlot
	}
	if giver.Backpack[slot] == NoItem {
		return "", ErrEmptySlot
	}
	if to < 0 || to >= len(s.players) || to == from || s.players[to] == nil {
		return "", ErrNoSuchPlayer
	}
	recipient := s.players[to]
	if recipient.Position.Kind != giver.Position.Kind {
		return "", ErrNotColocated
	}

	free := recipient.EmptySlot()
	if free < 0 {
		return "", ErrRecipientFull
	}

	item := giver.Backpack[slot]
	recipient.Backpack[free] = item
	giver.Backpack[slot] = NoItem
	return fmt.Sprintf("You gave the %s to %s", item, recipient.Name), nil
}

// RemoveItem empties a non-empty backpack slot.
func (s *Session) RemoveItem(index, slot int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	if slot < 0 || slot >= BackpackSize {
		return "", ErrInvalidSlot
	}
	if player.Backpack[slot] == NoItem {
		return "", ErrEmptySlot
	}

	removed := player.Backpack[slot]
	player.Backpack[slot] = NoItem
	return fmt.Sprintf("You have removed the %s from the backpack!", removed), nil
}

// Reorganize swaps two distinct backpack slots.
func (s *Session) Reorganize(index, slotA, slotB int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.players[index]
	empty := true
	for _, held := range player.Backpack {
		if held != NoItem {
			empty = false
			break
		}
	}
	if empty {
		return "", ErrNothingToReorganize
	}
	if slotA < 0 || slotA >= BackpackSize || slotB < 0 || slotB >= BackpackSize {
		return "", ErrInvalidSlot
	}
	if slotA == slotB {
		return "", ErrSameSlot
	}

	a, b := player.Backpack[slotA], player.Backpack[slotB]
	player.Backpack[slotA], player.Backpack[slotB] = b, a
	return fmt.Sprintf("Swapped the %s with the %s!", a, b), nil
}

// CheckStatus evaluates win before eliminations: WIN when all three
// evidence kinds are collected, GAME_OVER when every player is out.
// Returns the indices eliminated by this call.
func (s *Session) CheckStatus() (Status, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.caravan[0] != NoItem && s.caravan[1] != NoItem && s.caravan[2] != NoItem {
		return StatusWin, nil
	}

	var eliminated []int
	remaining := 0
	for i, player := range s.players {
		if player == nil {
			continue
		}
		if player.MentalHealth <= 0 {
			s.players[i] = nil
			eliminated = append(eliminated, i)
			continue
		}
		remaining++
	}

	if remaining == 0 {
		return StatusGameOver, eliminated
	}
	return StatusPlaying, eliminated
}

// ApplyTurnFatigue rolls the 20% end-of-turn mental-health penalty. Returns
// the new health and true when it hit.
func (s *Session) ApplyTurnFatigue(index int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Intn(100) >= 20 {
		return s.players[index].MentalHealth, false
	}
	s.players[index].MentalHealth -= 15
	return s.players[index].MentalHealth, true
}

// EvidenceCollected reports whether the given evidence kind has been
// deposited.
func (s *Session) EvidenceCollected(kind Item) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := caravanSlot[kind]
	if !ok {
		return false
	}
	return s.caravan[slot] != NoItem
}

// SettingsString renders the current game settings and the zone chain.
func (s *Session) SettingsString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("\n------------- GAME SETTINGS -------------\n")
	fmt.Fprintf(&b, "\nNumber of players: %d - (", len(s.players))
	first := true
	for _, player := range s.players {
		if player == nil {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		b.WriteString(player.Name)
		first = false
	}
	b.WriteString(")")
	fmt.Fprintf(&b, "\nGame difficulty: %s\n", s.difficulty)
	b.WriteString("\n------------- CURRENT MAP -------------\n")
	b.WriteString("\nFirst Zone: ")
	b.WriteString(s.zones.String())
	return b.String()
}

// --- random draws (lock held) ---

func (s *Session) rollObject() Item {
	roll := s.rng.Intn(len(zoneObjects) + 1)
	if roll == len(zoneObjects) {
		return NoItem
	}
	return zoneObjects[roll]
}

func (s *Session) rollEvidence() Item {
	roll := s.rng.Intn(len(evidencePool) + 2)
	if roll >= len(evidencePool) {
		return NoItem
	}
	return evidencePool[roll]
}
