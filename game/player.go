package game

// BackpackSize is the fixed number of inventory slots per player.
const BackpackSize = 4

// StartingMentalHealth is every player's initial mental health.
const StartingMentalHealth = 100

// Player is one participant. Index 0 is always the game-master host;
// higher indices are remote players.
type Player struct {
	Name string

	// MentalHealth may go negative; elimination triggers at <= 0.
	MentalHealth int

	Position *Zone
	Backpack [BackpackSize]Item

	UseAdvice      bool
	SaltProtection bool
}

// EmptySlot returns the index of the first empty backpack slot, or -1.
func (p *Player) EmptySlot() int {
	for i, item := range p.Backpack {
		if item == NoItem {
			return i
		}
	}
	return -1
}

// HoldsItem returns the slot index holding the given item, or -1.
func (p *Player) HoldsItem(item Item) int {
	for i, held := range p.Backpack {
		if held == item {
			return i
		}
	}
	return -1
}

// HoldsEvidence reports whether any slot holds collected evidence.
func (p *Player) HoldsEvidence() bool {
	for _, held := range p.Backpack {
		if held.IsEvidence() {
			return true
		}
	}
	return false
}

// HoldsUsable reports whether any slot holds an activatable item.
func (p *Player) HoldsUsable() bool {
	for _, held := range p.Backpack {
		if held.IsUsable() {
			return true
		}
	}
	return false
}
