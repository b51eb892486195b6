package game

import (
	"fmt"
	"strings"
)

// PlayerInfoString renders the player's status and backpack. Remote players
// also get the ghost position and probability in the same block, since they
// can't glance at the host screen.
func (s *Session) PlayerInfoString(index int, includeGhost bool) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player := s.players[index]
	var b strings.Builder
	b.WriteString("\n------------- PLAYER INFO -------------\n")
	if includeGhost {
		fmt.Fprintf(&b, "\nGhost position: %s", s.ghostZone)
		fmt.Fprintf(&b, "\nGhost appeareance probability: %d%%", s.ghostProb)
	}
	fmt.Fprintf(&b, "\nName: %s", player.Name)
	fmt.Fprintf(&b, "\nMental health: %d", player.MentalHealth)
	fmt.Fprintf(&b, "\nCurrent zone: %s", player.Position.Kind)
	b.WriteString("\nBackpack:")
	for i, held := range player.Backpack {
		fmt.Fprintf(&b, "\n  Slot %d: %s", i+1, held)
	}
	if player.SaltProtection {
		b.WriteString("\nProtected by the SALT against the next ghost appearence.")
	}
	b.WriteString("\n")
	return b.String()
}

// ZoneInfoString renders the contents of the player's current zone.
func (s *Session) ZoneInfoString(index int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	zone := s.players[index].Position
	var b strings.Builder
	b.WriteString("\n------------- ZONE INFO -------------\n")
	fmt.Fprintf(&b, "\nZone: %s", zone.Kind)
	fmt.Fprintf(&b, "\nEvidence: %s", zone.Evidence)
	fmt.Fprintf(&b, "\nObject: %s", zone.Object)
	b.WriteString("\n")
	return b.String()
}

// CaravanString renders the evidence registry.
func (s *Session) CaravanString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("\n------------- CARAVAN -------------\n")
	for i, collected := range s.caravan {
		fmt.Fprintf(&b, "\nEvidence %d: %s", i+1, collected)
	}
	b.WriteString("\n")
	return b.String()
}

// GhostInfoString renders the ghost position and appearance probability.
func (s *Session) GhostInfoString() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("\n------------- GHOST INFO -------------\n")
	if s.ghostZone == ZoneNone {
		b.WriteString("\nThe ghost has not appeared yet.")
	} else {
		fmt.Fprintf(&b, "\nThe ghost is in the %s.", s.ghostZone)
	}
	fmt.Fprintf(&b, "\nProbability of appearing: %d%%", s.ghostProb)
	b.WriteString("\n")
	return b.String()
}

// EffectsString lists what every usable item does.
func EffectsString() string {
	var b strings.Builder
	b.WriteString("\n------------- OBJECT EFFECTS -------------\n")
	for item := Sedative; item <= Tranquillizer; item++ {
		if effect, ok := EffectOf(item); ok {
			fmt.Fprintf(&b, "\n%s: %s", item, effect)
		}
	}
	b.WriteString("\n")
	return b.String()
}
