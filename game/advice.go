package game

import "fmt"

// AdviceFor picks the suggested action for the player, checked in strict
// priority order. It never mutates state.
func (s *Session) AdviceFor(index int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player := s.players[index]

	if player.HoldsEvidence() {
		return "ADVICE: Deposit the evidence in the caravan! (Type 1)"
	}

	if evidence := player.Position.Evidence; evidence != NoItem {
		if player.HoldsItem(toolForEvidence[evidence]) >= 0 {
			return "ADVICE: Pick the evidence from the current zone! (Type 3)"
		}
	}

	if player.HoldsUsable() {
		return "ADVICE: Use an object from the backpack! (Type 5)"
	}

	if player.Position.Object != NoItem {
		return "ADVICE: Pick the object from the current zone! (Type 4)"
	}

	if evidence := player.Position.Evidence; evidence != NoItem {
		tool := toolForEvidence[evidence]
		for i, other := range s.players {
			if other == nil || i == index || other.Position.Kind != player.Position.Kind {
				continue
			}
			if other.HoldsItem(tool) >= 0 {
				return fmt.Sprintf("ADVICE: Skip the turn, because %s has the object to pick the evidence from the current zone! (Type 6)", other.Name)
			}
		}
	}

	return "ADVICE: Go to the next zone! (Type 2)"
}
