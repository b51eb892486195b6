package game

// Difficulty selects the ghost parameters for a whole session.
type Difficulty int

const (
	Amateur Difficulty = iota
	Intermediate
	Nightmare
)

var difficultyNames = [...]string{"AMATEUR", "INTERMEDIATE", "NIGHTMARE"}

func (d Difficulty) String() string {
	if d < Amateur || d > Nightmare {
		return "UNKNOWN"
	}
	return difficultyNames[d]
}

// Valid reports whether d names one of the three levels.
func (d Difficulty) Valid() bool {
	return d >= Amateur && d <= Nightmare
}

type difficultyParams struct {
	// BaseGhostChance is the starting appearance probability in percent.
	BaseGhostChance int
	// GhostChanceStep is added after every successful evidence pickup.
	GhostChanceStep int
	// GhostDamage is the mental-health hit on each ghost encounter.
	GhostDamage int
}

var difficultyTable = [...]difficultyParams{
	Amateur:      {BaseGhostChance: 15, GhostChanceStep: 2, GhostDamage: 15},
	Intermediate: {BaseGhostChance: 30, GhostChanceStep: 5, GhostDamage: 20},
	Nightmare:    {BaseGhostChance: 50, GhostChanceStep: 10, GhostDamage: 30},
}

func (d Difficulty) params() difficultyParams {
	return difficultyTable[d]
}
