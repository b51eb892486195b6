// models/models.go
package models

import (
	"time"
)

// GameRecord is the persisted outcome of one finished game.
type GameRecord struct {
	GameID     string         `json:"game_id"`
	Difficulty string         `json:"difficulty"`
	Zones      int            `json:"zones"`
	Rounds     int            `json:"rounds"`
	Outcome    string         `json:"outcome"` // WIN / GAME_OVER / ABORTED
	Players    []PlayerResult `json:"players"`
	Duration   int            `json:"duration"` // seconds
	CreatedAt  time.Time      `json:"created_at"`
}

// PlayerResult is one player's line in a game record.
type PlayerResult struct {
	Name         string `json:"name"`
	Remote       bool   `json:"remote"`
	Survived     bool   `json:"survived"`
	MentalHealth int    `json:"mental_health"`
}
