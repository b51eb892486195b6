// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/Progxy/phalsophobia-multiplayer/models"
)

// Store persists finished game records. Both PostgreSQL implementations
// satisfy it; the server runs fine with none configured.
type Store interface {
	SaveGameRecord(record *models.GameRecord) error
	LoadGameRecord(gameID string) (*models.GameRecord, error)
	OutcomeStats() (map[string]int, error)
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
