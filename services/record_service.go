// services/record_service.go
package services

import (
	"time"

	"github.com/Progxy/phalsophobia-multiplayer/game"
	"github.com/Progxy/phalsophobia-multiplayer/logger"
	"github.com/Progxy/phalsophobia-multiplayer/models"
	"github.com/Progxy/phalsophobia-multiplayer/persistence"
)

// RecordService writes finished games to the store. A nil store turns every
// call into a no-op so the server runs without a database.
type RecordService struct {
	store persistence.Store
}

func NewRecordService(store persistence.Store) *RecordService {
	return &RecordService{store: store}
}

// BuildRecord snapshots the session into a persistable record. Seats
// occupied at the start are reported eliminated when no longer alive.
func (s *RecordService) BuildRecord(gameID string, sess *game.Session, names []string, outcome string, startedAt time.Time) *models.GameRecord {
	record := &models.GameRecord{
		GameID:     gameID,
		Difficulty: sess.Difficulty().String(),
		Zones:      sess.ZoneCount(),
		Rounds:     sess.Round(),
		Outcome:    outcome,
		Duration:   int(time.Since(startedAt).Seconds()),
		CreatedAt:  time.Now(),
	}

	for i, name := range names {
		result := models.PlayerResult{
			Name:   name,
			Remote: i > 0,
		}
		if player := sess.Player(i); player != nil {
			result.Survived = true
			result.MentalHealth = player.MentalHealth
		}
		record.Players = append(record.Players, result)
	}

	return record
}

// Save persists the record, logging instead of failing the game on error.
func (s *RecordService) Save(record *models.GameRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveGameRecord(record); err != nil {
		logger.Log.Errorw("failed to save game record", "game", record.GameID, "error", err)
		return
	}
	logger.Log.Infow("game record saved", "game", record.GameID, "outcome", record.Outcome)
}

// OutcomeStats returns per-outcome game counts.
func (s *RecordService) OutcomeStats() (map[string]int, error) {
	if s.store == nil {
		return map[string]int{}, nil
	}
	return s.store.OutcomeStats()
}
