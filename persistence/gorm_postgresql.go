// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Progxy/phalsophobia-multiplayer/models"
)

// GormPostgreSQL is the GORM implementation of Store.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	players, err := playersToMap(record.Players)
	if err != nil {
		return err
	}

	var existing models.GormGameRecord
	result := p.db.Where("game_id = ?", record.GameID).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		row := models.GormGameRecord{
			GameID:     record.GameID,
			Difficulty: record.Difficulty,
			Zones:      record.Zones,
			Rounds:     record.Rounds,
			Outcome:    record.Outcome,
			Players:    players,
			Duration:   record.Duration,
		}
		return p.db.Create(&row).Error
	} else if result.Error != nil {
		return result.Error
	}

	existing.Outcome = record.Outcome
	existing.Rounds = record.Rounds
	existing.Players = players
	existing.Duration = record.Duration
	return p.db.Save(&existing).Error
}

func (p *GormPostgreSQL) LoadGameRecord(gameID string) (*models.GameRecord, error) {
	var row models.GormGameRecord
	if err := p.db.Where("game_id = ?", gameID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	players, err := playersFromMap(row.Players)
	if err != nil {
		return nil, err
	}

	return &models.GameRecord{
		GameID:     row.GameID,
		Difficulty: row.Difficulty,
		Zones:      row.Zones,
		Rounds:     row.Rounds,
		Outcome:    row.Outcome,
		Players:    players,
		Duration:   row.Duration,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (p *GormPostgreSQL) OutcomeStats() (map[string]int, error) {
	type outcomeRow struct {
		Outcome string
		Count   int
	}

	var rows []outcomeRow
	err := p.db.Model(&models.GormGameRecord{}).
		Select("outcome, COUNT(*) as count").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int)
	for _, row := range rows {
		stats[row.Outcome] = row.Count
	}
	return stats, nil
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction exposes GORM transactions for callers that know they hold
// the GORM-backed store.
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}

func playersToMap(players []models.PlayerResult) (map[string]interface{}, error) {
	data, err := json.Marshal(players)
	if err != nil {
		return nil, err
	}
	var list []interface{}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return map[string]interface{}{"list": list}, nil
}

func playersFromMap(m map[string]interface{}) ([]models.PlayerResult, error) {
	data, err := json.Marshal(m["list"])
	if err != nil {
		return nil, err
	}
	var players []models.PlayerResult
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, err
	}
	return players, nil
}
