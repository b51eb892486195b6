// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL driver
	_ "github.com/lib/pq"

	"github.com/Progxy/phalsophobia-multiplayer/models"
)

// PostgreSQL is the database/sql implementation of Store.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            game_id VARCHAR(255) UNIQUE NOT NULL,
            difficulty VARCHAR(50) NOT NULL,
            zones INT NOT NULL DEFAULT 0,
            rounds INT NOT NULL DEFAULT 0,
            outcome VARCHAR(50) NOT NULL,
            players JSONB NOT NULL,
            duration INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_game_id ON game_records(game_id);
        CREATE INDEX IF NOT EXISTS idx_game_records_outcome ON game_records(outcome);
        CREATE INDEX IF NOT EXISTS idx_game_records_created_at ON game_records(created_at);
    `)

	return err
}

func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	playersJSON, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
        INSERT INTO game_records (game_id, difficulty, zones, rounds, outcome, players, duration)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (game_id)
        DO UPDATE SET outcome = $5, players = $6, duration = $7
    `

	_, err = p.db.ExecContext(ctx, query,
		record.GameID,
		record.Difficulty,
		record.Zones,
		record.Rounds,
		record.Outcome,
		playersJSON,
		record.Duration)

	return err
}

func (p *PostgreSQL) LoadGameRecord(gameID string) (*models.GameRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := &models.GameRecord{}
	var playersJSON []byte
	query := `
        SELECT game_id, difficulty, zones, rounds, outcome, players, duration, created_at
        FROM game_records WHERE game_id = $1
    `
	err := p.db.QueryRowContext(ctx, query, gameID).Scan(
		&record.GameID,
		&record.Difficulty,
		&record.Zones,
		&record.Rounds,
		&record.Outcome,
		&playersJSON,
		&record.Duration,
		&record.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(playersJSON, &record.Players); err != nil {
		return nil, err
	}
	return record, nil
}

func (p *PostgreSQL) OutcomeStats() (map[string]int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := p.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM game_records GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, err
		}
		stats[outcome] = count
	}
	return stats, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
