// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormGameRecord mirrors GameRecord for the GORM-backed store.
type GormGameRecord struct {
	gorm.Model
	GameID     string                 `gorm:"uniqueIndex;not null"`
	Difficulty string                 `gorm:"not null"`
	Zones      int                    `gorm:"default:0"`
	Rounds     int                    `gorm:"default:0"`
	Outcome    string                 `gorm:"not null"`
	Players    map[string]interface{} `gorm:"type:jsonb"`
	Duration   int                    `gorm:"default:0"` // seconds
}
