package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre represents a game genre (e.g. "RPG", "Shooter", "Co-op").
type Genre struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;unique;not null" json:"name"`
}

// BeforeCreate assigns an ID when none was set by the caller.
func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GameGenre is the join row between games and genres. It has no lifecycle of
// its own; the composite primary key guarantees at most one row per pair.
type GameGenre struct {
	GameID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	GenreID uuid.UUID `gorm:"type:uuid;primaryKey"`
}
