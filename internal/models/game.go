package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game represents a catalog entry owned by a single user.
type Game struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Publisher   string    `gorm:"size:255" json:"publisher"`
	Platform    string    `gorm:"size:255" json:"platform"`
	Image       string    `gorm:"size:512" json:"image"`
	ReleaseDate time.Time `json:"release_date"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User   User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Genres []*Genre `gorm:"many2many:game_genres;" json:"genres,omitempty"`
}

// BeforeCreate assigns an ID when none was set by the caller.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
