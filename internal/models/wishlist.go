package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist represents a game a user has saved for later.
// The unique index on (user_id, game_id) rejects duplicate saves even under
// concurrent inserts.
type Wishlist struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_game" json:"user_id"`
	GameID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_game" json:"game_id"`
	AddedAt time.Time `gorm:"not null" json:"added_at"`

	// Deleting a user removes their wishlist entries. The game side keeps the
	// default NO ACTION, so deleting a game that is still wishlisted fails at
	// the constraint. See DESIGN.md.
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"foreignKey:GameID" json:"game,omitempty"`
}

// BeforeCreate assigns an ID when none was set by the caller.
func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
