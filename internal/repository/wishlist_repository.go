package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamevault/backend/internal/models"
)

// WishlistRepository defines persistence operations for wishlist entries.
type WishlistRepository interface {
	// Create inserts the entry. A duplicate (user, game) pair surfaces as
	// gorm.ErrDuplicatedKey from the unique index; callers are expected to
	// insert and translate rather than check first.
	Create(ctx context.Context, entry *models.Wishlist) error
	// Delete removes the entry for the pair and reports whether a row was
	// actually deleted.
	Delete(ctx context.Context, userID, gameID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, gameID uuid.UUID) (bool, error)
	// ListByUser returns the user's entries with games and genres populated,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	GameIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository builds a GORM-backed wishlist repository.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, entry *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *wishlistRepository) Delete(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.Wishlist{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Wishlist{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Game").
		Preload("Game.Genres").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wishlistRepository) GameIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.Wishlist{}).
		Where("user_id = ?", userID).
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
