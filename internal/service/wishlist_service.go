package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

var (
	// ErrAlreadyInWishlist is returned when the (user, game) pair already
	// exists. Treated as a conflict, never silently ignored.
	ErrAlreadyInWishlist = errors.New("game is already in wishlist")
	// ErrNotInWishlist is returned when a removal matched no entry.
	ErrNotInWishlist = errors.New("game not found in wishlist")
)

// WishlistService handles per-user saved games.
type WishlistService interface {
	Add(ctx context.Context, userID, gameID uuid.UUID) (*models.Wishlist, error)
	Remove(ctx context.Context, userID, gameID uuid.UUID) error
	Contains(ctx context.Context, userID, gameID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	GameIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type wishlistService struct {
	wishlists repository.WishlistRepository
	games     repository.GameRepository
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(wishlists repository.WishlistRepository, games repository.GameRepository) WishlistService {
	return &wishlistService{wishlists: wishlists, games: games}
}

// Add saves a game to the user's wishlist. The unique index decides duplicate
// races; concurrent adds of the same pair end with exactly one row.
func (s *wishlistService) Add(ctx context.Context, userID, gameID uuid.UUID) (*models.Wishlist, error) {
	exists, err := s.games.Exists(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGameNotFound
	}

	entry := &models.Wishlist{
		UserID:  userID,
		GameID:  gameID,
		AddedAt: time.Now(),
	}
	if err := s.wishlists.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInWishlist
		}
		return nil, err
	}
	return entry, nil
}

// Remove deletes the entry and reports when nothing was removed.
func (s *wishlistService) Remove(ctx context.Context, userID, gameID uuid.UUID) error {
	removed, err := s.wishlists.Delete(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInWishlist
	}
	return nil
}

// Contains reports whether the game is in the user's wishlist.
func (s *wishlistService) Contains(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	return s.wishlists.Exists(ctx, userID, gameID)
}

// List returns the user's wishlist with games populated, newest first.
func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	return s.wishlists.ListByUser(ctx, userID)
}

// GameIDs returns just the wishlisted game ids, used to flag catalog reads.
func (s *wishlistService) GameIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.wishlists.GameIDsByUser(ctx, userID)
}
