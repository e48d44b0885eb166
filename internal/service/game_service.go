package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamevault/backend/internal/cache"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

// gameCacheTTL bounds staleness of per-game cache entries; mutations
// invalidate eagerly as well.
const gameCacheTTL = 5 * time.Minute

// ErrGameNotFound is returned when a game does not exist or does not belong
// to the caller. Ownership failures are deliberately indistinguishable from
// nonexistence.
var ErrGameNotFound = errors.New("game not found")

// GameInput carries game fields for create and update. Name is always
// required; nil optional fields keep the existing value on update.
type GameInput struct {
	Name        string
	Publisher   *string
	Platform    *string
	Image       *string
	ReleaseDate *time.Time
	Genres      []string
}

// GameService handles catalog operations.
type GameService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input GameInput) (*models.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input GameInput) (*models.Game, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, nameQuery string, page, limit int) ([]models.Game, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Game, error)
}

type gameService struct {
	games repository.GameRepository
	cache *cache.Client
}

// NewGameService creates a new catalog service. The cache may be nil.
func NewGameService(games repository.GameRepository, cache *cache.Client) GameService {
	return &gameService{games: games, cache: cache}
}

func gameCacheKey(id uuid.UUID) string {
	return "game:" + id.String()
}

// Create inserts a game owned by the caller, attaching genres by name, and
// returns the stored game with genres and owner populated.
func (s *gameService) Create(ctx context.Context, ownerID uuid.UUID, input GameInput) (*models.Game, error) {
	game := &models.Game{
		Name:        input.Name,
		UserID:      ownerID,
		ReleaseDate: time.Now(),
	}
	if input.Publisher != nil {
		game.Publisher = *input.Publisher
	}
	if input.Platform != nil {
		game.Platform = *input.Platform
	}
	if input.Image != nil {
		game.Image = *input.Image
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = *input.ReleaseDate
	}

	if err := s.games.CreateWithGenres(ctx, game, input.Genres); err != nil {
		return nil, err
	}

	return s.games.FindByID(ctx, game.ID)
}

// GetByID returns a game with genres and owner populated, serving from the
// cache when possible.
func (s *gameService) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	if data := s.cache.Get(ctx, gameCacheKey(id)); data != nil {
		var cached models.Game
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	game, err := s.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if data, err := json.Marshal(game); err == nil {
		s.cache.Set(ctx, gameCacheKey(id), data, gameCacheTTL)
	}
	return game, nil
}

// Update mutates a game scoped by (id AND owner). Genres are fixed at
// creation and not touched here.
func (s *gameService) Update(ctx context.Context, ownerID, id uuid.UUID, input GameInput) (*models.Game, error) {
	game, err := s.games.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	game.Name = input.Name
	if input.Publisher != nil {
		game.Publisher = *input.Publisher
	}
	if input.Platform != nil {
		game.Platform = *input.Platform
	}
	if input.Image != nil {
		game.Image = *input.Image
	}
	if input.ReleaseDate != nil {
		game.ReleaseDate = *input.ReleaseDate
	}

	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, gameCacheKey(id))

	return s.games.FindByID(ctx, id)
}

// Delete removes a game scoped by (id AND owner).
func (s *gameService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.games.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGameNotFound
	}
	s.cache.Delete(ctx, gameCacheKey(id))
	return nil
}

// List returns a page of the catalog with an optional name filter.
func (s *gameService) List(ctx context.Context, nameQuery string, page, limit int) ([]models.Game, int64, error) {
	offset := (page - 1) * limit
	return s.games.List(ctx, nameQuery, offset, limit)
}

// ListByOwner returns all games created by the given user.
func (s *gameService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Game, error) {
	return s.games.ListByOwner(ctx, ownerID)
}
