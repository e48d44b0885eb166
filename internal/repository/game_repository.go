package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gamevault/backend/internal/models"
)

// GameRepository defines persistence operations for the game catalog.
type GameRepository interface {
	// CreateWithGenres inserts the game and attaches join rows for each named
	// genre, creating genres that do not exist yet. Runs in one transaction.
	CreateWithGenres(ctx context.Context, game *models.Game, genreNames []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	// FindOwned returns the game only when it belongs to ownerID. A foreign
	// game is indistinguishable from a missing one.
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	// DeleteOwned removes the game scoped by owner and reports whether a row
	// was actually deleted.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	List(ctx context.Context, nameQuery string, offset, limit int) ([]models.Game, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Game, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository builds a GORM-backed game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) CreateWithGenres(ctx context.Context, game *models.Game, genreNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(game).Error; err != nil {
			return err
		}

		for _, name := range genreNames {
			// Find-or-create is racy under concurrent inserts of the same
			// genre name; the unique index on genres.name backstops it.
			var genre models.Genre
			if err := tx.Where(models.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.GameGenre{GameID: game.ID, GenreID: genre.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("User").
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Genres").
		First(&game, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *gameRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Game{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gameRepository) List(ctx context.Context, nameQuery string, offset, limit int) ([]models.Game, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Game{})
	if nameQuery != "" {
		query = query.Where("name ILIKE ?", "%"+nameQuery+"%")
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var games []models.Game
	err := query.
		Preload("Genres").
		Preload("User").
		Offset(offset).Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}
	return games, totalItems, nil
}

func (r *gameRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Game, error) {
	var games []models.Game
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Where("user_id = ?", ownerID).
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
