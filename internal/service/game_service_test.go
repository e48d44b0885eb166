package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gamevault/backend/internal/models"
)

func TestGameService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	games := new(MockGameRepository)
	games.On("CreateWithGenres", ctx, mock.AnythingOfType("*models.Game"), []string{"RPG", "Indie"}).
		Run(func(args mock.Arguments) {
			game := args.Get(1).(*models.Game)
			game.ID = uuid.New()
		}).Return(nil)
	games.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&models.Game{Name: "Hollow Knight", UserID: ownerID}, nil)

	svc := NewGameService(games, nil)
	publisher := "Team Cherry"
	game, err := svc.Create(ctx, ownerID, GameInput{
		Name:      "Hollow Knight",
		Publisher: &publisher,
		Genres:    []string{"RPG", "Indie"},
	})

	assert.NoError(t, err)
	assert.Equal(t, ownerID, game.UserID)

	created := games.Calls[0].Arguments.Get(1).(*models.Game)
	assert.Equal(t, "Team Cherry", created.Publisher)
	assert.Equal(t, ownerID, created.UserID)
	assert.False(t, created.ReleaseDate.IsZero(), "release date defaults to now")
	games.AssertExpectations(t)
}

func TestGameService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	gameID := uuid.New()

	t.Run("another user's game reads as not found, never a mutation", func(t *testing.T) {
		games := new(MockGameRepository)
		games.On("FindOwned", ctx, gameID, ownerID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewGameService(games, nil)
		_, err := svc.Update(ctx, ownerID, gameID, GameInput{Name: "New Name"})

		assert.ErrorIs(t, err, ErrGameNotFound)
		games.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("nil optional fields keep existing values", func(t *testing.T) {
		existing := &models.Game{
			ID:          gameID,
			Name:        "Old Name",
			Publisher:   "Old Publisher",
			Platform:    "PC",
			UserID:      ownerID,
			ReleaseDate: time.Date(2017, 2, 24, 0, 0, 0, 0, time.UTC),
		}
		games := new(MockGameRepository)
		games.On("FindOwned", ctx, gameID, ownerID).Return(existing, nil)
		games.On("Update", ctx, existing).Return(nil)
		games.On("FindByID", ctx, gameID).Return(existing, nil)

		svc := NewGameService(games, nil)
		newPlatform := "Switch"
		game, err := svc.Update(ctx, ownerID, gameID, GameInput{Name: "New Name", Platform: &newPlatform})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", game.Name)
		assert.Equal(t, "Switch", game.Platform)
		assert.Equal(t, "Old Publisher", game.Publisher)
		games.AssertExpectations(t)
	})
}

func TestGameService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	gameID := uuid.New()

	t.Run("owner delete succeeds", func(t *testing.T) {
		games := new(MockGameRepository)
		games.On("DeleteOwned", ctx, gameID, ownerID).Return(true, nil)

		svc := NewGameService(games, nil)
		assert.NoError(t, svc.Delete(ctx, ownerID, gameID))
	})

	t.Run("non-owned or missing game reads as not found", func(t *testing.T) {
		games := new(MockGameRepository)
		games.On("DeleteOwned", ctx, gameID, ownerID).Return(false, nil)

		svc := NewGameService(games, nil)
		assert.ErrorIs(t, svc.Delete(ctx, ownerID, gameID), ErrGameNotFound)
	})
}

func TestGameService_List(t *testing.T) {
	ctx := context.Background()

	games := new(MockGameRepository)
	games.On("List", ctx, "knight", 20, 10).
		Return([]models.Game{{Name: "Hollow Knight"}}, int64(1), nil)

	svc := NewGameService(games, nil)
	result, total, err := svc.List(ctx, "knight", 3, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, result, 1)
	games.AssertExpectations(t)
}
