package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/service"
)

// region --- DTOs ---

// GameInput defines the structure for creating or updating a game. Genres are
// only applied at creation.
type GameInput struct {
	Name        string     `json:"name" binding:"required" example:"Hollow Knight"`
	Publisher   *string    `json:"publisher"`
	Platform    *string    `json:"platform"`
	Image       *string    `json:"image"`
	ReleaseDate *time.Time `json:"release_date"`
	Genres      []string   `json:"genres"`
}

// GameOwnerResponse identifies the user who created a game.
type GameOwnerResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// GameResponse defines the structure for a game in API responses.
type GameResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Publisher   string             `json:"publisher"`
	Platform    string             `json:"platform"`
	Image       string             `json:"image"`
	ReleaseDate time.Time          `json:"release_date"`
	Genres      []string           `json:"genres"`
	Owner       *GameOwnerResponse `json:"owner,omitempty"`
	InWishlist  bool               `json:"in_wishlist"`
}

func newGameResponse(game models.Game, wishlisted map[uuid.UUID]bool) GameResponse {
	genres := make([]string, 0, len(game.Genres))
	for _, genre := range game.Genres {
		if genre != nil {
			genres = append(genres, genre.Name)
		}
	}

	var owner *GameOwnerResponse
	if game.User.ID != uuid.Nil {
		owner = &GameOwnerResponse{ID: game.User.ID, Username: game.User.Username}
	}

	return GameResponse{
		ID:          game.ID,
		Name:        game.Name,
		Publisher:   game.Publisher,
		Platform:    game.Platform,
		Image:       game.Image,
		ReleaseDate: game.ReleaseDate,
		Genres:      genres,
		Owner:       owner,
		InWishlist:  wishlisted[game.ID],
	}
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []GameResponse `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// endregion

// GameHandler handles catalog endpoints.
type GameHandler struct {
	games     service.GameService
	wishlists service.WishlistService
}

// NewGameHandler creates a new game handler.
func NewGameHandler(games service.GameService, wishlists service.WishlistService) *GameHandler {
	return &GameHandler{games: games, wishlists: wishlists}
}

// wishlistedIDs returns the caller's wishlisted game ids as a set, or nil
// when the request carries no identity.
func (h *GameHandler) wishlistedIDs(c *gin.Context) map[uuid.UUID]bool {
	userID, ok := auth.UserID(c)
	if !ok {
		return nil
	}
	ids, err := h.wishlists.GameIDs(c.Request.Context(), userID)
	if err != nil {
		return nil
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// GetAll godoc
// @Summary      List the game catalog
// @Description  Paginated catalog with optional name search. With a bearer token, in_wishlist flags are filled in.
// @Tags         games
// @Produce      json
// @Param        q     query     string  false  "Search query for game name"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedGameResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /game/all [get]
func (h *GameHandler) GetAll(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}

	games, totalItems, err := h.games.List(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	wishlisted := h.wishlistedIDs(c)
	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game, wishlisted))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetMyGames godoc
// @Summary      List the caller's games
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   GameResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /game/my-games [get]
func (h *GameHandler) GetMyGames(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	games, err := h.games.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	wishlisted := h.wishlistedIDs(c)
	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game, wishlisted))
	}

	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary      Get a single game
// @Tags         games
// @Produce      json
// @Param        id path string true "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse "Invalid ID"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /game/{id} [get]
func (h *GameHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	game, err := h.games.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve game"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game, h.wishlistedIDs(c)))
}

// Create godoc
// @Summary      Create a game
// @Description  Inserts a game owned by the caller, creating named genres as needed.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game Info"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /game [post]
func (h *GameHandler) Create(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.Create(c.Request.Context(), userID, toGameInput(input))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, newGameResponse(*game, nil))
}

// Update godoc
// @Summary      Update a game
// @Description  Mutations are scoped to the owner; another user's game reads as not found.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string    true  "Game ID"
// @Param        input body      GameInput true  "New Game Info"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Game not found or not owned"
// @Router       /game/{id} [put]
func (h *GameHandler) Update(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.Update(c.Request.Context(), userID, id, toGameInput(input))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found or you don't have permission to update it."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(*game, h.wishlistedIDs(c)))
}

// Delete godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Game ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found or not owned"
// @Router       /game/{id} [delete]
func (h *GameHandler) Delete(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	if err := h.games.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found or you don't have permission to delete it."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}

	c.Status(http.StatusNoContent)
}

func toGameInput(input GameInput) service.GameInput {
	return service.GameInput{
		Name:        input.Name,
		Publisher:   input.Publisher,
		Platform:    input.Platform,
		Image:       input.Image,
		ReleaseDate: input.ReleaseDate,
		Genres:      input.Genres,
	}
}
