package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/service"
)

// region --- DTOs ---

// WishlistAddInput defines the structure for saving a game.
type WishlistAddInput struct {
	GameID uuid.UUID `json:"game_id" binding:"required"`
}

// WishlistItemResponse is returned when an entry is created.
type WishlistItemResponse struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	GameID  uuid.UUID `json:"game_id"`
	AddedAt time.Time `json:"added_at"`
}

// WishlistEntryResponse is a wishlist entry with its game populated.
type WishlistEntryResponse struct {
	ID      uuid.UUID    `json:"id"`
	AddedAt time.Time    `json:"added_at"`
	Game    GameResponse `json:"game"`
}

// endregion

// WishlistHandler handles wishlist endpoints. All routes require auth.
type WishlistHandler struct {
	wishlists service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlists service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

// List godoc
// @Summary      Get the caller's wishlist
// @Description  Returns wishlist entries with games and genres, newest first.
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   WishlistEntryResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	entries, err := h.wishlists.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wishlist"})
		return
	}

	response := make([]WishlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, WishlistEntryResponse{
			ID:      entry.ID,
			AddedAt: entry.AddedAt,
			// Every listed game is by definition wishlisted by the caller.
			Game: newGameResponse(entry.Game, map[uuid.UUID]bool{entry.GameID: true}),
		})
	}

	c.JSON(http.StatusOK, response)
}

// Add godoc
// @Summary      Add a game to the wishlist
// @Description  Duplicate (user, game) pairs are rejected as a conflict.
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body WishlistAddInput true "Game to save"
// @Success      201  {object}  WishlistItemResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      409  {object}  ErrorResponse "Already in wishlist"
// @Router       /wishlist [post]
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	var input WishlistAddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.wishlists.Add(c.Request.Context(), userID, input.GameID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found."})
		case errors.Is(err, service.ErrAlreadyInWishlist):
			c.JSON(http.StatusConflict, gin.H{"error": "Game is already in wishlist."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, WishlistItemResponse{
		ID:      entry.ID,
		UserID:  entry.UserID,
		GameID:  entry.GameID,
		AddedAt: entry.AddedAt,
	})
}

// Remove godoc
// @Summary      Remove a game from the wishlist
// @Description  Reports not found when no entry was actually removed.
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path string true "Game ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not in wishlist"
// @Router       /wishlist/{gameId} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	if err := h.wishlists.Remove(c.Request.Context(), userID, gameID); err != nil {
		if errors.Is(err, service.ErrNotInWishlist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found in wishlist."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Check godoc
// @Summary      Check whether a game is wishlisted
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path string true "Game ID"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist/check/{gameId} [get]
func (h *WishlistHandler) Check(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	gameID, err := uuid.Parse(c.Param("gameId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game ID"})
		return
	}

	inWishlist, err := h.wishlists.Contains(c.Request.Context(), userID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"in_wishlist": inWishlist})
}
