package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/service"
)

// refreshTokenCookie is the name of the HttpOnly cookie carrying the refresh
// token. The token never travels in a response body.
const refreshTokenCookie = "refreshToken"

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username" example:"testuser"`
	AccessToken string    `json:"access_token"`
	Image       string    `json:"image" example:"/logo.png"`
}

// ProfileResponse defines the authenticated user's own profile.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username" example:"testuser"`
	Email     string    `json:"email" example:"test@example.com"`
	Image     string    `json:"image"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileInput defines a full profile update.
type UpdateProfileInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Image    string `json:"image"`
}

// PatchProfileInput defines a partial profile update. Absent fields are left
// untouched; an explicit empty string clears image or bio.
type PatchProfileInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Image    *string `json:"image"`
	Bio      *string `json:"bio"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

func newAuthResponse(user *models.User, accessToken string) AuthResponse {
	return AuthResponse{
		ID:          user.ID,
		Username:    user.Username,
		AccessToken: accessToken,
		Image:       user.Image,
	}
}

func newProfileResponse(user *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Image:     user.Image,
		Bio:       user.Bio,
		CreatedAt: user.CreatedAt,
	}
}

// endregion

// AuthHandler handles authentication and profile endpoints.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// setRefreshTokenCookie attaches the refresh token as an HttpOnly, Secure,
// SameSite=Strict cookie with the same lifetime as the stored expiry.
func setRefreshTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshTokenCookie, token, int(auth.RefreshTokenTTL.Seconds()), "/", "", true, true)
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates a user, returns an access token and sets the refresh token cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or email already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := h.auth.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	setRefreshTokenCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, newAuthResponse(user, pair.AccessToken))
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates with email and password, rotates the refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	setRefreshTokenCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, newAuthResponse(user, pair.AccessToken))
}

// Refresh godoc
// @Summary      Rotate the token pair
// @Description  Reads the refresh token cookie and the bearer identity, then rotates both tokens.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  AuthResponse
// @Failure      401  {object}  ErrorResponse "Missing, mismatched or expired refresh token"
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found."})
		return
	}

	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	user, pair, err := h.auth.Refresh(c.Request.Context(), userID, refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token."})
		return
	}

	setRefreshTokenCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, newAuthResponse(user, pair.AccessToken))
}

// Ping godoc
// @Summary      Authenticated check
// @Description  Returns a message confirming the bearer token is valid.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Router       /auth [get]
func (h *AuthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You are authenticated"})
}

// GetProfile godoc
// @Summary      Get current user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// UpdateProfile godoc
// @Summary      Update the profile
// @Description  Replaces username and email; image is only overwritten when non-empty.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile Info"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or email already in use"
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, input.Username, input.Email, input.Image)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// PatchProfile godoc
// @Summary      Partially update the profile
// @Description  Absent fields stay untouched; empty-string image or bio clears the field.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PatchProfileInput true "Profile fields to change"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse "Invalid input or email already in use"
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/profile [patch]
func (h *AuthHandler) PatchProfile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user token."})
		return
	}

	var input PatchProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.PatchProfile(c.Request.Context(), userID, service.ProfilePatch{
		Username: input.Username,
		Email:    input.Email,
		Image:    input.Image,
		Bio:      input.Bio,
	})
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *AuthHandler) writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update profile. Email may already be in use."})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
	}
}
