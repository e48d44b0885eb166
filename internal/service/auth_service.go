package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gamevault/backend/internal/auth"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
)

// defaultUserImage is assigned to freshly registered users.
const defaultUserImage = "/logo.png"

var (
	// ErrEmailTaken is returned when an email is already registered to
	// another user.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token does not match
	// the stored value or has expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// TokenPair bundles a signed access token with the opaque refresh token that
// accompanies it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched; for Image and Bio an explicit empty string clears the field.
type ProfilePatch struct {
	Username *string
	Email    *string
	Image    *string
	Bio      *string
}

// AuthService handles registration, login, token rotation and profiles.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, TokenPair, error)
	Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*models.User, TokenPair, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, email, image string) (*models.User, error)
	PatchProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a user with a hashed password and issues the first token
// pair. Email uniqueness is enforced by the database constraint, not a
// pre-check, so concurrent registrations cannot both succeed.
func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, TokenPair, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, TokenPair{}, err
	}

	expiry := time.Now().Add(auth.RefreshTokenTTL)
	user := &models.User{
		Username:           username,
		Email:              email,
		PasswordHash:       string(hashed),
		Image:              defaultUserImage,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: &expiry,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, TokenPair{}, ErrEmailTaken
		}
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	return user, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login verifies credentials and rotates the refresh token.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh validates the presented refresh token against the stored value and
// rotates both tokens. A rotated-away token never validates again.
func (s *authService) Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*models.User, TokenPair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	if user.RefreshTokenExpiry == nil || !user.RefreshTokenExpiry.After(time.Now()) {
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

// issueTokens rotates the stored refresh token and signs a new access token.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (TokenPair, error) {
	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return TokenPair{}, err
	}

	expiry := time.Now().Add(auth.RefreshTokenTTL)
	user.RefreshToken = refreshToken
	user.RefreshTokenExpiry = &expiry
	if err := s.users.Update(ctx, user); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Profile returns the user's own profile.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile replaces username and email; image is only overwritten when
// a non-empty value is supplied.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email, image string) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if image != "" {
		user.Image = image
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// PatchProfile applies a partial update. Username and email only change when
// set to a non-empty value; image and bio honor an explicit empty string as
// "clear this field".
func (s *authService) PatchProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil && *patch.Username != "" {
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != "" {
		user.Email = *patch.Email
	}
	if patch.Image != nil {
		user.Image = *patch.Image
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}
