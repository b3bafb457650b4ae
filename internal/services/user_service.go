package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/password"
)

// Authentication failures. Login deliberately returns the same error whether
// the username is unknown or the password is wrong, so responses cannot be
// used for username enumeration.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidOldPassword = errors.New("invalid old password")
)

// ErrEmptyUpdate is returned when a profile update carries no updatable field.
var ErrEmptyUpdate = errors.New("update payload must contain at least one field")

// UserService handles business logic for user accounts and authentication.
type UserService struct {
	repo       repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register registers a new user: rejects duplicate username/email, hashes the
// password exactly once and persists the record. The caller-supplied role is
// ignored; new accounts always start as a regular user.
func (s *UserService) Register(ctx context.Context, user *models.User) error {
	if existing, err := s.repo.GetByUsername(ctx, user.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: username %q already taken", repositories.ErrDuplicate, user.Username)
	}
	if existing, err := s.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: email %q already registered", repositories.ErrDuplicate, user.Email)
	}

	hashed, err := password.Hash(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.Role = models.RoleUser

	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login authenticates a user and returns the user record together with a
// signed JWT. Unknown usernames and wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, username, plaintext string) (*models.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Verify(plaintext, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID.Hex(),
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, tokenString, nil
}

// GetAll retrieves all users.
func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetByID retrieves a single user by its id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile merges only the supplied fields into the stored user. When
// the payload touches the password field the value is re-hashed; every other
// field is merged verbatim.
func (s *UserService) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	if plaintext, ok := fields["password"].(string); ok {
		hashed, err := password.Hash(plaintext)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}

	return s.repo.Update(ctx, id, fields)
}

// ChangePassword verifies the current password before re-hashing and storing
// the new one. A missing user and a wrong old password are both reported as
// an invalid old password.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidOldPassword
		}
		return err
	}

	if !password.Verify(oldPassword, user.Password) {
		return ErrInvalidOldPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.repo.Update(ctx, id, map[string]interface{}{"password": hashed}); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// Delete removes a user by its id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *UserService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
