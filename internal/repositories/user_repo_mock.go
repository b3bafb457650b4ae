package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pasar/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository with
// the same error semantics as the MongoDB one. Used by tests and for running
// the app without a database.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, enforcing username and email uniqueness.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("%w: username or email already registered", ErrDuplicate)
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = *user
	return nil
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

// GetByID returns a user by its id.
func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetByIDs returns the users matching ids, keyed by hex id.
func (r *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[string]models.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			byID[id] = u
		}
	}
	return byID, nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
}

// Update merges the supplied fields into the stored user.
func (r *MockUserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "username":
			for otherID, u := range r.users {
				if otherID != id && u.Username == s {
					return nil, fmt.Errorf("%w: username or email already registered", ErrDuplicate)
				}
			}
			user.Username = s
		case "email":
			for otherID, u := range r.users {
				if otherID != id && u.Email == s {
					return nil, fmt.Errorf("%w: username or email already registered", ErrDuplicate)
				}
			}
			user.Email = s
		case "password":
			user.Password = s
		case "first_name":
			user.FirstName = s
		case "last_name":
			user.LastName = s
		case "address":
			user.Address = s
		case "phone_number":
			user.PhoneNumber = s
		case "role":
			user.Role = s
		}
	}
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return &user, nil
}

// Delete removes a user by its id.
func (r *MockUserRepository) Delete(ctx context.Context, id string) error {
	if _, err := parseObjectID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}
