package services_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
	"pasar/pkg/password"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestUserService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	user := &models.User{
		Username:    "testuser",
		Email:       "test@example.com",
		Password:    "password123",
		FirstName:   "Test",
		LastName:    "User",
		Address:     "Jl. Sudirman 123",
		PhoneNumber: "08123456789",
		Role:        models.RoleAdmin, // must not survive registration
	}

	mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := userService.Register(ctx, user)
	assert.NoError(t, err)
	// The stored password is a hash of the submitted plaintext, computed once.
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, password.Verify("password123", user.Password))
	// The caller-supplied role is discarded.
	assert.Equal(t, models.RoleUser, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	user := &models.User{Username: "testuser", Email: "test@example.com", Password: "password123"}

	// Username already taken.
	mockRepo.On("GetByUsername", ctx, "testuser").Return(&models.User{}, nil).Once()
	err := userService.Register(ctx, user)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.Contains(t, err.Error(), "username")

	// Email already registered.
	mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{}, nil).Once()
	err = userService.Register(ctx, user)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.Contains(t, err.Error(), "email")
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	hashed, _ := password.Hash("password123")
	user := &models.User{Username: "testuser", Email: "test@example.com", Password: hashed}

	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	got, token, err := userService.Login(ctx, "testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, user, got)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "testuser", claims["username"])
	mockRepo.AssertExpectations(t)
}

func TestUserService_LoginDoesNotLeakWhichCredentialFailed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	hashed, _ := password.Hash("password123")
	user := &models.User{Username: "testuser", Password: hashed}

	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	_, _, wrongPasswordErr := userService.Login(ctx, "testuser", "wrongpassword")

	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, notFoundErr("user")).Once()
	_, _, unknownUserErr := userService.Login(ctx, "ghost", "password123")

	// Wrong password and unknown username are indistinguishable.
	assert.ErrorIs(t, wrongPasswordErr, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPasswordErr.Error(), unknownUserErr.Error())
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	// Empty payloads are rejected before touching the store.
	_, err := userService.UpdateProfile(ctx, "someid", map[string]interface{}{})
	assert.ErrorIs(t, err, services.ErrEmptyUpdate)

	// A non-password merge passes fields through verbatim.
	updated := &models.User{Username: "testuser", FirstName: "Updated"}
	mockRepo.On("Update", ctx, "someid", map[string]interface{}{"first_name": "Updated"}).
		Return(updated, nil).Once()
	got, err := userService.UpdateProfile(ctx, "someid", map[string]interface{}{"first_name": "Updated"})
	assert.NoError(t, err)
	assert.Equal(t, updated, got)

	// A payload touching the password field stores a hash, never the plaintext.
	mockRepo.On("Update", ctx, "someid", mock.MatchedBy(func(fields map[string]interface{}) bool {
		stored, ok := fields["password"].(string)
		return ok && stored != "newpassword" && password.Verify("newpassword", stored)
	})).Return(updated, nil).Once()
	_, err = userService.UpdateProfile(ctx, "someid", map[string]interface{}{"password": "newpassword"})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	hashed, _ := password.Hash("oldpassword")
	user := &models.User{Username: "testuser", Password: hashed}

	// Wrong old password.
	mockRepo.On("GetByID", ctx, "someid").Return(user, nil).Once()
	err := userService.ChangePassword(ctx, "someid", "notit", "newpassword")
	assert.ErrorIs(t, err, services.ErrInvalidOldPassword)

	// Missing user reports the same failure as a wrong old password.
	mockRepo.On("GetByID", ctx, "ghost").Return(nil, notFoundErr("user")).Once()
	err = userService.ChangePassword(ctx, "ghost", "oldpassword", "newpassword")
	assert.ErrorIs(t, err, services.ErrInvalidOldPassword)

	// Correct old password stores a hash of the new one.
	mockRepo.On("GetByID", ctx, "someid").Return(user, nil).Once()
	mockRepo.On("Update", ctx, "someid", mock.MatchedBy(func(fields map[string]interface{}) bool {
		stored, ok := fields["password"].(string)
		return ok && password.Verify("newpassword", stored)
	})).Return(user, nil).Once()
	err = userService.ChangePassword(ctx, "someid", "oldpassword", "newpassword")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	hashed, _ := password.Hash("password123")
	user := &models.User{Username: "testuser", Password: hashed}

	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	_, token, err := userService.Login(ctx, "testuser", "password123")
	assert.NoError(t, err)

	claims, err := userService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])

	_, err = userService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
