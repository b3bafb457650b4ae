package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"
)

// userUpdateRules holds the per-field domain constraints a profile merge must
// re-check for any field it touches. Fields not listed here are dropped from
// the payload.
var userUpdateRules = map[string]string{
	"username":     "min=3,max=100",
	"email":        "email",
	"password":     "min=6",
	"first_name":   "required",
	"last_name":    "required",
	"address":      "required",
	"phone_number": "required",
	"role":         "oneof=admin user",
}

// UserHandler handles HTTP requests for user accounts and authentication.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Get("/", h.HandleGetUsers)
	users.Get("/me", middleware.AuthRequired(h.service), h.HandleMe)
	users.Get("/:id", h.HandleGetUser)
	users.Patch("/:id/change-password", h.HandleChangePassword)
	users.Patch("/:id", h.HandleUpdateUser)
	users.Delete("/:id", h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration. Role is
// accepted but ignored: new accounts always start as a regular user.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Role        string `json:"role" validate:"omitempty,oneof=admin user"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user := models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.service.Register(c.Context(), &user); err != nil {
		log.Printf("Error registering user: %v", err)
		return respondUserError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User has been created successfully.",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login. The password field never appears in the
// response; the User json tags strip it at the serialization boundary.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	user, token, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return respondUserError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful.",
		"user":    user,
		"token":   token,
	})
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAll(c.Context())
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondUserError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

// HandleGetUser retrieves a single user profile by id.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Error fetching user profile %s: %v", c.Params("id"), err)
		return respondUserError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// HandleUpdateUser applies a field-by-field merge to a user profile. The
// identifier format is checked before the payload, an empty payload is
// rejected and a touched password field is re-hashed instead of merged
// verbatim.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("malformed id: %q", id),
		})
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	fields := make(map[string]interface{})
	errorMessages := make(map[string]string)
	for name, rule := range userUpdateRules {
		value, ok := payload[name]
		if !ok {
			continue
		}
		s, ok := value.(string)
		if !ok {
			errorMessages[name] = fmt.Sprintf("Field '%s' must be a string", name)
			continue
		}
		if err := h.validate.Var(s, rule); err != nil {
			errorMessages[name] = fmt.Sprintf("Field '%s' failed on the '%s' rule", name, rule)
			continue
		}
		fields[name] = s
	}
	if len(errorMessages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user, err := h.service.UpdateProfile(c.Context(), id, fields)
	if err != nil {
		log.Printf("Error updating user %s: %v", id, err)
		return respondUserError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User profile updated successfully.",
		"user":    user,
	})
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// HandleChangePassword verifies the current password before storing a hash
// of the new one.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.ChangePassword(c.Context(), c.Params("id"), req.OldPassword, req.NewPassword); err != nil {
		log.Printf("Error changing password for user %s: %v", c.Params("id"), err)
		return respondUserError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully.",
	})
}

// HandleDeleteUser deletes a user. Deleting an absent user reports not found
// rather than silently succeeding.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return respondUserError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully.",
	})
}

// HandleMe returns the profile of the authenticated caller.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	id, _ := c.Locals("user_id").(string)
	user, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("Error fetching authenticated user %s: %v", id, err)
		return respondUserError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
