package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"microshop/internal/services"
)

// UserHandler handles HTTP requests for the user registry.
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
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"omitempty,gte=0"`
}

// UpdateUserRequest is the partial payload for updating a user; absent
// fields are preserved.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Age   *int    `json:"age" validate:"omitempty,gte=0"`
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	user, err := h.service.Create(req.Name, req.Email, req.Age)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "User with this email already exists")
		}
		log.Printf("Error creating user: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleListUsers lists users with skip/limit pagination.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)

	users, err := h.service.List(skip, limit)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not list users")
	}
	return c.JSON(users)
}

// HandleGetUser retrieves a single user by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("Error getting user: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleUpdateUser overwrites the supplied fields of an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	user, err := h.service.Update(c.Params("id"), services.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrEmailTaken):
			return errorJSON(c, fiber.StatusConflict, "Email already in use")
		}
		log.Printf("Error updating user: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update user")
	}
	return c.JSON(user)
}

// HandleDeleteUser removes a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("Error deleting user: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not delete user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMetrics reports the user registry metrics.
func (h *UserHandler) HandleMetrics(c *fiber.Ctx) error {
	total, err := h.service.Count()
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Could not collect metrics")
	}
	return c.JSON(fiber.Map{
		"total_users": total,
		"service":     "user-service",
	})
}
