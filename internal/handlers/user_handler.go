package handlers

import (
	"log"

	"prototype/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user listing and the current user.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The /users
// listing is deliberately public; only /users/me requires a token.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/users", h.HandleGetUsers)
	router.Get("/users/me", authRequired, h.HandleGetMe)
}

// HandleGetUsers returns all registered users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleGetMe returns the user behind the presented token.
func (h *UserHandler) HandleGetMe(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)

	user, err := h.authService.CurrentUser(username)
	if err != nil {
		log.Printf("Error resolving current user %s: %v", username, err)
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Could not validate credentials",
		})
	}
	return c.JSON(user)
}
