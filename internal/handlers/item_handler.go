package handlers

import (
	"errors"
	"log"

	"prototype/internal/models"
	"prototype/internal/services"
	"prototype/internal/shared"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for items.
type ItemHandler struct {
	itemService *services.ItemService
	validate    *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app. Reads are
// public; mutations require a bearer token.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/", authRequired, h.HandleCreateItem)
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Put("/:id", authRequired, h.HandleUpdateItem)
	itemRoutes.Delete("/:id", authRequired, h.HandleDeleteItem)
}

// ItemCreateRequest represents the request body for item creation.
type ItemCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

// ItemUpdateRequest represents a partial item update. Absent fields are
// left unchanged.
type ItemUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
}

// HandleCreateItem creates a new item owned by the authenticated user.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req ItemCreateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	owner, _ := c.Locals("username").(string)
	item := &models.Item{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}

	created, err := h.itemService.CreateItem(item, owner)
	if err != nil {
		log.Printf("Error creating item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetItems returns items in creation order with skip/limit pagination.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 10)

	items, err := h.itemService.ListItems(skip, limit)
	if err != nil {
		log.Printf("Error listing items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
		})
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its id.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item id must be an integer",
		})
	}

	item, err := h.itemService.GetItem(id)
	if err != nil {
		return h.itemErrorResponse(c, id, err)
	}
	return c.JSON(item)
}

// HandleUpdateItem merges the provided fields into an item the caller owns.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item id must be an integer",
		})
	}

	var req ItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	caller, _ := c.Locals("username").(string)
	patch := services.ItemPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	}

	item, err := h.itemService.UpdateItem(id, patch, caller)
	if err != nil {
		return h.itemErrorResponse(c, id, err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item the caller owns.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Item id must be an integer",
		})
	}

	caller, _ := c.Locals("username").(string)
	if err := h.itemService.DeleteItem(id, caller); err != nil {
		return h.itemErrorResponse(c, id, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// itemErrorResponse maps item service errors to HTTP status codes.
func (h *ItemHandler) itemErrorResponse(c *fiber.Ctx, id int, err error) error {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Item not found",
		})
	case errors.Is(err, shared.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not enough permissions",
		})
	default:
		log.Printf("Error handling item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process item request",
		})
	}
}
