package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/models"
	"pasar/internal/services"
)

// productUpdateRules holds the per-field domain constraints a partial update
// must re-check for any field it touches.
var productUpdateRules = map[string]string{
	"name":        "required",
	"image":       "url",
	"description": "required",
	"price":       "gte=0",
	"quantity":    "gte=0",
	"status":      "oneof='in stock' 'out of stock'",
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Post("/", h.HandleCreateProduct)
	products.Get("/", h.HandleGetProducts)
	products.Get("/:id", h.HandleGetProduct)
	products.Patch("/:id", h.HandleUpdateProduct)
	products.Put("/:id", h.HandleReplaceProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s has been created successfully.", product.Name),
		"data":    product,
	})
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.Context())
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": products,
	})
}

// HandleGetProduct retrieves a single product by id.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Context(), c.Params("id"))
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": product,
	})
}

// HandleUpdateProduct applies a field-by-field merge. Only supplied fields
// change and each touched field is re-checked against its domain constraint.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	fields := make(map[string]interface{})
	errorMessages := make(map[string]string)
	for name, rule := range productUpdateRules {
		value, ok := payload[name]
		if !ok {
			continue
		}
		switch name {
		case "price":
			f, ok := value.(float64)
			if !ok {
				errorMessages[name] = "Field 'price' must be a number"
				continue
			}
			if err := h.validate.Var(f, rule); err != nil {
				errorMessages[name] = fmt.Sprintf("Field '%s' failed on the '%s' rule", name, rule)
				continue
			}
			fields[name] = f
		case "quantity":
			f, ok := value.(float64)
			if !ok || f != math.Trunc(f) {
				errorMessages[name] = "Field 'quantity' must be an integer"
				continue
			}
			q := int(f)
			if err := h.validate.Var(q, rule); err != nil {
				errorMessages[name] = fmt.Sprintf("Field '%s' failed on the '%s' rule", name, rule)
				continue
			}
			fields[name] = q
		default:
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
	}
	if len(errorMessages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	product, err := h.service.UpdateProduct(c.Context(), c.Params("id"), fields)
	if err != nil {
		log.Printf("Error updating product %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully.",
		"data":    product,
	})
}

// HandleReplaceProduct overwrites every field of a product, preserving only
// the identifier and the original creation timestamp.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	replaced, err := h.service.ReplaceProduct(c.Context(), c.Params("id"), &product)
	if err != nil {
		log.Printf("Error replacing product %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Product replaced successfully.",
		"data":    replaced,
	})
}

// HandleDeleteProduct deletes a product by id.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully.",
	})
}
