package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"productstore/internal/models"
	"productstore/internal/services"
)

// genericErrorBody is the fixed error payload for unexpected failures.
// Internal details are logged server-side only, never returned.
const genericErrorBody = "An error has occured"

// ProductHandler handles HTTP requests for products and product options.
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
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Get("/:id/options", h.HandleGetProductOptions)
	productRoutes.Post("/:id/options", h.HandleCreateProductOption)
	productRoutes.Get("/:id/options/:optionId", h.HandleGetProductOption)
	productRoutes.Put("/:id/options/:optionId", h.HandleUpdateProductOption)
	productRoutes.Delete("/:id/options/:optionId", h.HandleDeleteProductOption)
}

// HandleGetProducts retrieves all products, optionally filtered by name.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	log.Printf("[GET] /products")

	result, err := h.service.GetAllProducts(c.Query("name"))
	if err != nil {
		log.Printf("Error getting products: %v", err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[GET] /products/%s", id)

	product, err := h.service.GetProductByID(id)
	if err != nil {
		log.Printf("Error getting product %s: %v", id, err)
		return badRequest(c)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", id),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	log.Printf("[POST] /products")

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return badRequest(c)
	}
	if errs := h.validateBody(&req); errs != nil {
		return validationFailed(c, errs)
	}
	if req.Price.IsNegative() || req.DeliveryPrice.IsNegative() {
		return validationFailed(c, map[string]string{"price": "must not be negative"})
	}

	result, err := h.service.CreateProduct(&req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleUpdateProduct overwrites all mutable fields of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[PUT] /products/%s", id)

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return badRequest(c)
	}
	if errs := h.validateBody(&req); errs != nil {
		return validationFailed(c, errs)
	}
	if req.Price.IsNegative() || req.DeliveryPrice.IsNegative() {
		return validationFailed(c, map[string]string{"price": "must not be negative"})
	}

	result, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		log.Printf("Error updating product %s: %v", id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleDeleteProduct deletes a product together with all its options.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[DELETE] /products/%s", id)

	result, err := h.service.DeleteProduct(id)
	if err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleGetProductOptions retrieves all options owned by a product.
func (h *ProductHandler) HandleGetProductOptions(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[GET] /products/%s/options", id)

	result, err := h.service.GetProductOptions(id)
	if err != nil {
		log.Printf("Error getting options for product %s: %v", id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleGetProductOption retrieves a single option of a product.
func (h *ProductHandler) HandleGetProductOption(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}
	optionID, err := parseUUIDParam(c, "optionId")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[GET] /products/%s/options/%s", id, optionID)

	option, err := h.service.GetProductOption(id, optionID)
	if err != nil {
		log.Printf("Error getting option %s of product %s: %v", optionID, id, err)
		return badRequest(c)
	}
	if option == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Option with ID %s not found for product %s", optionID, id),
		})
	}
	return c.JSON(option)
}

// HandleCreateProductOption creates a new option under a product.
func (h *ProductHandler) HandleCreateProductOption(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[POST] /products/%s/options", id)

	var req models.CreateProductOptionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create option body: %v", err)
		return badRequest(c)
	}
	if errs := h.validateBody(&req); errs != nil {
		return validationFailed(c, errs)
	}

	result, err := h.service.CreateProductOption(id, &req)
	if err != nil {
		log.Printf("Error creating option for product %s: %v", id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleUpdateProductOption overwrites the name and description of an option.
func (h *ProductHandler) HandleUpdateProductOption(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}
	optionID, err := parseUUIDParam(c, "optionId")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[PUT] /products/%s/options/%s", id, optionID)

	var req models.UpdateProductOptionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update option body: %v", err)
		return badRequest(c)
	}
	if errs := h.validateBody(&req); errs != nil {
		return validationFailed(c, errs)
	}

	result, err := h.service.UpdateProductOption(id, optionID, &req)
	if err != nil {
		log.Printf("Error updating option %s of product %s: %v", optionID, id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// HandleDeleteProductOption deletes a single option of a product.
func (h *ProductHandler) HandleDeleteProductOption(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return badRequest(c)
	}
	optionID, err := parseUUIDParam(c, "optionId")
	if err != nil {
		return badRequest(c)
	}

	log.Printf("[DELETE] /products/%s/options/%s", id, optionID)

	result, err := h.service.DeleteProductOption(id, optionID)
	if err != nil {
		log.Printf("Error deleting option %s of product %s: %v", optionID, id, err)
		return badRequest(c)
	}
	return c.JSON(result)
}

// validateBody validates a request body and returns per-field error messages,
// or nil when validation passed.
func (h *ProductHandler) validateBody(req interface{}) map[string]string {
	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return errorMessages
	}
	return nil
}

// parseUUIDParam parses a route parameter as a UUID and returns it lowercased.
func parseUUIDParam(c *fiber.Ctx, name string) (string, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		log.Printf("Invalid %s route parameter %q: %v", name, c.Params(name), err)
		return "", err
	}
	return id.String(), nil
}

func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": genericErrorBody,
	})
}

func validationFailed(c *fiber.Ctx, errorMessages map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
