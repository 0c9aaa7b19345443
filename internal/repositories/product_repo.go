package repositories

import (
	"errors"

	"productstore/internal/models"
)

// ErrNotFound is returned when the target row does not exist.
// Callers are expected to check for it with errors.Is; it is the only
// repository error that does not indicate a storage failure.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product and product-option data access.
type ProductRepository interface {
	GetAllProducts() ([]models.Product, error)
	GetProductsByNameLike(name string) ([]models.Product, error)
	GetProductByID(id string) (*models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id string) error

	GetOptionsByProductID(productID string) ([]models.ProductOption, error)
	GetOptionByID(productID, optionID string) (*models.ProductOption, error)
	CreateOption(option *models.ProductOption) error
	UpdateOption(option *models.ProductOption) error
	DeleteOption(optionID string) error
}
