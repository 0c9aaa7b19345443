package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"productstore/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository,
// selected with DB_DRIVER=memory. Keys are lowercased so identifier lookups
// stay case-insensitive like the SQL implementations.
type MemoryProductRepository struct {
	products map[string]models.Product
	options  map[string]models.ProductOption
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
		options:  make(map[string]models.ProductOption),
	}
}

// GetAllProducts returns all products.
func (r *MemoryProductRepository) GetAllProducts() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	return productList, nil
}

// GetProductsByNameLike returns products whose name contains the substring,
// case-insensitively.
func (r *MemoryProductRepository) GetProductsByNameLike(name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	productList := make([]models.Product, 0)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// GetProductByID returns a product by its ID.
func (r *MemoryProductRepository) GetProductByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[strings.ToLower(id)]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// CreateProduct adds a new product.
func (r *MemoryProductRepository) CreateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[strings.ToLower(product.ID)] = *product
	return nil
}

// UpdateProduct overwrites an existing product.
func (r *MemoryProductRepository) UpdateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(product.ID)
	if _, ok := r.products[key]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	r.products[key] = *product
	return nil
}

// DeleteProduct removes a product by its ID.
func (r *MemoryProductRepository) DeleteProduct(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(id)
	if _, ok := r.products[key]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(r.products, key)
	return nil
}

// GetOptionsByProductID returns all options owned by a product.
func (r *MemoryProductRepository) GetOptionsByProductID(productID string) ([]models.ProductOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	optionList := make([]models.ProductOption, 0)
	for _, o := range r.options {
		if strings.EqualFold(o.ProductID, productID) {
			optionList = append(optionList, o)
		}
	}
	return optionList, nil
}

// GetOptionByID returns an option only when both identifiers match.
func (r *MemoryProductRepository) GetOptionByID(productID, optionID string) (*models.ProductOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	option, ok := r.options[strings.ToLower(optionID)]
	if !ok || !strings.EqualFold(option.ProductID, productID) {
		return nil, fmt.Errorf("option %s of product %s: %w", optionID, productID, ErrNotFound)
	}
	return &option, nil
}

// CreateOption adds a new product option.
func (r *MemoryProductRepository) CreateOption(option *models.ProductOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if option.ID == "" {
		option.ID = uuid.New().String()
	}
	r.options[strings.ToLower(option.ID)] = *option
	return nil
}

// UpdateOption overwrites an existing option's name and description.
func (r *MemoryProductRepository) UpdateOption(option *models.ProductOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(option.ID)
	existing, ok := r.options[key]
	if !ok {
		return fmt.Errorf("option %s: %w", option.ID, ErrNotFound)
	}
	existing.Name = option.Name
	existing.Description = option.Description
	r.options[key] = existing
	return nil
}

// DeleteOption removes an option by its ID.
func (r *MemoryProductRepository) DeleteOption(optionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(optionID)
	if _, ok := r.options[key]; !ok {
		return fmt.Errorf("option %s: %w", optionID, ErrNotFound)
	}
	delete(r.options, key)
	return nil
}
