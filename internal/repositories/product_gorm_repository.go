package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"productstore/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// Identifier comparisons are case-insensitive; every query is parameterized.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAllProducts retrieves all products from the database.
func (r *GORMProductRepository) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetProductsByNameLike retrieves products whose name contains the given
// substring, case-insensitively.
func (r *GORMProductRepository) GetProductsByNameLike(name string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + strings.ToLower(name) + "%"
	if err := r.db.Where("lower(name) LIKE ?", pattern).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by name %q: %w", name, err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "lower(id) = ?", strings.ToLower(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *GORMProductRepository) CreateProduct(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct overwrites all mutable fields of an existing product.
func (r *GORMProductRepository) UpdateProduct(product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("lower(id) = ?", strings.ToLower(product.ID)).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"delivery_price": product.DeliveryPrice,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// DeleteProduct removes a product row by its ID.
func (r *GORMProductRepository) DeleteProduct(id string) error {
	res := r.db.Where("lower(id) = ?", strings.ToLower(id)).Delete(&models.Product{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetOptionsByProductID retrieves all options owned by a product.
// A product with no options (or an unknown product) yields an empty slice.
func (r *GORMProductRepository) GetOptionsByProductID(productID string) ([]models.ProductOption, error) {
	var options []models.ProductOption
	if err := r.db.Where("lower(product_id) = ?", strings.ToLower(productID)).Find(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to get options for product %s: %w", productID, err)
	}
	return options, nil
}

// GetOptionByID retrieves an option only when both identifiers match the same row.
func (r *GORMProductRepository) GetOptionByID(productID, optionID string) (*models.ProductOption, error) {
	var option models.ProductOption
	err := r.db.First(&option, "lower(id) = ? AND lower(product_id) = ?",
		strings.ToLower(optionID), strings.ToLower(productID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("option %s of product %s: %w", optionID, productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get option %s of product %s: %w", optionID, productID, err)
	}
	return &option, nil
}

// CreateOption inserts a new product option row.
func (r *GORMProductRepository) CreateOption(option *models.ProductOption) error {
	if option.ID == "" {
		option.ID = uuid.New().String()
	}
	if err := r.db.Create(option).Error; err != nil {
		return fmt.Errorf("failed to create product option: %w", err)
	}
	return nil
}

// UpdateOption overwrites the name and description of an existing option.
func (r *GORMProductRepository) UpdateOption(option *models.ProductOption) error {
	res := r.db.Model(&models.ProductOption{}).
		Where("lower(id) = ?", strings.ToLower(option.ID)).
		Updates(map[string]interface{}{
			"name":        option.Name,
			"description": option.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update option %s: %w", option.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("option %s: %w", option.ID, ErrNotFound)
	}
	return nil
}

// DeleteOption removes an option row by its ID.
func (r *GORMProductRepository) DeleteOption(optionID string) error {
	res := r.db.Where("lower(id) = ?", strings.ToLower(optionID)).Delete(&models.ProductOption{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete option %s: %w", optionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("option %s: %w", optionID, ErrNotFound)
	}
	return nil
}

// DeleteAllData truncates both tables. Destructive; integration test cleanup only.
func (r *GORMProductRepository) DeleteAllData() error {
	session := r.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := session.Delete(&models.ProductOption{}).Error; err != nil {
		return fmt.Errorf("failed to delete all options: %w", err)
	}
	if err := session.Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("failed to delete all products: %w", err)
	}
	return nil
}
