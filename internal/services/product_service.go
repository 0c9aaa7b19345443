package services

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"

	"productstore/internal/models"
	"productstore/internal/repositories"
)

// EventPublisher publishes domain events to a message broker.
// Implemented by rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductService handles business logic for products and their options.
// Missing entities are reported as nil results or IsSuccessful=false,
// never as errors; errors mean the storage layer itself failed.
type ProductService struct {
	repo repositories.ProductRepository
	mq   EventPublisher
}

// NewProductService creates a new ProductService. The publisher may be nil.
func NewProductService(repo repositories.ProductRepository, mq EventPublisher) *ProductService {
	return &ProductService{
		repo: repo,
		mq:   mq,
	}
}

// GetAllProducts retrieves all products, optionally filtered by a
// case-insensitive name substring.
func (s *ProductService) GetAllProducts(nameFilter string) (*models.ProductListResponse, error) {
	var (
		products []models.Product
		err      error
	)
	if nameFilter == "" {
		products, err = s.repo.GetAllProducts()
	} else {
		products, err = s.repo.GetProductsByNameLike(nameFilter)
	}
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = make([]models.Product, 0)
	}
	return &models.ProductListResponse{Items: products}, nil
}

// GetProductByID retrieves a single product. A missing product yields
// (nil, nil) so the caller can map it to a 404.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("No product with id %s found", id)
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct assigns a fresh identifier and persists a new product.
func (s *ProductService) CreateProduct(req *models.CreateProductRequest) (*models.CreateResponse, error) {
	product := &models.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DeliveryPrice: req.DeliveryPrice,
	}

	if err := s.repo.CreateProduct(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", map[string]interface{}{
		"productId": product.ID,
		"name":      product.Name,
	})

	return &models.CreateResponse{ID: product.ID, IsSuccessful: true}, nil
}

// UpdateProduct overwrites all mutable fields of an existing product.
// A missing product yields IsSuccessful=false without writing.
func (s *ProductService) UpdateProduct(id string, req *models.UpdateProductRequest) (*models.OperationResponse, error) {
	product, err := s.repo.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Could not find product with id %s", id)
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.DeliveryPrice = req.DeliveryPrice

	if err := s.repo.UpdateProduct(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	s.publishEvent("product.updated", map[string]interface{}{
		"productId": product.ID,
	})

	return &models.OperationResponse{IsSuccessful: true}, nil
}

// DeleteProduct removes a product together with all its options. A failed
// option delete is logged and skipped; it never aborts the product deletion.
func (s *ProductService) DeleteProduct(id string) (*models.OperationResponse, error) {
	options, err := s.repo.GetOptionsByProductID(id)
	if err != nil {
		return nil, err
	}

	for _, option := range options {
		if err := s.repo.DeleteOption(option.ID); err != nil {
			log.Printf("Warning: failed to delete option %s of product %s: %v", option.ID, option.ProductID, err)
		} else {
			log.Printf("Deleted option %s of product %s", option.ID, option.ProductID)
		}
	}

	if err := s.repo.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Could not find product with id %s", id)
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	s.publishEvent("product.deleted", map[string]interface{}{
		"productId": id,
	})

	return &models.OperationResponse{IsSuccessful: true}, nil
}

// GetProductOptions retrieves all options owned by a product. No product
// existence check is performed; an unknown product yields an empty list.
func (s *ProductService) GetProductOptions(productID string) (*models.ProductOptionListResponse, error) {
	options, err := s.repo.GetOptionsByProductID(productID)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = make([]models.ProductOption, 0)
	}
	return &models.ProductOptionListResponse{Items: options}, nil
}

// GetProductOption retrieves an option only when both identifiers match the
// same row. A missing option yields (nil, nil).
func (s *ProductService) GetProductOption(productID, optionID string) (*models.ProductOption, error) {
	option, err := s.repo.GetOptionByID(productID, optionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("No option with id %s found for product %s", optionID, productID)
			return nil, nil
		}
		return nil, err
	}
	return option, nil
}

// CreateProductOption persists a new option after verifying the parent
// product exists. A missing parent yields IsSuccessful=false without writing.
func (s *ProductService) CreateProductOption(productID string, req *models.CreateProductOptionRequest) (*models.CreateResponse, error) {
	if _, err := s.repo.GetProductByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("No product with id %s found, cannot create option", productID)
			return &models.CreateResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	option := &models.ProductOption{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.CreateOption(option); err != nil {
		return nil, err
	}

	s.publishEvent("option.created", map[string]interface{}{
		"productId": productID,
		"optionId":  option.ID,
	})

	return &models.CreateResponse{ID: option.ID, IsSuccessful: true}, nil
}

// UpdateProductOption overwrites the name and description of an existing
// option. A missing option yields IsSuccessful=false.
func (s *ProductService) UpdateProductOption(productID, optionID string, req *models.UpdateProductOptionRequest) (*models.OperationResponse, error) {
	option, err := s.repo.GetOptionByID(productID, optionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Could not find option with id %s for product %s", optionID, productID)
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	option.Name = req.Name
	option.Description = req.Description

	if err := s.repo.UpdateOption(option); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	s.publishEvent("option.updated", map[string]interface{}{
		"productId": productID,
		"optionId":  optionID,
	})

	return &models.OperationResponse{IsSuccessful: true}, nil
}

// DeleteProductOption removes an option after confirming both identifiers
// match the same row. A missing option yields IsSuccessful=false.
func (s *ProductService) DeleteProductOption(productID, optionID string) (*models.OperationResponse, error) {
	option, err := s.repo.GetOptionByID(productID, optionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Could not find option with id %s for product %s", optionID, productID)
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	if err := s.repo.DeleteOption(option.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.OperationResponse{IsSuccessful: false}, nil
		}
		return nil, err
	}

	s.publishEvent("option.deleted", map[string]interface{}{
		"productId": productID,
		"optionId":  optionID,
	})

	return &models.OperationResponse{IsSuccessful: true}, nil
}

// publishEvent publishes a domain event best-effort. Publish failures are
// logged and never surfaced to the caller.
func (s *ProductService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mq == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}

	if err := s.mq.Publish("product_events", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
