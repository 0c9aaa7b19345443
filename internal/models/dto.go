package models

import "github.com/shopspring/decimal"

// CreateProductRequest is the request body for creating a product.
// The identifier is never client-supplied; the service assigns it.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=100"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price"`
	DeliveryPrice decimal.Decimal `json:"deliveryPrice"`
}

// UpdateProductRequest is the request body for updating a product.
// All mutable fields are overwritten in place.
type UpdateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=100"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price"`
	DeliveryPrice decimal.Decimal `json:"deliveryPrice"`
}

// CreateProductOptionRequest is the request body for creating a product option.
type CreateProductOptionRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateProductOptionRequest is the request body for updating a product option.
type UpdateProductOptionRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ProductListResponse wraps a product listing.
type ProductListResponse struct {
	Items []Product `json:"items"`
}

// ProductOptionListResponse wraps an option listing.
type ProductOptionListResponse struct {
	Items []ProductOption `json:"items"`
}

// CreateResponse reports the outcome of a create operation together with
// the server-assigned identifier. The ID is empty when the write failed.
type CreateResponse struct {
	ID           string `json:"id,omitempty"`
	IsSuccessful bool   `json:"isSuccessful"`
}

// OperationResponse reports the outcome of an update or delete operation.
// A missing target is reported as IsSuccessful=false, never as an error.
type OperationResponse struct {
	IsSuccessful bool `json:"isSuccessful"`
}
