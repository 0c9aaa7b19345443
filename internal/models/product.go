package models

import "github.com/shopspring/decimal"

// Product represents a sellable item in the store.
// Identifiers are lowercase UUID strings assigned server-side on creation.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	Description   *string         `json:"description" gorm:"type:varchar(500)"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	DeliveryPrice decimal.Decimal `json:"deliveryPrice" gorm:"type:decimal(12,2);not null"`
}

// ProductOption represents a variant of a product (e.g. a colour).
// It is owned by exactly one product and cannot outlive it.
type ProductOption struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID   string  `json:"productId" gorm:"type:varchar(36);not null;index"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null"`
	Description *string `json:"description" gorm:"type:varchar(500)"`
}
