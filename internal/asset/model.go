package asset

import (
	"time"
)

// Asset is one product owned by an HR's company.
//
// Quantity bookkeeping uses three fields on purpose: ProductQuantity is the
// total the HR registered, AvailableQuantity is what submit/return operate on,
// and Quantity is the counter the approve path decrements. The approve and
// return paths deliberately touch different fields; see the assignment module.
type Asset struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductName       string    `gorm:"size:200;not null;index" json:"productName"`
	ProductImage      string    `gorm:"size:500" json:"productImage,omitempty"`
	ProductType       string    `gorm:"size:50;not null;index" json:"productType"` // Returnable | Non-returnable
	ProductQuantity   int       `gorm:"not null" json:"productQuantity"`
	AvailableQuantity int       `gorm:"not null" json:"availableQuantity"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	CompanyName       string    `gorm:"size:150;index" json:"companyName"`
	HREmail           string    `gorm:"size:255;index" json:"hrEmail"`
	DateAdded         time.Time `gorm:"autoCreateTime;index" json:"dateAdded"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

const TypeReturnable = "Returnable"

type CreateAssetInput struct {
	ProductName     string `json:"productName" binding:"required"`
	ProductImage    string `json:"productImage"`
	ProductType     string `json:"productType" binding:"required"`
	ProductQuantity int    `json:"productQuantity" binding:"required,min=1"`
	CompanyName     string `json:"companyName"`
	HREmail         string `json:"hrEmail"`
}

type UpdateAssetInput struct {
	ProductName     string `json:"productName" binding:"required"`
	ProductImage    string `json:"productImage"`
	ProductType     string `json:"productType" binding:"required"`
	ProductQuantity int    `json:"productQuantity" binding:"required,min=0"`
}

// ListFilters narrows asset listings. Search is a case-insensitive substring
// match on the product name.
type ListFilters struct {
	Search        string
	Type          string
	CompanyName   string
	HREmail       string
	AvailableOnly bool
	Page          int
	Limit         int
}
