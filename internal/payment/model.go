package payment

import (
	"time"
)

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Package is one subscription tier an HR can buy. The employee limit becomes
// the HR's seat limit on upgrade.
type Package struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:30;uniqueIndex;not null" json:"name"`
	EmployeeLimit int     `gorm:"not null" json:"employeeLimit"`
	Price         float64 `gorm:"not null" json:"price"` // major units
}

// Payment is one row of the append-only payment ledger. Rows are created
// pending at order time and flipped on the verified callback; they are never
// deleted.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	HREmail       string     `gorm:"size:255;not null;index" json:"hrEmail"`
	PackageName   string     `gorm:"size:30;not null" json:"packageName"`
	EmployeeLimit int        `gorm:"not null" json:"employeeLimit"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Currency      string     `gorm:"size:10;not null" json:"currency"`
	OrderID       string     `gorm:"size:100;uniqueIndex;not null" json:"orderId"`
	TransactionID string     `gorm:"size:100" json:"transactionId,omitempty"`
	ReceiptNo     string     `gorm:"size:64" json:"receiptNo,omitempty"`
	Status        string     `gorm:"size:20;not null;index" json:"status"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

type CreateOrderInput struct {
	PackageName string `json:"packageName" binding:"required"`
}

// CreateOrderResponse carries what the checkout UI needs: the order id acts
// as the client secret for the payment collaborator.
type CreateOrderResponse struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
}

type VerifyPaymentInput struct {
	OrderID     string `json:"orderId" binding:"required"`
	PaymentID   string `json:"paymentId" binding:"required"`
	RazorpaySig string `json:"signature" binding:"required"`
}
