package assignment

import (
	"time"
)

// Request statuses. Pending moves to Approved or Rejected; Approved moves to
// Returned. Rejected and Returned are terminal.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
	StatusReturned = "Returned"
)

// AssetRequest is one employee's request for an asset. Asset name, image and
// type are snapshotted at submit time; display stays stable even if the asset
// is later edited or deleted.
type AssetRequest struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AssetID     uint   `gorm:"not null;index" json:"assetId"`
	UserEmail   string `gorm:"size:255;not null;index" json:"userEmail"`
	HREmail     string `gorm:"size:255;not null;index" json:"hrEmail"`
	CompanyName string `gorm:"size:150;not null;index" json:"companyName"`

	AssetName  string `gorm:"size:200;not null" json:"assetName"`
	AssetImage string `gorm:"size:500" json:"assetImage,omitempty"`
	AssetType  string `gorm:"size:50;not null" json:"assetType"`
	Note       string `gorm:"type:text" json:"note,omitempty"`

	Status        string     `gorm:"size:20;not null;index" json:"status"`
	RequestDate   time.Time  `gorm:"autoCreateTime;index" json:"requestDate"`
	ApprovalDate  *time.Time `json:"approvalDate,omitempty"`
	RejectionDate *time.Time `json:"rejectionDate,omitempty"`
	ReturnDate    *time.Time `json:"returnDate,omitempty"`
}

type SubmitRequestInput struct {
	AssetID        uint   `json:"assetId" binding:"required"`
	RequesterEmail string `json:"requesterEmail" binding:"required,email"`
	Note           string `json:"note"`
}

// ApproveResult distinguishes a real approval from the seat-limit soft block.
// A blocked approval leaves the request Pending and carries LIMIT_REACHED.
type ApproveResult struct {
	Blocked bool          `json:"blocked"`
	Code    string        `json:"code,omitempty"`
	Request *AssetRequest `json:"request,omitempty"`
}

const CodeLimitReached = "LIMIT_REACHED"

// MineFilters narrows an employee's own request listing.
type MineFilters struct {
	Email  string
	Search string
	Type   string
}
