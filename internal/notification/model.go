package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Event is the wire shape of one message on the asset-events topic. Producers
// (assignment, notice, payment) publish these; the consumer below turns them
// into in-app notifications.
type Event struct {
	Type       string                 `json:"type"` // e.g. REQUEST_APPROVED, NOTICE_CREATED
	UserEmail  string                 `json:"userEmail"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Category   string                 `json:"category"` // request, notice, payment
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// InAppNotification is one bell notification for a user.
type InAppNotification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserEmail string         `gorm:"size:255;not null;index" json:"userEmail"`
	Title     string         `gorm:"size:150;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Category  string         `gorm:"size:30;not null" json:"category"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	IsRead    bool           `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
