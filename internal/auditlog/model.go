package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is one row of the append-only audit trail. Actor is the verified
// email of the caller (nullable for unauthenticated failures).
type AuditLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorEmail *string        `gorm:"size:255;index" json:"actorEmail"`
	Action     string         `gorm:"size:100;not null;index" json:"action"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress  string         `gorm:"size:45" json:"ipAddress"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows audit log queries.
type Filter struct {
	ActorEmail string
	Action     string
	Status     string
	FromDate   *time.Time
	ToDate     *time.Time
	Page       int
	Limit      int
}

type PaginatedLogs struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}
