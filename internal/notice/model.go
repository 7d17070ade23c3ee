package notice

import (
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// priorityRank orders notices high < medium < low for listing.
var priorityRank = map[string]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Notice is one company announcement, owned by the HR who created it.
type Notice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Priority    string    `gorm:"size:10;not null;index" json:"priority"` // high | medium | low
	CompanyName string    `gorm:"size:150;not null;index" json:"companyName"`
	HREmail     string    `gorm:"size:255;not null;index" json:"hrEmail"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ReadStatus records that an employee read a notice. At most one row per
// (notice, employee) pair; deleting a notice cascades to its read rows.
type ReadStatus struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	NoticeID      uint      `gorm:"not null;index:idx_notice_reader,unique" json:"noticeId"`
	EmployeeEmail string    `gorm:"size:255;not null;index:idx_notice_reader,unique" json:"employeeEmail"`
	ReadAt        time.Time `gorm:"autoCreateTime" json:"readAt"`
}

func (ReadStatus) TableName() string {
	return "notice_read_statuses"
}

type CreateNoticeInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"required"`
}

type UpdateNoticeInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"required"`
}

// NoticeWithReadState decorates a notice with the caller's read flag.
type NoticeWithReadState struct {
	Notice
	IsRead bool `json:"isRead"`
}
