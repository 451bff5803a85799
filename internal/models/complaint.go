package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Needed for pq.StringArray
	"gorm.io/gorm"
)

// Complaint statuses. The set is closed; validation rejects anything else.
const (
	StatusPending  = "Pending"
	StatusInReview = "In Review"
	StatusResolved = "Resolved"
)

// Complaint priorities, set once at submission.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Complaint is a single complaint filed by a student.
// Status and AdminNote are writable only through the admin review path;
// everything else is fixed at creation.
type Complaint struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
	// StudentID is the owning principal. Ownership never transfers.
	StudentID   string `gorm:"type:uuid;not null;index" json:"student_id"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:varchar(1000);not null" json:"description"`
	Category    string `gorm:"type:varchar(50);not null" json:"category"`
	Priority    string `gorm:"type:varchar(10);not null" json:"priority"`
	Status      string `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	// AdminNote is nullable; present only once an admin has annotated the complaint.
	AdminNote *string `gorm:"type:varchar(300)" json:"admin_note"`
	// PhotoURLs holds up to 5 retrieval addresses, in upload order.
	PhotoURLs pq.StringArray `gorm:"type:text[]" json:"photo_urls"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when none is set.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
