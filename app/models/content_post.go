package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
)

// ContentPost is a social media post managed in the CMS for a client.
type ContentPost struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Body         string         `gorm:"type:text" json:"body" validate:"required"`
	Platform     string         `gorm:"type:varchar(50);index" json:"platform"`
	Status       string         `gorm:"type:varchar(32);default:'draft';index" json:"status" validate:"oneof=draft scheduled published"`
	ScheduledFor *time.Time     `gorm:"type:timestamp;default:null" json:"scheduled_for,omitempty"`
	ClientID     uint           `gorm:"index" json:"client_id"`
	Client       Client         `gorm:"foreignKey:ClientID" json:"client"`
	UserID       uint           `gorm:"index" json:"user_id"`
	User         User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ContentPost model
func (ContentPost) TableName() string {
	return "content_posts"
}
