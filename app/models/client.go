package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Client is an agency customer whose social accounts are managed via the CMS.
type Client struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	ContactEmail  string         `gorm:"type:varchar(200);index" json:"contact_email" validate:"omitempty,email,max=200"`
	SocialHandles string         `gorm:"type:text" json:"social_handles"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Active        bool           `gorm:"default:true" json:"active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cl *Client) Validate() error {
	v := validator.New()
	return v.Struct(cl)
}
