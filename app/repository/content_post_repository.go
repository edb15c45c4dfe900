package repository

import (
	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
)

// contentPostRepository implements ContentPostRepository using GORM
type contentPostRepository struct {
	db *gorm.DB
}

// NewContentPostRepository creates a new content post repository instance
func NewContentPostRepository(db *gorm.DB) ContentPostRepository {
	return &contentPostRepository{db: db}
}

func (r *contentPostRepository) Create(post *models.ContentPost) error {
	return r.db.Create(post).Error
}

func (r *contentPostRepository) GetByID(id uint) (*models.ContentPost, error) {
	var post models.ContentPost
	if err := r.db.Preload("Client").Preload("User").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentPostRepository) GetAll() ([]models.ContentPost, error) {
	var posts []models.ContentPost
	err := r.db.Preload("Client").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *contentPostRepository) GetByClientID(clientID uint) ([]models.ContentPost, error) {
	var posts []models.ContentPost
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *contentPostRepository) Update(post *models.ContentPost) error {
	return r.db.Save(post).Error
}

func (r *contentPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContentPost{}, id).Error
}

func (r *contentPostRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContentPost{}).Count(&count).Error
	return count, err
}
