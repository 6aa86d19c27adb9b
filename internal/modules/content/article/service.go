// Package article manages the association's news articles.
package article

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
)

var ErrNotFound = errors.New("article not found")

// Service owns article persistence.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListPublished returns published articles newest first.
func (s *Service) ListPublished(q pagination.Query) ([]models.ArticleModel, response.Pagination, error) {
	db := s.db.Model(&models.ArticleModel{}).
		Where("is_published = ?", true).
		Order("published_at DESC")

	var articles []models.ArticleModel
	meta, err := pagination.Paginate[models.ArticleModel](db, q, &articles)
	if err != nil {
		return nil, meta, err
	}
	return articles, meta, nil
}

// ListAll returns every article for the admin view, newest first.
func (s *Service) ListAll(q pagination.Query) ([]models.ArticleModel, response.Pagination, error) {
	db := s.db.Model(&models.ArticleModel{}).Order("created_at DESC")

	var articles []models.ArticleModel
	meta, err := pagination.Paginate[models.ArticleModel](db, q, &articles)
	if err != nil {
		return nil, meta, err
	}
	return articles, meta, nil
}

// Input holds the admin-provided article fields.
type Input struct {
	Title       string
	Content     string
	AuthorName  string
	AuthorEmail string
	IsPublished bool
}

// Create inserts an article, stamping publishedAt when it goes out published.
func (s *Service) Create(in Input) (*models.ArticleModel, error) {
	a := models.ArticleModel{
		Title:       in.Title,
		Content:     in.Content,
		AuthorName:  in.AuthorName,
		AuthorEmail: in.AuthorEmail,
		IsPublished: in.IsPublished,
	}
	if in.IsPublished {
		now := time.Now()
		a.PublishedAt = &now
	}
	if err := s.db.Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces the article fields. Moving to published re-stamps
// publishedAt; unpublishing clears it.
func (s *Service) Update(id string, in Input) (*models.ArticleModel, error) {
	var a models.ArticleModel
	err := s.db.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        in.Title,
		"content":      in.Content,
		"author_name":  in.AuthorName,
		"author_email": in.AuthorEmail,
		"is_published": in.IsPublished,
	}
	if in.IsPublished && !a.IsPublished {
		now := time.Now()
		updates["published_at"] = &now
	}
	if !in.IsPublished {
		updates["published_at"] = nil
	}

	if err := s.db.Model(&a).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an article.
func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.ArticleModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
