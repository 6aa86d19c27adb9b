// Package category manages forum categories.
package category

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/text"
)

var (
	ErrNotFound   = errors.New("category not found")
	ErrDuplicate  = errors.New("category name or slug already exists")
	ErrHasThreads = errors.New("category still has threads")
)

// Service owns category persistence.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// WithCount is a category plus its visible thread count.
type WithCount struct {
	models.ForumCategoryModel
	ThreadCount int64 `json:"threadCount"`
}

// List returns categories ordered by display order with their non-deleted
// thread counts. Inactive categories are included only when admin is true.
func (s *Service) List(admin bool) ([]WithCount, error) {
	var cats []models.ForumCategoryModel
	q := s.db.Order("display_order ASC, name ASC")
	if !admin {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&cats).Error; err != nil {
		return nil, err
	}

	type row struct {
		CategoryID string
		N          int64
	}
	var rows []row
	err := s.db.Model(&models.ForumThreadModel{}).
		Select("category_id, COUNT(*) AS n").
		Where("status <> ?", models.ThreadDeleted).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.N
	}

	out := make([]WithCount, 0, len(cats))
	for _, c := range cats {
		out = append(out, WithCount{ForumCategoryModel: c, ThreadCount: counts[c.ID]})
	}
	return out, nil
}

// Get finds an active category by ID or slug.
func (s *Service) Get(idOrSlug string) (*models.ForumCategoryModel, error) {
	var cat models.ForumCategoryModel
	err := s.db.First(&cat, "id = ? OR slug = ?", idOrSlug, idOrSlug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateInput holds the admin-provided category fields.
type CreateInput struct {
	Name         string
	NameAr       string
	Slug         string
	Description  string
	Color        string
	DisplayOrder int
}

// Create inserts a category. An empty slug is derived from the name.
func (s *Service) Create(in CreateInput) (*models.ForumCategoryModel, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = text.Slugify(in.Name, 50)
	}

	var exists int64
	if err := s.db.Model(&models.ForumCategoryModel{}).
		Where("name = ? OR slug = ?", in.Name, slug).
		Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrDuplicate
	}

	cat := models.ForumCategoryModel{
		Name:         in.Name,
		NameAr:       in.NameAr,
		Slug:         slug,
		Description:  in.Description,
		Color:        in.Color,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}
	if cat.Color == "" {
		cat.Color = "#16a34a"
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateInput holds the mutable category fields; nil means keep.
type UpdateInput struct {
	Name         *string
	NameAr       *string
	Description  *string
	Color        *string
	DisplayOrder *int
	IsActive     *bool
}

// Update applies a partial update to a category.
func (s *Service) Update(id string, in UpdateInput) (*models.ForumCategoryModel, error) {
	var cat models.ForumCategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.NameAr != nil {
		updates["name_ar"] = *in.NameAr
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.DisplayOrder != nil {
		updates["display_order"] = *in.DisplayOrder
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return &cat, nil
	}

	if err := s.db.Model(&cat).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes an empty category. Categories with threads must be
// deactivated instead.
func (s *Service) Delete(id string) error {
	var cat models.ForumCategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var threads int64
	if err := s.db.Model(&models.ForumThreadModel{}).
		Where("category_id = ?", id).
		Count(&threads).Error; err != nil {
		return err
	}
	if threads > 0 {
		return ErrHasThreads
	}
	return s.db.Delete(&cat).Error
}
