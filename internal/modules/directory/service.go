// Package directory exposes the public directory of professional members and
// its owner/admin management.
package directory

import (
	"errors"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
)

var ErrNotFound = errors.New("profile not found")

// Service owns directory profiles.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns published profiles, optionally filtered by category, ordered
// by company then last name.
func (s *Service) List(category string, q pagination.Query) ([]models.ProfessionalProfile, response.Pagination, error) {
	db := s.db.Model(&models.ProfessionalProfile{}).
		Preload("User").
		Joins("JOIN users ON users.id = professional_profiles.user_id").
		Where("professional_profiles.is_published = ?", true).
		Order("professional_profiles.company_name ASC, users.last_name ASC")
	if category != "" {
		db = db.Where("professional_profiles.category = ?", category)
	}

	var profiles []models.ProfessionalProfile
	meta, err := pagination.Paginate[models.ProfessionalProfile](db, q, &profiles)
	if err != nil {
		return nil, meta, err
	}
	return profiles, meta, nil
}

// Get returns a single published profile by slug.
func (s *Service) Get(slug string) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	err := s.db.Preload("User").
		First(&p, "slug = ? AND is_published = ?", slug, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateInput holds owner-editable profile fields; nil keeps the current
// value. Publication is admin-only and deliberately absent here.
type UpdateInput struct {
	Profession        *string
	Category          *string
	CompanyName       *string
	Description       *string
	Address           *string
	City              *string
	PostalCode        *string
	ProfessionalPhone *string
	ProfessionalEmail *string
	Website           *string
}

// UpdateOwn applies a partial update to the caller's own profile.
func (s *Service) UpdateOwn(userID string, in UpdateInput) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	err := s.db.First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = *v
		}
	}
	set("profession", in.Profession)
	set("category", in.Category)
	set("company_name", in.CompanyName)
	set("description", in.Description)
	set("address", in.Address)
	set("city", in.City)
	set("postal_code", in.PostalCode)
	set("professional_phone", in.ProfessionalPhone)
	set("professional_email", in.ProfessionalEmail)
	set("website", in.Website)
	if len(updates) == 0 {
		return &p, nil
	}

	if err := s.db.Model(&p).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPublished flips a profile's visibility in the public directory.
func (s *Service) SetPublished(id string, published bool) (*models.ProfessionalProfile, error) {
	var p models.ProfessionalProfile
	err := s.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&p).Update("is_published", published).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
