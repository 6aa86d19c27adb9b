// Package user implements admin account management: review of pending
// signups, suspension and newsletter opt-in control.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/session"
)

var ErrNotFound = errors.New("user not found")

// Service owns admin-side user operations.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Role   string
	Status string
}

// List returns accounts newest first with optional role/status filters.
func (s *Service) List(f ListFilter, q pagination.Query) ([]models.UserModel, response.Pagination, error) {
	db := s.db.Model(&models.UserModel{}).
		Preload("Profile").
		Order("created_at DESC")
	if f.Role != "" {
		db = db.Where("role = ?", f.Role)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	var users []models.UserModel
	meta, err := pagination.Paginate[models.UserModel](db, q, &users)
	if err != nil {
		return nil, meta, err
	}
	return users, meta, nil
}

// SetStatus activates or suspends an account. Suspension revokes every live
// session so the user is signed out immediately.
func (s *Service) SetStatus(id string, status models.UserStatus) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&user).Update("status", status).Error; err != nil {
		return nil, err
	}
	if status == models.StatusSuspended {
		if err := session.RevokeAll(s.db, user.ID); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// SetNewsletterOptIn flips the newsletter flag for an account.
func (s *Service) SetNewsletterOptIn(id string, optIn bool) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&user).Update("newsletter_opt_in", optIn).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
