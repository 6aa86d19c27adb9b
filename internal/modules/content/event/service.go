// Package event manages the association's event announcements.
package event

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
)

var ErrNotFound = errors.New("event not found")

// Service owns event persistence.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Upcoming returns at most limit published events whose date has not passed,
// soonest first. Today counts as upcoming until midnight.
func (s *Service) Upcoming(limit int) ([]models.EventModel, error) {
	today := time.Now().Truncate(24 * time.Hour)

	var events []models.EventModel
	err := s.db.Where("is_published = ? AND event_date >= ?", true, today).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListPublished returns published events soonest first, past ones included.
func (s *Service) ListPublished(q pagination.Query) ([]models.EventModel, response.Pagination, error) {
	db := s.db.Model(&models.EventModel{}).
		Where("is_published = ?", true).
		Order("event_date ASC")

	var events []models.EventModel
	meta, err := pagination.Paginate[models.EventModel](db, q, &events)
	if err != nil {
		return nil, meta, err
	}
	return events, meta, nil
}

// ListAll returns every event for the admin view, soonest first.
func (s *Service) ListAll(q pagination.Query) ([]models.EventModel, response.Pagination, error) {
	db := s.db.Model(&models.EventModel{}).Order("event_date ASC")

	var events []models.EventModel
	meta, err := pagination.Paginate[models.EventModel](db, q, &events)
	if err != nil {
		return nil, meta, err
	}
	return events, meta, nil
}

// Input holds the admin-provided event fields.
type Input struct {
	Title       string
	TitleAr     string
	Description string
	EventDate   time.Time
	Location    string
	IsPublished bool
}

// Create inserts an event.
func (s *Service) Create(in Input) (*models.EventModel, error) {
	e := models.EventModel{
		Title:       in.Title,
		TitleAr:     in.TitleAr,
		Description: in.Description,
		EventDate:   in.EventDate,
		Location:    in.Location,
		IsPublished: in.IsPublished,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the event fields.
func (s *Service) Update(id string, in Input) (*models.EventModel, error) {
	var e models.EventModel
	err := s.db.First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        in.Title,
		"title_ar":     in.TitleAr,
		"description":  in.Description,
		"event_date":   in.EventDate,
		"location":     in.Location,
		"is_published": in.IsPublished,
	}
	if err := s.db.Model(&e).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an event.
func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.EventModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
