// Package ban implements the forum ban registry. A user has at most one ban
// row; whether it is in effect is always derived from the stored expiry.
package ban

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBanNotFound  = errors.New("ban not found")
)

// Service owns ban persistence and the in-effect check.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Active returns the user's ban when it is currently in effect, nil otherwise.
// Expired rows are left in place; they simply stop matching.
func (s *Service) Active(userID string) (*models.ForumBanModel, error) {
	var b models.ForumBanModel
	err := s.db.First(&b, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !b.InEffect(time.Now()) {
		return nil, nil
	}
	return &b, nil
}

// UpsertInput carries a validated ban request.
type UpsertInput struct {
	UserID       string
	Reason       string
	IsPermanent  bool
	DurationDays int
	AdminID      string
}

// Upsert creates or overwrites the ban row for a user. Re-banning replaces
// reason, permanence, expiry, the banning admin and the bannedAt stamp.
func (s *Service) Upsert(in UpsertInput) (*models.ForumBanModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	var expiresAt *time.Time
	if !in.IsPermanent {
		t := now.Add(time.Duration(in.DurationDays) * 24 * time.Hour)
		expiresAt = &t
	}

	b := models.ForumBanModel{
		UserID:      in.UserID,
		Reason:      in.Reason,
		IsPermanent: in.IsPermanent,
		ExpiresAt:   expiresAt,
		BannedByID:  in.AdminID,
		BannedAt:    now,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"reason", "is_permanent", "expires_at", "banned_by_id", "banned_at", "updated_at",
		}),
	}).Create(&b).Error
	if err != nil {
		return nil, err
	}

	// Re-read into a fresh value so an overwritten row comes back with its
	// original ID. b itself carries the discarded insert's generated ID, and
	// First would fold that into the lookup as a primary-key condition.
	var out models.ForumBanModel
	if err := s.db.Preload("User").Preload("BannedBy").
		First(&out, "user_id = ?", in.UserID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Remove lifts a user's ban. Missing row is ErrBanNotFound.
func (s *Service) Remove(userID string) error {
	res := s.db.Where("user_id = ?", userID).Delete(&models.ForumBanModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBanNotFound
	}
	return nil
}

// List returns every ban row, newest first, with the banned user and the
// admin who issued it.
func (s *Service) List(q pagination.Query) ([]models.ForumBanModel, response.Pagination, error) {
	var bans []models.ForumBanModel
	db := s.db.Model(&models.ForumBanModel{}).
		Preload("User").Preload("BannedBy").
		Order("banned_at DESC")
	meta, err := pagination.Paginate[models.ForumBanModel](db, q, &bans)
	if err != nil {
		return nil, meta, err
	}
	return bans, meta, nil
}
