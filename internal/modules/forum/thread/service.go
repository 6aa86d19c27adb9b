// Package thread implements the forum thread lifecycle: creation, listing,
// detail fetch and admin moderation.
package thread

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/modules/forum/ban"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/text"
)

const (
	TitleMin   = 5
	TitleMax   = 150
	ContentMin = 20
	ContentMax = 5000
)

var (
	ErrNotFound         = errors.New("thread not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInactive = errors.New("category is inactive")
	ErrUnknownAction    = errors.New("unknown moderation action")
)

// BannedError blocks posting and carries the stored ban reason for the 403.
type BannedError struct {
	Reason string
}

func (e *BannedError) Error() string { return "author is banned: " + e.Reason }

// FieldsError reports per-field validation failures.
type FieldsError struct {
	Details map[string]string
}

func (e *FieldsError) Error() string { return fmt.Sprintf("invalid fields: %v", e.Details) }

// Service owns thread persistence and moderation.
type Service struct {
	db   *gorm.DB
	bans *ban.Service
}

func NewService(db *gorm.DB, bans *ban.Service) *Service {
	return &Service{db: db, bans: bans}
}

// Create opens a new thread. Validation runs on the sanitized title and
// content, so markup never counts toward the length bounds.
func (s *Service) Create(authorID, categoryID, title, content string) (*models.ForumThreadModel, error) {
	b, err := s.bans.Active(authorID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return nil, &BannedError{Reason: b.Reason}
	}

	var cat models.ForumCategoryModel
	if err := s.db.First(&cat, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, ErrCategoryInactive
	}

	title = text.Sanitize(title)
	content = text.Sanitize(content)

	details := map[string]string{}
	if n := len([]rune(title)); n < TitleMin || n > TitleMax {
		details["title"] = fmt.Sprintf("Le titre doit contenir entre %d et %d caractères", TitleMin, TitleMax)
	}
	if n := len([]rune(content)); n < ContentMin || n > ContentMax {
		details["content"] = fmt.Sprintf("Le contenu doit contenir entre %d et %d caractères", ContentMin, ContentMax)
	}
	if len(details) > 0 {
		return nil, &FieldsError{Details: details}
	}

	now := time.Now()
	t := models.ForumThreadModel{
		Title:       title,
		Content:     content,
		Slug:        text.ThreadSlug(title, now),
		CategoryID:  cat.ID,
		AuthorID:    authorID,
		Status:      models.ThreadActive,
		LastReplyAt: now,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").Preload("Category").First(&t, "id = ?", t.ID).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Get fetches a non-deleted thread by ID or slug with its author, category
// and non-deleted replies oldest first. Every successful fetch bumps the view
// counter atomically.
func (s *Service) Get(idOrSlug string) (*models.ForumThreadModel, error) {
	var t models.ForumThreadModel
	err := s.db.
		Preload("Author").
		Preload("Category").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL").Order("created_at ASC").Preload("Author")
		}).
		Where("(id = ? OR slug = ?) AND status <> ?", idOrSlug, idOrSlug, models.ThreadDeleted).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.ForumThreadModel{}).
		Where("id = ?", t.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return nil, err
	}
	t.ViewCount++
	return &t, nil
}

// List returns non-deleted threads, pinned first then by latest activity,
// optionally filtered by category.
func (s *Service) List(categoryID string, q pagination.Query) ([]models.ForumThreadModel, response.Pagination, error) {
	db := s.db.Model(&models.ForumThreadModel{}).
		Preload("Author").
		Preload("Category").
		Where("status <> ?", models.ThreadDeleted).
		Order("pinned DESC, last_reply_at DESC")
	if categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}

	var threads []models.ForumThreadModel
	meta, err := pagination.Paginate[models.ForumThreadModel](db, q, &threads)
	if err != nil {
		return nil, meta, err
	}
	return threads, meta, nil
}

// Moderation actions.
const (
	ActionPin    = "pin"
	ActionLock   = "lock"
	ActionDelete = "delete"
)

// Moderate applies an admin action to a thread. Pin and lock toggle; delete
// is terminal and removes the thread from all listings and lookups.
func (s *Service) Moderate(threadID, action, adminID string) (*models.ForumThreadModel, error) {
	var t models.ForumThreadModel
	err := s.db.Where("id = ? AND status <> ?", threadID, models.ThreadDeleted).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	switch action {
	case ActionPin:
		updates["pinned"] = !t.Pinned
	case ActionLock:
		if t.Status == models.ThreadLocked {
			updates["status"] = models.ThreadActive
		} else {
			updates["status"] = models.ThreadLocked
		}
	case ActionDelete:
		now := time.Now()
		updates["status"] = models.ThreadDeleted
		updates["deleted_at"] = &now
		updates["deleted_by_id"] = &adminID
	default:
		return nil, ErrUnknownAction
	}

	if err := s.db.Model(&t).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
