// Package reply implements the forum reply lifecycle. Reply creation and
// deletion keep the parent thread's counter and activity stamp in step inside
// a single transaction.
package reply

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/modules/forum/ban"
	"github.com/alwasl/core/internal/modules/forum/thread"
	"github.com/alwasl/core/internal/pkg/text"
)

const (
	ContentMin = 5
	ContentMax = 3000
)

var (
	ErrNotFound       = errors.New("reply not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrThreadLocked   = errors.New("thread is locked")
	ErrForbidden      = errors.New("caller may not delete this reply")
)

// Service owns reply persistence.
type Service struct {
	db   *gorm.DB
	bans *ban.Service
}

func NewService(db *gorm.DB, bans *ban.Service) *Service {
	return &Service{db: db, bans: bans}
}

// Create posts a reply to a thread and bumps the thread's replyCount and
// lastReplyAt in the same transaction, so a failure leaves both untouched.
func (s *Service) Create(authorID, threadID, content string) (*models.ForumReplyModel, error) {
	b, err := s.bans.Active(authorID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return nil, &thread.BannedError{Reason: b.Reason}
	}

	var t models.ForumThreadModel
	err = s.db.Where("id = ? AND status <> ?", threadID, models.ThreadDeleted).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.IsLocked() {
		return nil, ErrThreadLocked
	}

	content = text.Sanitize(content)
	if n := len([]rune(content)); n < ContentMin || n > ContentMax {
		return nil, &thread.FieldsError{Details: map[string]string{
			"content": fmt.Sprintf("La réponse doit contenir entre %d et %d caractères", ContentMin, ContentMax),
		}}
	}

	r := models.ForumReplyModel{
		Content:  content,
		ThreadID: t.ID,
		AuthorID: authorID,
	}
	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		return tx.Model(&models.ForumThreadModel{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"reply_count":   gorm.Expr("reply_count + 1"),
				"last_reply_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").First(&r, "id = ?", r.ID).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete soft-deletes a reply. Only the author or an admin may delete; the
// thread counter decrements in the same transaction and never goes negative.
func (s *Service) Delete(replyID string, caller *models.UserModel) error {
	var r models.ForumReplyModel
	err := s.db.Where("id = ? AND deleted_at IS NULL", replyID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if caller == nil || (r.AuthorID != caller.ID && !caller.IsAdmin()) {
		return ErrForbidden
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ForumReplyModel{}).
			Where("id = ? AND deleted_at IS NULL", r.ID).
			Updates(map[string]interface{}{
				"deleted_at":    &now,
				"deleted_by_id": caller.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.ForumThreadModel{}).
			Where("id = ?", r.ThreadID).
			UpdateColumn("reply_count",
				gorm.Expr("CASE WHEN reply_count > 0 THEN reply_count - 1 ELSE 0 END")).Error
	})
}
