// Package newsletter sends admin campaigns to opted-in members and keeps the
// campaign history.
package newsletter

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/mail"
)

var (
	ErrMailDisabled = errors.New("mail transport not configured")
	ErrNoRecipients = errors.New("no recipients match the target")
	ErrBadTarget    = errors.New("unknown campaign target")
)

// Campaign targets.
const (
	TargetAll           = "all"
	TargetMembers       = "members"
	TargetProfessionals = "professionals"
	TargetActive        = "active"
)

// Service owns campaign sending, the weekly document and history.
type Service struct {
	db      *gorm.DB
	mailer  *mail.Sender
	baseURL string
	log     *zap.Logger
}

func NewService(db *gorm.DB, mailer *mail.Sender, baseURL string, log *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, baseURL: baseURL, log: log}
}

// SendInput is a validated campaign request.
type SendInput struct {
	Target        string
	Subject       string
	Message       string
	IncludeHeader bool
	IncludeFooter bool
	SentByID      string
}

// Result summarizes a sent campaign.
type Result struct {
	Sent   int      `json:"sent"`
	Total  int      `json:"total"`
	Failed []string `json:"failed,omitempty"`
}

// Send renders the campaign and mails it to every matching opted-in user.
// Individual delivery failures are collected, not fatal; the history row
// records how many went out.
func (s *Service) Send(in SendInput) (*Result, error) {
	if !s.mailer.Enabled() {
		return nil, ErrMailDisabled
	}

	recipients, err := s.recipients(in.Target)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	body, err := renderMarkdown(in.Message)
	if err != nil {
		return nil, err
	}
	html := buildCampaignHTML(body, in.IncludeHeader, in.IncludeFooter)

	res := &Result{Total: len(recipients)}
	for _, u := range recipients {
		err := s.mailer.Send(mail.Message{
			To:      u.Email,
			Subject: in.Subject,
			HTML:    personalize(html, u.FirstName),
		})
		if err != nil {
			s.log.Warn("campaign mail failed", zap.String("to", u.Email), zap.Error(err))
			res.Failed = append(res.Failed, u.Email)
			continue
		}
		res.Sent++
	}

	record := models.NewsletterModel{
		Subject:    in.Subject,
		Content:    in.Message,
		Target:     in.Target,
		SentCount:  res.Sent,
		TotalCount: res.Total,
		SentByID:   in.SentByID,
		SentAt:     time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) recipients(target string) ([]models.UserModel, error) {
	q := s.db.Where("newsletter_opt_in = ?", true)
	switch target {
	case TargetAll:
	case TargetMembers:
		q = q.Where("role = ?", models.RoleMember)
	case TargetProfessionals:
		q = q.Where("role = ?", models.RoleProfessional)
	case TargetActive:
		q = q.Where("status = ?", models.StatusActive)
	default:
		return nil, ErrBadTarget
	}

	var users []models.UserModel
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// History returns past campaigns newest first.
func (s *Service) History(limit int) ([]models.NewsletterModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var campaigns []models.NewsletterModel
	err := s.db.Order("created_at DESC").Limit(limit).Find(&campaigns).Error
	return campaigns, err
}

// Preview is the composition data block: fresh articles, upcoming events,
// audience size and recent campaigns.
type Preview struct {
	Articles      []models.ArticleModel    `json:"articles"`
	Events        []models.EventModel      `json:"events"`
	MemberCount   int64                    `json:"memberCount"`
	LastCampaigns []models.NewsletterModel `json:"lastCampaigns"`
}

// ComposePreview gathers the data shown when composing a campaign.
func (s *Service) ComposePreview() (*Preview, error) {
	p := &Preview{}

	err := s.db.Where("is_published = ?", true).
		Order("published_at DESC").Limit(5).
		Find(&p.Articles).Error
	if err != nil {
		return nil, err
	}

	if p.Events, err = s.upcomingEvents(5); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.UserModel{}).
		Where("newsletter_opt_in = ?", true).
		Count(&p.MemberCount).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Order("created_at DESC").Limit(5).Find(&p.LastCampaigns).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) upcomingEvents(limit int) ([]models.EventModel, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var events []models.EventModel
	err := s.db.Where("is_published = ? AND event_date >= ?", true, today).
		Order("event_date ASC").Limit(limit).
		Find(&events).Error
	return events, err
}

// Document renders the printable weekly bulletin: the curated links plus the
// next published events and the latest published articles.
func (s *Service) Document(links []NewsLink) (string, error) {
	events, err := s.upcomingEvents(5)
	if err != nil {
		return "", err
	}

	var articles []models.ArticleModel
	err = s.db.Where("is_published = ?", true).
		Order("published_at DESC").Limit(5).
		Find(&articles).Error
	if err != nil {
		return "", err
	}

	return buildDocumentHTML(links, events, articles, s.baseURL)
}
