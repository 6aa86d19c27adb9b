package models

import "time"

// NewsletterModel records a sent email campaign.
type NewsletterModel struct {
	Base
	Subject    string    `json:"subject"    gorm:"not null"`
	Content    string    `json:"content"    gorm:"type:longtext;not null"`
	Target     string    `json:"target"     gorm:"type:varchar(32);not null"`
	SentCount  int       `json:"sentCount"`
	TotalCount int       `json:"totalCount"`
	SentByID   string    `json:"sentById"   gorm:"not null"`
	SentAt     time.Time `json:"sentAt"     gorm:"not null"`
}

func (NewsletterModel) TableName() string { return "newsletters" }
