package models

import "time"

// ArticleModel is an association news article, written by admins. Content is
// markdown; rendering happens at the consumer (newsletter, front-end).
type ArticleModel struct {
	Base
	Title       string     `json:"title"       gorm:"not null"`
	Content     string     `json:"content"     gorm:"type:longtext;not null"`
	AuthorName  string     `json:"authorName"  gorm:"not null"`
	AuthorEmail string     `json:"authorEmail,omitempty"`
	IsPublished bool       `json:"isPublished" gorm:"default:false;index"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (ArticleModel) TableName() string { return "articles" }
