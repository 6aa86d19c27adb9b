package models

import "time"

// EventModel is an association event announced on the site and picked up by
// the weekly newsletter while its date is still ahead.
type EventModel struct {
	Base
	Title       string    `json:"title"       gorm:"not null"`
	TitleAr     string    `json:"titleAr,omitempty"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	EventDate   time.Time `json:"eventDate"   gorm:"index;not null"`
	Location    string    `json:"location,omitempty"`
	IsPublished bool      `json:"isPublished" gorm:"default:false;index"`
}

func (EventModel) TableName() string { return "events" }
