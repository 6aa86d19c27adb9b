package models

import "time"

// UserSession is a server-side login session bound into the JWT.
type UserSession struct {
	Base
	UserID    string     `json:"-"         gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"        gorm:"type:varchar(512)"`
	ExpiresAt time.Time  `json:"expiresAt" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revokedAt" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
