package models

import "time"

// UserRole is the account type.
type UserRole string

const (
	RoleMember       UserRole = "MEMBER"
	RoleProfessional UserRole = "PROFESSIONAL"
	RoleAdmin        UserRole = "ADMIN"
)

// UserStatus is the membership state of an account.
type UserStatus string

const (
	StatusPending   UserStatus = "PENDING"
	StatusActive    UserStatus = "ACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

// UserModel represents a registered member, professional or admin.
type UserModel struct {
	Base
	Email           string     `json:"email"           gorm:"uniqueIndex;not null"`
	PasswordHash    string     `json:"-"               gorm:"not null"`
	FirstName       string     `json:"firstName"       gorm:"not null"`
	LastName        string     `json:"lastName"        gorm:"not null"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city,omitempty"`
	PostalCode      string     `json:"postalCode,omitempty"`
	Role            UserRole   `json:"role"            gorm:"type:varchar(16);default:'MEMBER';index"`
	Status          UserStatus `json:"status"          gorm:"type:varchar(16);default:'PENDING';index"`
	EmailVerified   bool       `json:"emailVerified"   gorm:"default:false"`
	NewsletterOptIn bool       `json:"newsletterOptIn" gorm:"default:true"`
	LastLoginAt     *time.Time `json:"lastLoginAt"`
	LastLoginIP     string     `json:"-"`

	Profile *ProfessionalProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// Name returns the display name used across the API.
func (u UserModel) Name() string {
	return trimJoin(u.FirstName, u.LastName)
}

// IsAdmin reports whether the account has moderation privileges.
func (u UserModel) IsAdmin() bool { return u.Role == RoleAdmin }

func trimJoin(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

// ProfessionalProfile is the public directory entry of a professional member.
type ProfessionalProfile struct {
	Base
	UserID            string `json:"userId"            gorm:"uniqueIndex;not null"`
	Profession        string `json:"profession"        gorm:"not null"`
	Category          string `json:"category"          gorm:"not null;index"`
	CompanyName       string `json:"companyName,omitempty"`
	Description       string `json:"description,omitempty" gorm:"type:text"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	ProfessionalPhone string `json:"professionalPhone,omitempty"`
	ProfessionalEmail string `json:"professionalEmail,omitempty"`
	Website           string `json:"website,omitempty"`
	Slug              string `json:"slug"              gorm:"uniqueIndex;not null"`
	IsPublished       bool   `json:"isPublished"       gorm:"default:false;index"`

	User *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ProfessionalProfile) TableName() string { return "professional_profiles" }
