package models

import "time"

// ForumCategoryModel groups threads; names carry both locales.
type ForumCategoryModel struct {
	Base
	Name         string `json:"name"         gorm:"uniqueIndex;not null"`
	NameAr       string `json:"nameAr,omitempty"`
	Slug         string `json:"slug"         gorm:"uniqueIndex;not null"`
	Description  string `json:"description,omitempty"`
	Color        string `json:"color"        gorm:"type:varchar(7);default:'#16a34a'"`
	DisplayOrder int    `json:"order"        gorm:"column:display_order;default:0"`
	IsActive     bool   `json:"isActive"     gorm:"default:true;index"`

	Threads []ForumThreadModel `json:"threads,omitempty" gorm:"foreignKey:CategoryID"`
}

func (ForumCategoryModel) TableName() string { return "forum_categories" }

// ThreadStatus is the thread lifecycle state. Deleted is terminal; locking
// toggles between active and locked. Pinning is tracked separately so a
// locked thread can stay pinned.
type ThreadStatus string

const (
	ThreadActive  ThreadStatus = "active"
	ThreadLocked  ThreadStatus = "locked"
	ThreadDeleted ThreadStatus = "deleted"
)

// ForumThreadModel is a top-level discussion.
type ForumThreadModel struct {
	Base
	Title      string       `json:"title"      gorm:"not null"`
	Content    string       `json:"content"    gorm:"type:text;not null"`
	Slug       string       `json:"slug"       gorm:"uniqueIndex;not null"`
	CategoryID string       `json:"categoryId" gorm:"index;not null"`
	AuthorID   string       `json:"authorId"   gorm:"index;not null"`
	Status     ThreadStatus `json:"status"     gorm:"type:varchar(16);default:'active';index"`
	Pinned     bool         `json:"isPinned"   gorm:"default:false"`
	ViewCount  int          `json:"viewCount"  gorm:"default:0"`
	ReplyCount int          `json:"replyCount" gorm:"default:0"`
	// LastReplyAt drives the default listing order; set to the creation time
	// on insert so threads without replies still sort sensibly.
	LastReplyAt time.Time  `json:"lastReplyAt" gorm:"index"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
	DeletedByID *string    `json:"deletedById,omitempty"`

	Author   *UserModel          `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	Category *ForumCategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Replies  []ForumReplyModel   `json:"replies,omitempty"  gorm:"foreignKey:ThreadID"`
}

func (ForumThreadModel) TableName() string { return "forum_threads" }

// IsLocked reports whether new replies are blocked.
func (t ForumThreadModel) IsLocked() bool { return t.Status == ThreadLocked }

// IsDeleted reports whether the thread is soft-deleted.
func (t ForumThreadModel) IsDeleted() bool { return t.Status == ThreadDeleted }

// ForumReplyModel is a response attached to a thread. A non-nil DeletedAt
// marks the reply soft-deleted; the row is retained for audit.
type ForumReplyModel struct {
	Base
	Content     string     `json:"content"  gorm:"type:text;not null"`
	ThreadID    string     `json:"threadId" gorm:"index;not null"`
	AuthorID    string     `json:"authorId" gorm:"index;not null"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty" gorm:"index"`
	DeletedByID *string    `json:"deletedById,omitempty"`

	Author *UserModel        `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Thread *ForumThreadModel `json:"-"                gorm:"foreignKey:ThreadID"`
}

func (ForumReplyModel) TableName() string { return "forum_replies" }

// IsDeleted reports whether the reply is soft-deleted.
func (r ForumReplyModel) IsDeleted() bool { return r.DeletedAt != nil }

// ForumBanModel bars a user from posting. At most one row per user; re-banning
// overwrites the existing row.
type ForumBanModel struct {
	Base
	UserID      string     `json:"userId"      gorm:"uniqueIndex;not null"`
	Reason      string     `json:"reason"      gorm:"not null"`
	IsPermanent bool       `json:"isPermanent" gorm:"default:false"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	BannedByID  string     `json:"bannedById"  gorm:"not null"`
	BannedAt    time.Time  `json:"bannedAt"    gorm:"not null"`

	User     *UserModel `json:"user,omitempty"     gorm:"foreignKey:UserID"`
	BannedBy *UserModel `json:"bannedBy,omitempty" gorm:"foreignKey:BannedByID"`
}

func (ForumBanModel) TableName() string { return "forum_bans" }

// InEffect computes whether the ban currently applies. Expiry is derived from
// the stored timestamp on every check; there is no background sweep and no
// persisted active flag.
func (b ForumBanModel) InEffect(now time.Time) bool {
	if b.IsPermanent {
		return true
	}
	if b.ExpiresAt == nil {
		return true
	}
	return b.ExpiresAt.After(now)
}
