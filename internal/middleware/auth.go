package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alwasl/core/internal/models"
	jwtpkg "github.com/alwasl/core/internal/pkg/jwt"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/session"
)

const (
	// CtxUserID is the gin context key for the authenticated user's ID.
	CtxUserID = "uid"
	// CtxUser is the gin context key for the loaded user model.
	CtxUser = "user"
	// CtxSessionID is the gin context key for the JWT's session binding.
	CtxSessionID = "sid"
)

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}

func resolveUser(c *gin.Context, db *gorm.DB) (*models.UserModel, string, bool) {
	token := extractToken(c)
	if token == "" {
		return nil, "", false
	}

	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return nil, "", false
	}

	active, err := session.IsActive(db, claims.UserID, claims.SessionID)
	if err != nil || !active {
		return nil, "", false
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Error(err)
		}
		return nil, "", false
	}
	if user.Status != models.StatusActive {
		return nil, "", false
	}
	return &user, claims.SessionID, true
}

// Auth requires a valid JWT bound to a live session and an active user.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, sid, ok := resolveUser(c, db)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(CtxUserID, user.ID)
		c.Set(CtxUser, user)
		c.Set(CtxSessionID, sid)
		c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present but lets
// anonymous requests pass through.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, sid, ok := resolveUser(c, db); ok {
			c.Set(CtxUserID, user.ID)
			c.Set(CtxUser, user)
			c.Set(CtxSessionID, sid)
		}
		c.Next()
	}
}

// RequireAdmin must run after Auth and rejects non-admin users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.UserModel {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*models.UserModel); ok {
			return u
		}
	}
	return nil
}

// CurrentUserID returns the authenticated user's ID, or "".
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}
