package user

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes admin user management endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin user routes under /admin/users.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/admin/users", auth, middleware.RequireAdmin())
	{
		grp.GET("", h.list)
		grp.PATCH("/:id/status", h.setStatus)
		grp.PATCH("/:id/newsletter", h.setNewsletter)
	}
}

func (h *Handler) list(c *gin.Context) {
	users, meta, err := h.svc.List(ListFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}, pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"users": users, "pagination": meta})
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE SUSPENDED"`
}

func (h *Handler) setStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	user, err := h.svc.SetStatus(c.Param("id"), models.UserStatus(req.Status))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Utilisateur introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}

type newsletterRequest struct {
	NewsletterOptIn *bool `json:"newsletterOptIn" binding:"required"`
}

func (h *Handler) setNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewsletterOptIn == nil {
		response.ValidationFailed(c, map[string]string{
			"newsletterOptIn": "Valeur booléenne requise",
		})
		return
	}

	user, err := h.svc.SetNewsletterOptIn(c.Param("id"), *req.NewsletterOptIn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Utilisateur introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, user)
}
