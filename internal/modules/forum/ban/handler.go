package ban

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the admin ban endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the ban registry under /forum/bans. Every route is
// admin only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/forum/bans", auth, middleware.RequireAdmin())
	{
		grp.GET("", h.list)
		grp.POST("", h.upsert)
		grp.DELETE("/:userId", h.remove)
	}
}

type upsertRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Reason       string `json:"reason" binding:"required,min=5,max=500"`
	IsPermanent  bool   `json:"isPermanent"`
	DurationDays *int   `json:"durationDays" binding:"omitempty,gte=1,lte=365"`
}

func (h *Handler) upsert(c *gin.Context) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}
	if !req.IsPermanent && req.DurationDays == nil {
		response.ValidationFailed(c, map[string]string{
			"durationDays": "Durée requise pour un bannissement temporaire",
		})
		return
	}

	in := UpsertInput{
		UserID:      req.UserID,
		Reason:      req.Reason,
		IsPermanent: req.IsPermanent,
		AdminID:     middleware.CurrentUserID(c),
	}
	if req.DurationDays != nil {
		in.DurationDays = *req.DurationDays
	}

	b, err := h.svc.Upsert(in)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFoundMsg(c, "Utilisateur introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Remove(c.Param("userId"))
	if err != nil {
		if errors.Is(err, ErrBanNotFound) {
			response.NotFoundMsg(c, "Bannissement introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) list(c *gin.Context) {
	bans, meta, err := h.svc.List(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"bans": bans, "pagination": meta})
}
