package thread

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the thread endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the thread routes under /forum/threads. Listing and
// detail are public; creation needs an account; moderation needs an admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/forum/threads")
	{
		grp.GET("", h.list)
		grp.GET("/:id", h.get)
		grp.POST("", auth, h.create)
		grp.PATCH("/:id", auth, middleware.RequireAdmin(), h.moderate)
	}
}

func (h *Handler) list(c *gin.Context) {
	threads, meta, err := h.svc.List(c.Query("categoryId"), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"threads": threads, "pagination": meta})
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Discussion introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, t)
}

type createRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	t, err := h.svc.Create(middleware.CurrentUserID(c), req.CategoryID, req.Title, req.Content)
	if err != nil {
		var banned *BannedError
		var fields *FieldsError
		switch {
		case errors.As(err, &banned):
			response.ForbiddenReason(c, "Vous êtes banni du forum", banned.Reason)
		case errors.As(err, &fields):
			response.ValidationFailed(c, fields.Details)
		case errors.Is(err, ErrCategoryNotFound):
			response.NotFoundMsg(c, "Catégorie introuvable")
		case errors.Is(err, ErrCategoryInactive):
			response.ForbiddenMsg(c, "Cette catégorie est fermée")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, t)
}

type moderateRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *Handler) moderate(c *gin.Context) {
	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	t, err := h.svc.Moderate(c.Param("id"), req.Action, middleware.CurrentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFoundMsg(c, "Discussion introuvable")
		case errors.Is(err, ErrUnknownAction):
			response.BadRequest(c, "Action inconnue")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, t)
}
