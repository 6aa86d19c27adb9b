package reply

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/modules/forum/thread"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the reply endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the reply routes under /forum/replies. Both routes
// require an account.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/forum/replies", auth)
	{
		grp.POST("", h.create)
		grp.DELETE("/:id", h.remove)
	}
}

type createRequest struct {
	ThreadID string `json:"threadId" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	r, err := h.svc.Create(middleware.CurrentUserID(c), req.ThreadID, req.Content)
	if err != nil {
		var banned *thread.BannedError
		var fields *thread.FieldsError
		switch {
		case errors.As(err, &banned):
			response.ForbiddenReason(c, "Vous êtes banni du forum", banned.Reason)
		case errors.As(err, &fields):
			response.ValidationFailed(c, fields.Details)
		case errors.Is(err, ErrThreadNotFound):
			response.NotFoundMsg(c, "Discussion introuvable")
		case errors.Is(err, ErrThreadLocked):
			response.ForbiddenMsg(c, "Cette discussion est verrouillée")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, r)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFoundMsg(c, "Réponse introuvable")
		case errors.Is(err, ErrForbidden):
			response.Forbidden(c)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"success": true})
}
