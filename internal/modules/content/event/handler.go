package event

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the event endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public listing and the admin CRUD.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/events", h.listPublished)

	admin := rg.Group("/admin/events", auth, middleware.RequireAdmin())
	{
		admin.GET("", h.listAll)
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.remove)
	}
}

func (h *Handler) listPublished(c *gin.Context) {
	events, meta, err := h.svc.ListPublished(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"events": events, "pagination": meta})
}

func (h *Handler) listAll(c *gin.Context) {
	events, meta, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"events": events, "pagination": meta})
}

type eventRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	TitleAr     string `json:"titleAr" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	EventDate   string `json:"eventDate" binding:"required,datetime=2006-01-02"`
	Location    string `json:"location" binding:"omitempty,max=200"`
	IsPublished bool   `json:"isPublished"`
}

func (r eventRequest) toInput() Input {
	date, _ := time.Parse("2006-01-02", r.EventDate)
	return Input{
		Title:       r.Title,
		TitleAr:     r.TitleAr,
		Description: r.Description,
		EventDate:   date,
		Location:    r.Location,
		IsPublished: r.IsPublished,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	e, err := h.svc.Create(req.toInput())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, e)
}

func (h *Handler) update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	e, err := h.svc.Update(c.Param("id"), req.toInput())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Événement introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, e)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Événement introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
