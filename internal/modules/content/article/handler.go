package article

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the article endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public listing and the admin CRUD.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/articles", h.listPublished)

	admin := rg.Group("/admin/articles", auth, middleware.RequireAdmin())
	{
		admin.GET("", h.listAll)
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.remove)
	}
}

func (h *Handler) listPublished(c *gin.Context) {
	articles, meta, err := h.svc.ListPublished(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"articles": articles, "pagination": meta})
}

func (h *Handler) listAll(c *gin.Context) {
	articles, meta, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"articles": articles, "pagination": meta})
}

type articleRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Content     string `json:"content" binding:"required,min=10"`
	AuthorName  string `json:"authorName" binding:"required,max=120"`
	AuthorEmail string `json:"authorEmail" binding:"omitempty,email"`
	IsPublished bool   `json:"isPublished"`
}

func (h *Handler) create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	a, err := h.svc.Create(Input{
		Title:       req.Title,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, a)
}

func (h *Handler) update(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	a, err := h.svc.Update(c.Param("id"), Input{
		Title:       req.Title,
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Article introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, a)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Article introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
