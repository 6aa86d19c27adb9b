package category

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the category endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts public listing and admin CRUD under /forum/categories.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	grp := rg.Group("/forum/categories")
	{
		grp.GET("", optional, h.list)

		admin := grp.Group("", auth, middleware.RequireAdmin())
		{
			admin.POST("", h.create)
			admin.PUT("/:id", h.update)
			admin.DELETE("/:id", h.remove)
		}
	}
}

func (h *Handler) list(c *gin.Context) {
	user := middleware.CurrentUser(c)
	cats, err := h.svc.List(user != nil && user.IsAdmin())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"categories": cats})
}

type createRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=50"`
	NameAr       string `json:"nameAr" binding:"omitempty,max=50"`
	Slug         string `json:"slug" binding:"omitempty,min=2,max=50"`
	Description  string `json:"description" binding:"omitempty,max=500"`
	Color        string `json:"color" binding:"omitempty,hexcolor"`
	DisplayOrder int    `json:"order"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	cat, err := h.svc.Create(CreateInput{
		Name:         req.Name,
		NameAr:       req.NameAr,
		Slug:         req.Slug,
		Description:  req.Description,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(c, "Une catégorie avec ce nom ou ce slug existe déjà")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, cat)
}

type updateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=50"`
	NameAr       *string `json:"nameAr" binding:"omitempty,max=50"`
	Description  *string `json:"description" binding:"omitempty,max=500"`
	Color        *string `json:"color" binding:"omitempty,hexcolor"`
	DisplayOrder *int    `json:"order"`
	IsActive     *bool   `json:"isActive"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	cat, err := h.svc.Update(c.Param("id"), UpdateInput{
		Name:         req.Name,
		NameAr:       req.NameAr,
		Description:  req.Description,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) remove(c *gin.Context) {
	err := h.svc.Delete(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, ErrHasThreads):
			response.Conflict(c, "La catégorie contient des discussions, désactivez-la plutôt")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"success": true})
}
