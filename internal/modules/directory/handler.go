package directory

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/pagination"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the directory endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts public browsing, owner self-service and the admin
// publish toggle.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/directory")
	{
		grp.GET("", h.list)
		grp.PUT("/me", auth, h.updateOwn)
		grp.GET("/:slug", h.get)
	}
	rg.PATCH("/admin/directory/:id/publish", auth, middleware.RequireAdmin(), h.setPublished)
}

func (h *Handler) list(c *gin.Context) {
	profiles, meta, err := h.svc.List(c.Query("category"), pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"profiles": profiles, "pagination": meta})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Profil introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

type updateRequest struct {
	Profession        *string `json:"profession" binding:"omitempty,min=2,max=100"`
	Category          *string `json:"category" binding:"omitempty,min=2,max=50"`
	CompanyName       *string `json:"companyName" binding:"omitempty,max=150"`
	Description       *string `json:"description" binding:"omitempty,max=2000"`
	Address           *string `json:"address" binding:"omitempty,max=200"`
	City              *string `json:"city" binding:"omitempty,max=100"`
	PostalCode        *string `json:"postalCode" binding:"omitempty,max=10"`
	ProfessionalPhone *string `json:"professionalPhone" binding:"omitempty,max=30"`
	ProfessionalEmail *string `json:"professionalEmail" binding:"omitempty,email"`
	Website           *string `json:"website" binding:"omitempty,url"`
}

func (h *Handler) updateOwn(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	p, err := h.svc.UpdateOwn(middleware.CurrentUserID(c), UpdateInput{
		Profession:        req.Profession,
		Category:          req.Category,
		CompanyName:       req.CompanyName,
		Description:       req.Description,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		ProfessionalPhone: req.ProfessionalPhone,
		ProfessionalEmail: req.ProfessionalEmail,
		Website:           req.Website,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Profil introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

type publishRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

func (h *Handler) setPublished(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		response.ValidationFailed(c, map[string]string{"isPublished": "Valeur booléenne requise"})
		return
	}

	p, err := h.svc.SetPublished(c.Param("id"), *req.IsPublished)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Profil introuvable")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}
