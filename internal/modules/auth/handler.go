package auth

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/models"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the auth endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth routes under /auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/auth")
	{
		grp.POST("/register", h.register)
		grp.POST("/login", h.login)
		grp.POST("/logout", auth, h.logout)
		grp.GET("/me", auth, h.me)
		grp.DELETE("/account", auth, h.deleteAccount)
	}
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	FirstName  string `json:"firstName" binding:"required,min=1,max=80"`
	LastName   string `json:"lastName" binding:"required,min=1,max=80"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
	Role       string `json:"role" binding:"omitempty,oneof=MEMBER PROFESSIONAL"`
	Address    string `json:"address" binding:"omitempty,max=200"`
	City       string `json:"city" binding:"omitempty,max=100"`
	PostalCode string `json:"postalCode" binding:"omitempty,max=10"`

	Profession        string `json:"profession" binding:"omitempty,max=100"`
	Category          string `json:"category" binding:"omitempty,max=50"`
	CompanyName       string `json:"companyName" binding:"omitempty,max=150"`
	Description       string `json:"description" binding:"omitempty,max=2000"`
	ProfessionalPhone string `json:"professionalPhone" binding:"omitempty,max=30"`
	ProfessionalEmail string `json:"professionalEmail" binding:"omitempty,email"`
	Website           string `json:"website" binding:"omitempty,url"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	role := models.UserRole(req.Role)
	if role == models.RoleProfessional {
		details := map[string]string{}
		if req.Profession == "" {
			details["profession"] = "Profession requise pour un compte professionnel"
		}
		if req.Category == "" {
			details["category"] = "Catégorie requise pour un compte professionnel"
		}
		if len(details) > 0 {
			response.ValidationFailed(c, details)
			return
		}
	}

	user, err := h.svc.Register(RegisterInput{
		Email:             req.Email,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Role:              role,
		Address:           req.Address,
		City:              req.City,
		PostalCode:        req.PostalCode,
		Profession:        req.Profession,
		Category:          req.Category,
		CompanyName:       req.CompanyName,
		Description:       req.Description,
		ProfessionalPhone: req.ProfessionalPhone,
		ProfessionalEmail: req.ProfessionalEmail,
		Website:           req.Website,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.BadRequest(c, "Un compte existe déjà avec cet email")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{
		"message": "Inscription enregistrée, votre compte est en attente de validation",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	token, user, err := h.svc.Login(req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.AbortWithStatusJSON(401, gin.H{"ok": 0, "code": 401, "message": "Email ou mot de passe incorrect"})
		case errors.Is(err, ErrAccountPending):
			response.ForbiddenMsg(c, "Votre compte est en attente de validation")
		case errors.Is(err, ErrAccountSuspended):
			response.ForbiddenMsg(c, "Votre compte est suspendu")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) logout(c *gin.Context) {
	err := h.svc.Logout(middleware.CurrentUserID(c), c.GetString(middleware.CtxSessionID))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	if err := h.svc.DeleteAccount(middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
