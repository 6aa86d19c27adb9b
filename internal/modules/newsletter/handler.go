package newsletter

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alwasl/core/internal/middleware"
	"github.com/alwasl/core/internal/pkg/response"
	"github.com/alwasl/core/internal/pkg/validate"
)

// Handler exposes the admin newsletter endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the campaign routes under /admin/newsletter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	grp := rg.Group("/admin/newsletter", auth, middleware.RequireAdmin())
	{
		grp.POST("/send", h.send)
		grp.POST("/document", h.document)
		grp.GET("/preview", h.preview)
		grp.GET("/history", h.history)
	}
}

type sendRequest struct {
	Target        string `json:"target" binding:"required,oneof=all members professionals active"`
	Subject       string `json:"subject" binding:"required,min=3,max=200"`
	Message       string `json:"message" binding:"required,min=10"`
	IncludeHeader *bool  `json:"includeHeader"`
	IncludeFooter *bool  `json:"includeFooter"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	// Header and footer default to included.
	includeHeader := req.IncludeHeader == nil || *req.IncludeHeader
	includeFooter := req.IncludeFooter == nil || *req.IncludeFooter

	res, err := h.svc.Send(SendInput{
		Target:        req.Target,
		Subject:       req.Subject,
		Message:       req.Message,
		IncludeHeader: includeHeader,
		IncludeFooter: includeFooter,
		SentByID:      middleware.CurrentUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoRecipients):
			response.BadRequest(c, "Aucun destinataire pour cette cible")
		case errors.Is(err, ErrBadTarget):
			response.BadRequest(c, "Cible inconnue")
		case errors.Is(err, ErrMailDisabled):
			response.InternalError(c, err)
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, res)
}

type documentRequest struct {
	CustomLinks []NewsLink `json:"customLinks" binding:"omitempty,max=10,dive"`
}

// document renders the weekly bulletin as a standalone HTML page the admin
// prints or saves as PDF.
func (h *Handler) document(c *gin.Context) {
	// An empty body means no curated links this week.
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ValidationFailed(c, validate.Details(err))
		return
	}

	html, err := h.svc.Document(req.CustomLinks)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"html": html,
		"date": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) preview(c *gin.Context) {
	p, err := h.svc.ComposePreview()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	campaigns, err := h.svc.History(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"campaigns": campaigns})
}
