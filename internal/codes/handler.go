package codes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/pkg/middleware"
)

// CreateRequest is the decoded body for code creation. The owner comes from
// the authenticated identity, never from the body.
type CreateRequest struct {
	Language string `json:"language"`
	Body     string `json:"body"`
}

// Handler exposes the code CRUD routes
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Register mounts the routes; every code route sits behind the auth gate.
func (h *Handler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	g := r.Group("/codes", auth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		abort(c, apperror.NewUnauthenticated("authentication required", nil))
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperror.NewValidation("invalid request body", err))
		return
	}
	created, err := h.svc.Create(c.Request.Context(), claims, req.Language, req.Body)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	code, err := h.svc.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (h *Handler) Update(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abort(c, apperror.NewValidation("invalid request body", err))
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), claims, c.Param("id"), patch); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) Delete(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), claims, id); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
