package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codebin/codebin/internal/apperror"
	"github.com/codebin/codebin/internal/models"
)

// CreateRequest is the decoded body for user creation. Unknown fields are
// ignored by the JSON decoder; required fields are enforced by the service.
// The role is deliberately absent: identities created over the wire are
// always plain users, admin accounts are provisioned out of band.
type CreateRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Country string `json:"country"`
}

// Handler exposes the user CRUD routes
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Register mounts the routes. Reads and creation stay open; mutating an
// existing user requires the auth gate.
func (h *Handler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.GET("/users/:id", h.Get)
	r.PATCH("/users/:id", auth, h.Update)
	r.DELETE("/users/:id", auth, h.Delete)
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
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, apperror.NewValidation("invalid request body", err))
		return
	}
	u := &models.User{
		Email:   req.Email,
		Name:    req.Name,
		Age:     req.Age,
		Country: req.Country,
		Role:    models.RoleUser,
	}
	created, err := h.svc.Create(c.Request.Context(), u)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Update(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abort(c, apperror.NewValidation("invalid request body", err))
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// abort routes the failure into the error pipeline; handlers never shape
// error responses themselves.
func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
