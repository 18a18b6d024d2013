package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/auth"
	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/admins"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
)

type AuthHandler struct {
	Svc    *admins.Service
	Tokens *auth.Tokens
}

func NewAuthHandler(svc *admins.Service, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{Svc: svc, Tokens: tokens}
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login and returns a bearer token for the admin
// panel.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Username and password are required.", nil))
		return
	}

	a, err := h.Svc.Login(c.Request.Context(), in.Username, in.Password)
	if errors.Is(err, admins.ErrBadCredentials) {
		middleware.Fail(c, apperr.UnauthorizedErr("Invalid username or password."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	token, err := h.Tokens.Issue(a.Username)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

type adminView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ListAdmins strips the password hashes before responding.
func (h *AuthHandler) ListAdmins(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]adminView, 0, len(list))
	for _, a := range list {
		out = append(out, adminView{ID: a.ID, Username: a.Username})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Username and password are required.", nil))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		middleware.Fail(c, apperr.ConflictErr("Could not create admin."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": adminView{ID: a.ID, Username: a.Username}})
}

func (h *AuthHandler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid admin id.", nil))
		return
	}
	err = h.Svc.Delete(c.Request.Context(), id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Admin not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type gateInput struct {
	Password string `json:"password" binding:"required"`
}

// VerifyGate handles POST /api/gate/verify: the shared entry-screen check.
// The password never leaves the server; the client only learns pass/fail.
func (h *AuthHandler) VerifyGate(c *gin.Context) {
	var in gateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Password is required.", nil))
		return
	}
	ok, err := h.Svc.VerifyGate(c.Request.Context(), in.Password)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// UpdateGate handles PUT /api/gate (admin).
func (h *AuthHandler) UpdateGate(c *gin.Context) {
	var in gateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Password is required.", nil))
		return
	}
	if err := h.Svc.SetGate(c.Request.Context(), in.Password); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
