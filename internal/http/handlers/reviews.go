package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/reviews"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
)

type ReviewsHandler struct {
	Repo *reviews.Repo
}

func NewReviewsHandler(repo *reviews.Repo) *ReviewsHandler {
	return &ReviewsHandler{Repo: repo}
}

func (h *ReviewsHandler) List(c *gin.Context) {
	list, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if list == nil {
		list = []reviews.Review{}
	}
	c.JSON(http.StatusOK, list)
}

type reviewInput struct {
	Name   string `json:"name" binding:"required,max=100"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required,max=2000"`
}

func (h *ReviewsHandler) Create(c *gin.Context) {
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid review.", nil))
		return
	}
	rv, err := h.Repo.Insert(c.Request.Context(), reviews.Review{
		Name:   strings.TrimSpace(in.Name),
		Rating: in.Rating,
		Text:   strings.TrimSpace(in.Text),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "review": rv})
}

func (h *ReviewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid review id.", nil))
		return
	}
	err = h.Repo.Delete(c.Request.Context(), id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Review not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
