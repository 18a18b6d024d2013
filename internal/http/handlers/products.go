package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/http/validation"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/products"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

const maxProductFiles = 8

type ProductsHandler struct {
	Repo  *products.Repo
	Files storage.Storage
}

func NewProductsHandler(repo *products.Repo, files storage.Storage) *ProductsHandler {
	return &ProductsHandler{Repo: repo, Files: files}
}

func (h *ProductsHandler) List(c *gin.Context) {
	list, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if list == nil {
		list = []products.Product{}
	}
	c.JSON(http.StatusOK, list)
}

type createProductInput struct {
	Name         string `form:"name" binding:"required,max=200"`
	Price        string `form:"price" binding:"required"`
	OfferPrice   string `form:"offerPrice" binding:"omitempty"`
	Category     string `form:"category" binding:"required,max=100"`
	Description  string `form:"description" binding:"omitempty,max=2000"`
	SpecialOffer string `form:"specialOffer" binding:"omitempty"`
}

// Create handles POST /api/products (admin): product fields plus up to 8
// media files, images and videos split by content type.
func (h *ProductsHandler) Create(c *gin.Context) {
	var in createProductInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Invalid product data.", errs))
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price < 0 {
		middleware.Fail(c, apperr.InvalidErr("Invalid price.", nil))
		return
	}
	offerPrice, _ := strconv.ParseFloat(strings.TrimSpace(in.OfferPrice), 64)

	form, err := c.MultipartForm()
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid upload.", nil))
		return
	}
	files := form.File["files"]
	if len(files) > maxProductFiles {
		files = files[:maxProductFiles]
	}

	var images, videos []string
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		ct := contentType(fh)
		res, err := h.Files.Put(c.Request.Context(), f, storage.PutInput{
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
		})
		f.Close()
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		switch {
		case strings.HasPrefix(ct, "video"):
			videos = append(videos, res.URL)
		default:
			images = append(images, res.URL)
		}
	}

	p := products.Product{
		ID:           time.Now().UnixMilli(),
		Name:         strings.TrimSpace(in.Name),
		Price:        price,
		OfferPrice:   offerPrice,
		Category:     strings.TrimSpace(in.Category),
		Description:  strings.TrimSpace(in.Description),
		Images:       images,
		Videos:       videos,
		SpecialOffer: in.SpecialOffer == "true", // FormData sends strings
	}
	if err := h.Repo.Insert(c.Request.Context(), p); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// Delete handles DELETE /api/products/:id (admin) and drops the product's
// media files along with the record.
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product id.", nil))
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), id)
	if errors.Is(err, jsonstore.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	for _, url := range append(removed.Images, removed.Videos...) {
		key := url[strings.LastIndex(url, "/")+1:]
		_ = h.Files.Delete(c.Request.Context(), key)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductsHandler) Categories(c *gin.Context) {
	cats, err := h.Repo.Categories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, cats)
}

type categoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *ProductsHandler) AddCategory(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Category name is required.", nil))
		return
	}
	if err := h.Repo.AddCategory(c.Request.Context(), strings.TrimSpace(in.Name)); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductsHandler) RemoveCategory(c *gin.Context) {
	name := c.Param("name")
	err := h.Repo.RemoveCategory(c.Request.Context(), name)
	if errors.Is(err, jsonstore.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr("Category not found."))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
