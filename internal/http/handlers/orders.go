package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/http/validation"
	"github.com/dchamindu826/norcal-dubs/internal/jsonstore"
	"github.com/dchamindu826/norcal-dubs/internal/modules/orders"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
	"github.com/dchamindu826/norcal-dubs/internal/storage"
)

// slip uploads are buyer screenshots; anything bigger than this is junk
const maxSlipBytes = 10 << 20

type OrdersHandler struct {
	Svc   *orders.Service
	Files storage.Storage
}

func NewOrdersHandler(svc *orders.Service, files storage.Storage) *OrdersHandler {
	return &OrdersHandler{Svc: svc, Files: files}
}

type createOrderInput struct {
	CustomerName  string `form:"customerName" binding:"required,max=100"`
	Telegram      string `form:"telegram" binding:"required,max=64"`
	Phone         string `form:"phone" binding:"required,max=32"`
	Address       string `form:"address" binding:"required,max=500"`
	Notes         string `form:"notes" binding:"omitempty,max=1000"`
	Total         string `form:"total" binding:"required"`
	PaymentMethod string `form:"paymentMethod" binding:"required"`
	Items         string `form:"items" binding:"required"`
}

// Create handles POST /api/orders: multipart form with the checkout
// fields, the cart snapshot as a JSON string, and an optional slip image.
func (h *OrdersHandler) Create(c *gin.Context) {
	var in createOrderInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("Please fill in all required fields.", errs))
		return
	}

	// The total is asserted by the buyer and verified by a human against
	// the actual payment; the server records it as sent.
	total, err := strconv.ParseFloat(strings.TrimSpace(in.Total), 64)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid total.", nil))
		return
	}

	var items []orders.OrderItem
	if err := json.Unmarshal([]byte(in.Items), &items); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart items.", nil))
		return
	}
	if len(items) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Cart is empty.", nil))
		return
	}

	slipKey, slipBytes, err := h.storeSlip(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	o, err := h.Svc.Create(c.Request.Context(), orders.CreateInput{
		Customer: orders.Customer{
			Name:     strings.TrimSpace(in.CustomerName),
			Telegram: strings.TrimSpace(in.Telegram),
			Phone:    strings.TrimSpace(in.Phone),
			Address:  strings.TrimSpace(in.Address),
			Notes:    strings.TrimSpace(in.Notes),
		},
		Items:         items,
		Total:         total,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		SlipKey:       slipKey,
		SlipBytes:     slipBytes,
	})
	if err != nil {
		if errors.Is(err, orders.ErrNoItems) {
			middleware.Fail(c, apperr.InvalidErr("Cart is empty.", nil))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": o.ID})
}

// storeSlip uploads the optional payment proof and returns its stored key
// plus the raw bytes for the notification attachment.
func (h *OrdersHandler) storeSlip(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile("slip")
	if err != nil {
		return "", nil, nil // no slip attached
	}
	if fh.Size > maxSlipBytes {
		return "", nil, apperr.InvalidErr("Payment proof is too large.", nil)
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, apperr.Wrap(err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxSlipBytes+1))
	if err != nil {
		return "", nil, apperr.Wrap(err)
	}

	res, err := h.Files.Put(c.Request.Context(), bytes.NewReader(raw), storage.PutInput{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
	})
	if err != nil {
		return "", nil, apperr.Wrap(err)
	}
	return res.Key, raw, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// List handles GET /api/orders (admin): the full collection, newest first.
// Filtering and search stay client-side projections.
func (h *OrdersHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	c.JSON(http.StatusOK, list)
}

type updateOrderInput struct {
	Status    string `json:"status" binding:"required"`
	AdminNote string `json:"adminNote"`
}

// Update handles PUT /api/orders/:id (admin): status and note only.
func (h *OrdersHandler) Update(c *gin.Context) {
	id, err := parseOrderID(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid order id.", nil))
		return
	}

	var in updateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid update payload.", nil))
		return
	}

	err = h.Svc.Update(c.Request.Context(), id, orders.UpdateInput{
		Status:    orders.Status(in.Status),
		AdminNote: in.AdminNote,
	})
	switch {
	case errors.Is(err, jsonstore.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
	case errors.Is(err, orders.ErrUnknownStatus):
		middleware.Fail(c, apperr.InvalidErr(fmt.Sprintf("Unknown status %q.", in.Status), nil))
	case err != nil:
		middleware.Fail(c, apperr.Wrap(err))
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Delete handles DELETE /api/orders/:id (admin): hard delete.
func (h *OrdersHandler) Delete(c *gin.Context) {
	id, err := parseOrderID(c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid order id.", nil))
		return
	}

	err = h.Svc.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, jsonstore.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
	case err != nil:
		middleware.Fail(c, apperr.Wrap(err))
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func parseOrderID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}
