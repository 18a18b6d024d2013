package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
)

// Export handles GET /api/orders/export (admin): the order book as a
// spreadsheet for offline bookkeeping.
func (h *OrdersHandler) Export(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	headers := []string{
		"ID", "Date", "Customer", "Telegram", "Phone", "Address",
		"Items", "Total", "Payment", "Slip", "Status", "Admin Note",
	}
	headerRow := sheet.AddRow()
	for _, hd := range headers {
		headerRow.AddCell().SetValue(hd)
	}

	for _, o := range list {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID)
		row.AddCell().SetValue(o.Date)
		row.AddCell().SetValue(o.Customer.Name)
		row.AddCell().SetValue(o.Customer.Telegram)
		row.AddCell().SetValue(o.Customer.Phone)
		row.AddCell().SetValue(o.Customer.Address)

		var lines []string
		for _, it := range o.Items {
			lines = append(lines, fmt.Sprintf("%s x%d ($%g)", it.Name, it.Quantity, it.Price))
		}
		row.AddCell().SetValue(strings.Join(lines, "; "))
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(o.PaymentMethod)
		if o.Slip != nil {
			row.AddCell().SetValue(*o.Slip)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(o.AdminNote)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := file.Write(c.Writer); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
	}
}
