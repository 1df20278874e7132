package handlers

import (
	"bytes"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/reports"
	"github.com/harentsoaR/dentlab-api/internal/store"
)

// AccountingReport totals the orders of a doctor over a Jalali or ISO period.
// An order counts when its due date or its creation day falls in the period.
// format=xlsx answers with a workbook instead of JSON.
func (h *Handler) AccountingReport(c *gin.Context) {
	f := store.OrderFilter{Doctor: strings.TrimSpace(c.Query("doctor"))}
	for param, dst := range map[string]*time.Time{"from": &f.PeriodFrom, "to": &f.PeriodTo} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := jalali.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param + " date"})
			return
		}
		*dst = t
	}

	orders, err := h.Store.ListOrders(c.Request.Context(), f)
	if err != nil {
		storeError(c, err, "orders")
		return
	}
	report := reports.NewAccounting(orders)

	if c.Query("format") == "xlsx" {
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf); err != nil {
			log.Printf("accounting report: xlsx: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=accounting_report.xlsx")
		c.Data(http.StatusOK, reports.XLSXContentType, buf.Bytes())
		return
	}

	out := make([]orderResponse, 0, len(report.Orders))
	for _, o := range report.Orders {
		out = append(out, newOrderResponse(o))
	}
	resp := gin.H{
		"doctor":       f.Doctor,
		"orders":       out,
		"totalInvoice": report.TotalInvoice,
	}
	if !f.PeriodFrom.IsZero() {
		resp["from"] = jalali.FromTime(f.PeriodFrom).String()
	}
	if !f.PeriodTo.IsZero() {
		resp["to"] = jalali.FromTime(f.PeriodTo).String()
	}
	c.JSON(http.StatusOK, resp)
}
