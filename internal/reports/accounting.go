// Package reports builds the lab's accounting report and its Excel export.
package reports

import (
	"fmt"
	"io"

	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the report.
const SheetName = "گزارش مالی"

// XLSXContentType is the MIME type of WriteXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []interface{}{
	"ID", "بیمار", "پزشک", "نوع سفارش", "تعداد واحد", "قیمت واحد",
	"قیمت کل", "تاریخ تحویل", "تاریخ ثبت",
}

// Accounting lists the orders of a period and what they are worth.
type Accounting struct {
	Orders       []models.Order `json:"orders"`
	TotalInvoice float64        `json:"totalInvoice"`
}

func NewAccounting(orders []models.Order) *Accounting {
	a := &Accounting{Orders: orders}
	if a.Orders == nil {
		a.Orders = []models.Order{}
	}
	for i := range a.Orders {
		a.TotalInvoice += a.Orders[i].TotalPrice()
	}
	return a
}

// WriteXLSX writes the report as a workbook: one row per order and a
// closing total row. Dates are Jalali.
func (a *Accounting) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, o := range a.Orders {
		due := ""
		if o.DueDate != nil {
			due = jalali.FromTime(*o.DueDate).String()
		}
		created := ""
		if !o.CreatedAt.IsZero() {
			created = jalali.FromTime(o.CreatedAt).String()
		}
		row := []interface{}{
			o.ID.Hex(), o.PatientName, o.Doctor, o.OrderType, o.UnitCount,
			o.Price, o.TotalPrice(), due, created,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(a.Orders)+2)
	total := []interface{}{"جمع", nil, nil, nil, nil, nil, a.TotalInvoice}
	if err := sw.SetRow(cell, total); err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}
