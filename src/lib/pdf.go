package lib

import (
	"bytes"
	"fmt"

	"hbs/src/types"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceRenderer turns a flat invoice record into document bytes. Layout
// is an output concern; workflows only ever see this contract.
type InvoiceRenderer interface {
	RenderInvoice(record *types.InvoiceRecord) ([]byte, error)
}

type pdfInvoiceRenderer struct{}

func NewInvoiceRenderer() InvoiceRenderer {
	return &pdfInvoiceRenderer{}
}

func (r *pdfInvoiceRenderer) RenderInvoice(record *types.InvoiceRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "Hotel Booking Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	rows := []struct {
		label string
		value string
	}{
		{"Invoice No:", record.InvoiceNo},
		{"Customer:", record.CustomerName},
		{"Hotel:", fmt.Sprintf("%s\n%s", record.HotelName, record.HotelAddress)},
		{"Check-in:", record.CheckIn.String()},
		{"Check-out:", record.CheckOut.String()},
		{"Room Type:", record.RoomType},
		{"Guests:", fmt.Sprintf("%d", record.Guests)},
		{"Total Price:", fmt.Sprintf("$%.2f", record.TotalPrice)},
		{"Date:", record.Date.String()},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(55, 8, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, row.value, "", "L", false)
	}

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Thank you for your booking!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
