package payment

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// renderReceiptPDF builds a single-page receipt for a ledger row.
func renderReceiptPDF(p *Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "AssetVerse Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	paidAt := "-"
	if p.PaymentDate != nil {
		paidAt = p.PaymentDate.Format(time.RFC1123)
	}

	rows := [][2]string{
		{"Receipt No", p.ReceiptNo},
		{"Order ID", p.OrderID},
		{"Transaction ID", p.TransactionID},
		{"Billed To", p.HREmail},
		{"Package", p.PackageName},
		{"Employee Limit", fmt.Sprintf("%d", p.EmployeeLimit)},
		{"Amount", fmt.Sprintf("%.2f %s", p.Amount, p.Currency)},
		{"Status", p.Status},
		{"Paid At", paidAt},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s", time.Now().Format("2006-01-02 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
