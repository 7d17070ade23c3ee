package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders report rows into a downloadable document.
type Exporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// Export returns the document bytes, a filename, and a MIME type.
func (e *exporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeAssets:
		return e.exportAssetsByFormat(format, timestamp, data.Assets)
	case ReportTypeRequests:
		return e.exportRequestsByFormat(format, timestamp, data.Requests)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

//// ============================
/// ASSET INVENTORY EXPORTS
//// ============================

func (e *exporter) exportAssetsByFormat(format, timestamp string, rows []AssetInventoryRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportAssetsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("asset_inventory_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportAssetsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("asset_inventory_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportAssetsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("asset_inventory_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for asset inventory: %s", format)
	}
}

func (e *exporter) exportAssetsCSV(rows []AssetInventoryRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Product Name", "Type", "Total Quantity", "Available Quantity", "Company", "Date Added"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.ID),
			r.ProductName,
			r.ProductType,
			fmt.Sprint(r.ProductQuantity),
			fmt.Sprint(r.AvailableQuantity),
			r.CompanyName,
			r.DateAdded.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportAssetsExcel(rows []AssetInventoryRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Asset Inventory"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Product Name", "Type", "Total Quantity", "Available Quantity", "Company", "Date Added"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.ProductName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.ProductType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.ProductQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.AvailableQuantity)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.CompanyName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.DateAdded.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportAssetsPDF(rows []AssetInventoryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Asset Inventory Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Product Name", "Type", "Total", "Available", "Company", "Date Added"}
	widths := []float64{15, 70, 35, 20, 25, 60, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.ProductType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprint(r.ProductQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprint(r.AvailableQuantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.CompanyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.DateAdded.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// REQUEST HISTORY EXPORTS
//// ============================

func (e *exporter) exportRequestsByFormat(format, timestamp string, rows []RequestHistoryRow) ([]byte, string, string, error) {
	switch format {
	case FormatCSV:
		data, err := e.exportRequestsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("request_history_%s.csv", timestamp), "text/csv", nil

	case FormatExcel:
		data, err := e.exportRequestsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("request_history_%s.xlsx", timestamp), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportRequestsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("request_history_%s.pdf", timestamp), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for request history: %s", format)
	}
}

func (e *exporter) exportRequestsCSV(rows []RequestHistoryRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	headers := []string{"ID", "Asset Name", "Asset Type", "Requester Email", "Status", "Request Date"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.ID),
			r.AssetName,
			r.AssetType,
			r.UserEmail,
			r.Status,
			r.RequestDate.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportRequestsExcel(rows []RequestHistoryRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Request History"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Asset Name", "Asset Type", "Requester Email", "Status", "Request Date"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.AssetName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.AssetType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.UserEmail)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.RequestDate.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportRequestsPDF(rows []RequestHistoryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Asset Request History Report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Asset Name", "Type", "Requester", "Status", "Request Date"}
	widths := []float64{15, 65, 35, 70, 30, 45}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, fmt.Sprint(r.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.AssetName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.AssetType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.UserEmail, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.RequestDate.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
