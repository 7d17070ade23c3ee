package reports

import "time"

// Report type and format identifiers accepted by the export endpoint.
const (
	ReportTypeAssets   = "assets"
	ReportTypeRequests = "requests"

	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// TypeCount is a per-asset-type request count.
type TypeCount struct {
	AssetType string `json:"assetType"`
	Count     int64  `json:"count"`
}

// AssetCount is a per-asset request count, used for the top-requested list.
type AssetCount struct {
	AssetName string `json:"assetName"`
	Count     int64  `json:"count"`
}

// Analytics is the aggregate served by GET /hr/analytics.
type Analytics struct {
	CompanyName    string       `json:"companyName"`
	TotalRequests  int64        `json:"totalRequests"`
	PendingCount   int64        `json:"pendingCount"`
	RequestsByType []TypeCount  `json:"requestsByType"`
	TopAssets      []AssetCount `json:"topAssets"`
}

// AssetInventoryRow is one line of the asset inventory report.
type AssetInventoryRow struct {
	ID                uint      `json:"id"`
	ProductName       string    `json:"productName"`
	ProductType       string    `json:"productType"`
	ProductQuantity   int       `json:"productQuantity"`
	AvailableQuantity int       `json:"availableQuantity"`
	CompanyName       string    `json:"companyName"`
	DateAdded         time.Time `json:"dateAdded"`
}

// RequestHistoryRow is one line of the request history report.
type RequestHistoryRow struct {
	ID          uint      `json:"id"`
	AssetName   string    `json:"assetName"`
	AssetType   string    `json:"assetType"`
	UserEmail   string    `json:"userEmail"`
	Status      string    `json:"status"`
	RequestDate time.Time `json:"requestDate"`
}

// ReportData carries the rows for whichever report is being exported.
type ReportData struct {
	Assets   []AssetInventoryRow
	Requests []RequestHistoryRow
}

// ExportRequest describes one export download.
type ExportRequest struct {
	Type    string
	Format  string
	HREmail string
}
