package models

// DashboardStats is the summary block shown on the dashboard.
type DashboardStats struct {
	TotalExperiments  int `json:"total_experiments"`
	ActiveExperiments int `json:"active_experiments"`
	TotalProtocols    int `json:"total_protocols"`
	TotalUsers        int `json:"total_users"`
	CompletedThisWeek int `json:"completed_this_week"`
}

// ExperimentStats aggregates experiments by status and priority.
type ExperimentStats struct {
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Overdue    int            `json:"overdue"`
}

// ProtocolStats aggregates protocols by category and status.
type ProtocolStats struct {
	ByCategory map[string]int `json:"by_category"`
	ByStatus   map[string]int `json:"by_status"`
}

// ExportFormat selects the payload encoding of an analytics export.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)
