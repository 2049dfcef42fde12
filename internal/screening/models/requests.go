package models

// SelectPersonRequest commits the operator's candidate choice.
// SelectedPersonIndex is the zero-based position within the original People
// sequence returned for CheckID.
type SelectPersonRequest struct {
	CheckID             string `json:"checkId" validate:"required"`
	SelectedPersonIndex *int   `json:"selectedPersonIndex" validate:"required,min=0"`
}

// CheckReportRequest expands one candidate into a full report.
type CheckReportRequest struct {
	ReportToken string `json:"reportToken" validate:"required"`
	CheckID     string `json:"checkId" validate:"required"`
}
