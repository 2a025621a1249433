package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"chike_backend/internals/features/reports/daily/model"
)

type UpsertReportRequest struct {
	ReportDate string                 `json:"report_date" validate:"required,len=10"` // YYYY-MM-DD
	Status     string                 `json:"status" validate:"required,oneof=DRAFT SUBMITTED"`
	FormData   map[string]interface{} `json:"form_data"`
}

type TeamEditRequest struct {
	Status   *string                `json:"status,omitempty" validate:"omitempty,oneof=DRAFT SUBMITTED"`
	FormData map[string]interface{} `json:"form_data"`
}

type ReportResponse struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	UserName     string         `json:"user_name,omitempty"`
	StoreID      uuid.UUID      `json:"store_id"`
	DepartmentID uuid.UUID      `json:"department_id"`
	ReportDate   string         `json:"report_date"`
	Status       string         `json:"status"`
	FormData     datatypes.JSON `json:"form_data"`
	SchemaID     string         `json:"schema_id"`
	SubmittedAt  *time.Time     `json:"submitted_at,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func ToReportResponse(m *model.DailyReportModel, userName string) ReportResponse {
	return ReportResponse{
		ID:           m.ID,
		UserID:       m.UserID,
		UserName:     userName,
		StoreID:      m.StoreID,
		DepartmentID: m.DepartmentID,
		ReportDate:   m.ReportDate,
		Status:       m.Status,
		FormData:     m.FormData,
		SchemaID:     m.SchemaID,
		SubmittedAt:  m.SubmittedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SummaryResponse 团队提交情况汇总
type SummaryResponse struct {
	StoreID    uuid.UUID `json:"store_id"`
	ReportDate string    `json:"report_date"`
	Submitted  int64     `json:"submitted"`
	Draft      int64     `json:"draft"`
	Missing    int64     `json:"missing"`
	TotalStaff int64     `json:"total_staff"`
}
