package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
)

// DailyReportModel 员工每日提交的结构化日报。
// 唯一键 (user_id, report_date)，并发提交由该约束 + upsert 串行化。
// form_data 以编译后字段 ID（containerId.fieldId）为键的弱类型 JSON。
type DailyReportModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_report_user_date,unique" json:"user_id"`
	StoreID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"department_id"`
	ReportDate   string         `gorm:"size:10;not null;index:idx_report_user_date,unique" json:"report_date"` // YYYY-MM-DD
	Status       string         `gorm:"size:10;not null;default:'DRAFT'" json:"status"`
	FormData     datatypes.JSON `gorm:"type:jsonb" json:"form_data"`
	SchemaID     string         `gorm:"size:64;not null;default:''" json:"schema_id"`
	SubmittedAt  *time.Time     `json:"submitted_at,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyReportModel) TableName() string {
	return "daily_reports"
}
