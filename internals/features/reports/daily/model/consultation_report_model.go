package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationReportModel 咨询部日报的强类型指标，
// 与 DailyReportModel 一对一，提交时按 metricKey 从 form_data 同步。
type ConsultationReportModel struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DailyReportID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"daily_report_id"`
	VisitCnt      int       `gorm:"not null;default:0" json:"visit_cnt"`       // 到店人数
	DealCnt       int       `gorm:"not null;default:0" json:"deal_cnt"`        // 成交人数
	DealAmount    float64   `gorm:"not null;default:0" json:"deal_amount"`     // 成交金额
	NewCustomers  int       `gorm:"not null;default:0" json:"new_customers"`   // 初诊
	ReVisitCnt    int       `gorm:"not null;default:0" json:"re_visit_cnt"`    // 复诊
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConsultationReportModel) TableName() string {
	return "consultation_reports"
}
