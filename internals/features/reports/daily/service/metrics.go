package service

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reportModel "chike_backend/internals/features/reports/daily/model"
	templateService "chike_backend/internals/features/reports/templates/service"
)

// SyncConsultationMetrics 提交咨询部日报时，按 schema 里字段的 metricKey
// 把数值抽取到强类型的 consultation_reports 行（与日报一对一）。
// 抽取失败只记日志，不影响日报提交本身。
func SyncConsultationMetrics(db *gorm.DB, report *reportModel.DailyReportModel, schema *templateService.FormSchema) {
	if schema == nil || len(report.FormData) == 0 {
		return
	}

	var formData map[string]interface{}
	if err := json.Unmarshal(report.FormData, &formData); err != nil {
		log.Println("[ERROR] 咨询指标同步: form_data 解析失败:", err)
		return
	}

	metrics := extractMetrics(schema, formData)

	row := reportModel.ConsultationReportModel{
		DailyReportID: report.ID,
		VisitCnt:      int(metrics["visit_cnt"]),
		DealCnt:       int(metrics["deal_cnt"]),
		DealAmount:    metrics["deal_amount"],
		NewCustomers:  int(metrics["new_customers"]),
		ReVisitCnt:    int(metrics["re_visit_cnt"]),
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "daily_report_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"visit_cnt", "deal_cnt", "deal_amount", "new_customers", "re_visit_cnt", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Println("[ERROR] 咨询指标同步失败:", err)
	}
}

// extractMetrics 收集 schema 中带 metricKey 的标量字段的数值。
func extractMetrics(schema *templateService.FormSchema, formData map[string]interface{}) map[string]float64 {
	out := make(map[string]float64)
	for _, section := range schema.Sections {
		for _, field := range section.Fields {
			if field.MetricKey == "" || field.Type == templateService.FieldDynamicRows {
				continue
			}
			if v, ok := formData[field.ID].(float64); ok {
				out[field.MetricKey] = v
			}
		}
	}
	return out
}
