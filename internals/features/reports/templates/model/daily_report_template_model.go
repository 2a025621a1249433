package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailyReportTemplateModel 管理员配置的日报模板。
// 唯一键 (role, department_id, schema_id)；
// schema_id 为子部门判别（市场子部门 / 护理岗位），无则空串。
// config_json 即模板编译器的输入文档（version=2）。
type DailyReportTemplateModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Role         string         `gorm:"size:20;not null;index:idx_template_role_dept_schema,unique" json:"role"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;index:idx_template_role_dept_schema,unique" json:"department_id"`
	SchemaID     string         `gorm:"size:32;not null;default:'';index:idx_template_role_dept_schema,unique" json:"schema_id"`
	ConfigJSON   datatypes.JSON `gorm:"type:jsonb;not null" json:"config_json"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyReportTemplateModel) TableName() string {
	return "daily_report_templates"
}
