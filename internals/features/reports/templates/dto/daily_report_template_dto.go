package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"chike_backend/internals/features/reports/templates/model"
)

/* =========================================================
   REQUEST DTO — 保存模板（(role, department_id, schema_id) 定位）
========================================================= */

type TemplateRequest struct {
	Role         string          `json:"role" validate:"required"`
	DepartmentID uuid.UUID       `json:"department_id" validate:"required"`
	SchemaID     string          `json:"schema_id"` // 子部门判别，无则空串
	ConfigJSON   datatypes.JSON  `json:"config_json" validate:"required"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TemplateResponse struct {
	ID           uuid.UUID      `json:"id"`
	Role         string         `json:"role"`
	DepartmentID uuid.UUID      `json:"department_id"`
	SchemaID     string         `json:"schema_id"`
	ConfigJSON   datatypes.JSON `json:"config_json"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func ToTemplateResponse(m *model.DailyReportTemplateModel) TemplateResponse {
	return TemplateResponse{
		ID:           m.ID,
		Role:         m.Role,
		DepartmentID: m.DepartmentID,
		SchemaID:     m.SchemaID,
		ConfigJSON:   m.ConfigJSON,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
