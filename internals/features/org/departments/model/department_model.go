package model

import (
	"time"

	"github.com/google/uuid"
)

// DepartmentModel 部门。code 为稳定标识（如 CONSULTATION），
// 一经模板引用即不可修改（controller 层守卫）。
type DepartmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}
