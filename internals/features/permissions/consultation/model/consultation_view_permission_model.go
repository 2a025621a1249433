package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationViewPermissionModel 跨部门查看咨询记录的授权，
// 与角色无关，唯一键 (user_id, store_id)。过期判定在策略层实时计算。
type ConsultationViewPermissionModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_consult_perm_user_store,unique" json:"user_id"`
	StoreID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_consult_perm_user_store,unique" json:"store_id"`
	CanViewAll   bool       `gorm:"not null;default:false" json:"can_view_all"`
	CanViewStats bool       `gorm:"not null;default:false" json:"can_view_stats"`
	CanExport    bool       `gorm:"not null;default:false" json:"can_export"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	GrantedByID  uuid.UUID  `gorm:"type:uuid;not null" json:"granted_by_id"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConsultationViewPermissionModel) TableName() string {
	return "consultation_view_permissions"
}
