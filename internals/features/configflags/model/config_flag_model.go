package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ScopeGlobal = "GLOBAL"
	ScopeStore  = "STORE"
)

// ConfigFlagModel 通用配置项/功能开关。
// 唯一键 (scope, store_id, key)；scope=STORE 时必须带 store_id，GLOBAL 必须为空。
// value 为任意 JSON，例如部门归属角色覆写表 {"default":"AUTO","NURSING":"HEAD_NURSE"}。
type ConfigFlagModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Scope       string         `gorm:"size:10;not null;index:idx_config_scope_store_key,unique" json:"scope"`
	StoreID     *uuid.UUID     `gorm:"type:uuid;index:idx_config_scope_store_key,unique" json:"store_id,omitempty"`
	Key         string         `gorm:"size:50;not null;index:idx_config_scope_store_key,unique" json:"key"`
	Value       datatypes.JSON `gorm:"type:jsonb" json:"value"`
	Description string         `gorm:"size:255" json:"description"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ConfigFlagModel) TableName() string {
	return "config_flags"
}
