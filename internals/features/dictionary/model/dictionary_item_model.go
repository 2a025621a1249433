package model

import (
	"time"

	"github.com/google/uuid"
)

// DictionaryItemModel 管理员可编辑的枚举项（渠道来源、角色显示名等），
// 动态下拉字段（dynamicOptionsKey）从这里取选项。
type DictionaryItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category  string    `gorm:"size:50;not null;index:idx_dictionary_category_name,unique" json:"category"`
	Name      string    `gorm:"size:50;not null;index:idx_dictionary_category_name,unique" json:"name"`
	Value     string    `gorm:"size:100;not null" json:"value"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DictionaryItemModel) TableName() string {
	return "dictionary_items"
}
