package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel 门店。被引用时禁止删除，只能停用。
type StoreModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"size:32;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	City      *string   `gorm:"size:50" json:"city,omitempty"`
	Address   *string   `gorm:"size:255" json:"address,omitempty"`
	ChairCnt  int       `gorm:"not null;default:0" json:"chair_cnt"` // 牙椅数
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StoreModel) TableName() string {
	return "stores"
}
