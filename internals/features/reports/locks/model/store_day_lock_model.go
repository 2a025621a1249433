package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreDayLockModel 按 (store, date) 的锁定记录。
// 无行或 is_locked=false 即未锁定；解锁清空 locked_at/locked_by 但保留行。
type StoreDayLockModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_lock_store_date,unique" json:"store_id"`
	ReportDate string     `gorm:"size:10;not null;index:idx_lock_store_date,unique" json:"report_date"`
	IsLocked   bool       `gorm:"not null;default:false" json:"is_locked"`
	LockedAt   *time.Time `json:"locked_at,omitempty"`
	LockedByID *uuid.UUID `gorm:"type:uuid" json:"locked_by_id,omitempty"`
	Note       *string    `gorm:"size:255" json:"note,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StoreDayLockModel) TableName() string {
	return "store_day_locks"
}
