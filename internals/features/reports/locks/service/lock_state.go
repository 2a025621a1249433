package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/features/reports/locks/model"
)

// IsDateLocked 查询 (store, date) 是否锁定。
// 无行 = 未锁定（默认态）。
func IsDateLocked(db *gorm.DB, storeID uuid.UUID, reportDate string) (bool, error) {
	var lock model.StoreDayLockModel
	err := db.Where("store_id = ? AND report_date = ?", storeID, reportDate).First(&lock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return lock.IsLocked, nil
}
