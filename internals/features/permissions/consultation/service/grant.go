package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/features/permissions/consultation/model"
	"chike_backend/internals/policy"
)

// GetGrant 实时读取 (user, store) 的咨询查看授权并转成策略层快照。
// 不做缓存：授权被吊销后下一个请求立即生效。
// 无授权返回 (nil, nil)。
func GetGrant(db *gorm.DB, userID uuid.UUID, storeID uuid.UUID) (*policy.ConsultationGrant, error) {
	var row model.ConsultationViewPermissionModel
	err := db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &policy.ConsultationGrant{
		CanViewAll:   row.CanViewAll,
		CanViewStats: row.CanViewStats,
		CanExport:    row.CanExport,
		ValidUntil:   row.ValidUntil,
		IsActive:     row.IsActive,
	}, nil
}
