package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chike_backend/internals/features/permissions/consultation/dto"
	"chike_backend/internals/features/permissions/consultation/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type ConsultationPermissionController struct {
	DB *gorm.DB
}

func NewConsultationPermissionController(db *gorm.DB) *ConsultationPermissionController {
	return &ConsultationPermissionController{DB: db}
}

// GET /api/a/consultation-permissions?store_id=
func (pc *ConsultationPermissionController) List(c *fiber.Ctx) error {
	q := pc.DB.Model(&model.ConsultationViewPermissionModel{})
	if storeID := c.Query("store_id"); storeID != "" {
		id, err := uuid.Parse(storeID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		q = q.Where("store_id = ?", id)
	}

	var rows []model.ConsultationViewPermissionModel
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Println("[ERROR] 授权列表查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "获取授权列表失败")
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /api/a/consultation-permissions — 授予/更新（upsert by user+store）
func (pc *ConsultationPermissionController) Grant(c *fiber.Ctx) error {
	var req dto.GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	// 授权管理与门店管理同级：总部，或本店店长
	if d := policy.CanManageFlags(actor, "STORE", req.StoreID.String()); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	grantedBy, _ := uuid.Parse(actor.UserID)
	row := model.ConsultationViewPermissionModel{
		UserID:       req.UserID,
		StoreID:      req.StoreID,
		CanViewAll:   req.CanViewAll,
		CanViewStats: req.CanViewStats,
		CanExport:    req.CanExport,
		ValidUntil:   req.ValidUntil,
		IsActive:     true,
		GrantedByID:  grantedBy,
	}
	err = pc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"can_view_all", "can_view_stats", "can_export", "valid_until",
			"is_active", "granted_by_id", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "用户或门店不存在")
		}
		log.Println("[ERROR] 授权写入失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "授权写入失败")
	}

	log.Printf("[SUCCESS] 咨询查看授权 user=%s store=%s by=%s\n", req.UserID, req.StoreID, actor.UserID)
	return helper.JsonUpdated(c, "授权已保存", row)
}

// DELETE /api/a/consultation-permissions/:id — 吊销（置 is_active=false）
func (pc *ConsultationPermissionController) Revoke(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "授权 ID 不合法")
	}

	var row model.ConsultationViewPermissionModel
	if err := pc.DB.First(&row, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "授权不存在")
	}

	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanManageFlags(actor, "STORE", row.StoreID.String()); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	if err := pc.DB.Model(&row).Update("is_active", false).Error; err != nil {
		log.Println("[ERROR] 授权吊销失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "授权吊销失败")
	}
	return helper.JsonDeleted(c, "授权已吊销", fiber.Map{"id": id})
}
