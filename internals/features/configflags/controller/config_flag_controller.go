package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chike_backend/internals/features/configflags/dto"
	"chike_backend/internals/features/configflags/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type ConfigFlagController struct {
	DB *gorm.DB
}

func NewConfigFlagController(db *gorm.DB) *ConfigFlagController {
	return &ConfigFlagController{DB: db}
}

// GET /api/a/config-flags?scope=&store_id=&key=
func (fc *ConfigFlagController) List(c *fiber.Ctx) error {
	q := fc.DB.Model(&model.ConfigFlagModel{})
	if scope := c.Query("scope"); scope != "" {
		q = q.Where("scope = ?", scope)
	}
	if sid := c.Query("store_id"); sid != "" {
		storeID, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		q = q.Where("store_id = ?", storeID)
	}
	if key := c.Query("key"); key != "" {
		q = q.Where("key = ?", key)
	}
	var flags []model.ConfigFlagModel
	if err := q.Order("scope ASC, key ASC").Find(&flags).Error; err != nil {
		log.Println("[ERROR] 配置查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "配置查询失败")
	}
	return helper.JsonList(c, "ok", flags, nil)
}

// PUT /api/a/config-flags — 按 (scope, store_id, key) upsert。
// scope=STORE 必须带 store_id，GLOBAL 带了反而是错。
func (fc *ConfigFlagController) Upsert(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ConfigFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Scope == model.ScopeStore && req.StoreID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scope=STORE 时必须指定 store_id")
	}
	if req.Scope == model.ScopeGlobal && req.StoreID != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "scope=GLOBAL 时不能带 store_id")
	}

	storeIDStr := ""
	var storeID *uuid.UUID
	if req.StoreID != nil {
		id, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		storeID = &id
		storeIDStr = id.String()
	}

	if d := policy.CanManageFlags(actor, req.Scope, storeIDStr); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	flag := model.ConfigFlagModel{
		Scope:       req.Scope,
		StoreID:     storeID,
		Key:         req.Key,
		Value:       datatypes.JSON(req.Value),
		Description: req.Description,
		IsActive:    isActive,
	}
	err = fc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "store_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "is_active", "updated_at"}),
	}).Create(&flag).Error
	if err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "门店不存在")
		}
		log.Println("[ERROR] 配置写入失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "配置写入失败")
	}

	log.Printf("[SUCCESS] 配置已写入 scope=%s key=%s by=%s\n", req.Scope, req.Key, actor.UserID)
	return helper.JsonUpdated(c, "配置已保存", flag)
}

// DELETE /api/a/config-flags/:id
func (fc *ConfigFlagController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	flagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "配置 ID 不合法")
	}

	var flag model.ConfigFlagModel
	if err := fc.DB.First(&flag, "id = ?", flagID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "配置不存在")
	}
	storeIDStr := ""
	if flag.StoreID != nil {
		storeIDStr = flag.StoreID.String()
	}
	if d := policy.CanManageFlags(actor, flag.Scope, storeIDStr); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	if err := fc.DB.Delete(&flag).Error; err != nil {
		log.Println("[ERROR] 配置删除失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "配置删除失败")
	}
	return helper.JsonDeleted(c, "配置已删除", nil)
}
