package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/features/dictionary/dto"
	"chike_backend/internals/features/dictionary/model"
	helper "chike_backend/internals/helpers"
)

var validate = validator.New()

type DictionaryController struct {
	DB *gorm.DB
}

func NewDictionaryController(db *gorm.DB) *DictionaryController {
	return &DictionaryController{DB: db}
}

// GET /api/u/dictionary?category= — 表单动态下拉（dynamicOptionsKey）的数据源
func (dc *DictionaryController) List(c *fiber.Ctx) error {
	q := dc.DB.Model(&model.DictionaryItemModel{}).Where("is_active = TRUE")
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var items []model.DictionaryItemModel
	if err := q.Order("category ASC, sort_order ASC, name ASC").Find(&items).Error; err != nil {
		log.Println("[ERROR] 字典查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典查询失败")
	}

	// 按 category 分组返回，前端一次拉全量也好用
	grouped := map[string][]model.DictionaryItemModel{}
	for _, it := range items {
		grouped[it.Category] = append(grouped[it.Category], it)
	}
	return helper.JsonOK(c, "ok", grouped)
}

// GET /api/a/dictionary — 管理端平铺列表（含停用项）
func (dc *DictionaryController) AdminList(c *fiber.Ctx) error {
	q := dc.DB.Model(&model.DictionaryItemModel{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var items []model.DictionaryItemModel
	if err := q.Order("category ASC, sort_order ASC, name ASC").Find(&items).Error; err != nil {
		log.Println("[ERROR] 字典查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典查询失败")
	}
	return helper.JsonList(c, "ok", items, nil)
}

// POST /api/a/dictionary
func (dc *DictionaryController) Create(c *fiber.Ctx) error {
	var req dto.DictionaryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	item := model.DictionaryItemModel{
		Category:  req.Category,
		Name:      req.Name,
		Value:     req.Value,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := dc.DB.Create(&item).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "同分类下已存在同名字典项")
		}
		log.Println("[ERROR] 字典创建失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典创建失败")
	}
	return helper.JsonCreated(c, "字典项已创建", item)
}

// PUT /api/a/dictionary/:id
func (dc *DictionaryController) Update(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "字典项 ID 不合法")
	}

	var req dto.DictionaryItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var item model.DictionaryItemModel
	if err := dc.DB.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "字典项不存在")
		}
		log.Println("[ERROR] 字典查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典查询失败")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "无改动", item)
	}

	if err := dc.DB.Model(&item).Updates(updates).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "同分类下已存在同名字典项")
		}
		log.Println("[ERROR] 字典更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典更新失败")
	}
	return helper.JsonUpdated(c, "字典项已更新", item)
}

// DELETE /api/a/dictionary/:id — 物理删；历史日报存的是值本身，不受影响
func (dc *DictionaryController) Delete(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "字典项 ID 不合法")
	}
	res := dc.DB.Delete(&model.DictionaryItemModel{}, "id = ?", itemID)
	if res.Error != nil {
		log.Println("[ERROR] 字典删除失败:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "字典删除失败")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "字典项不存在")
	}
	return helper.JsonDeleted(c, "字典项已删除", nil)
}
