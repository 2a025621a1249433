package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/features/org/stores/dto"
	"chike_backend/internals/features/org/stores/model"
	userModel "chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type StoreController struct {
	DB *gorm.DB
}

func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{DB: db}
}

// GET /api/u/stores — 登录即可看（切换门店/筛选用）
func (sc *StoreController) List(c *fiber.Ctx) error {
	q := sc.DB.Model(&model.StoreModel{})
	if c.Query("active") == "true" {
		q = q.Where("is_active = TRUE")
	}
	var stores []model.StoreModel
	if err := q.Order("code ASC").Find(&stores).Error; err != nil {
		log.Println("[ERROR] 门店查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店查询失败")
	}
	return helper.JsonList(c, "ok", stores, nil)
}

// POST /api/a/stores
func (sc *StoreController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanManageStores(actor); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	var req dto.StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	store := model.StoreModel{
		Code:     req.Code,
		Name:     req.Name,
		City:     req.City,
		Address:  req.Address,
		ChairCnt: req.ChairCnt,
		IsActive: true,
	}
	if err := sc.DB.Create(&store).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "门店编码已存在")
		}
		log.Println("[ERROR] 门店创建失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店创建失败")
	}
	return helper.JsonCreated(c, "门店已创建", store)
}

// PUT /api/a/stores/:id — code 不可改，其余可改
func (sc *StoreController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanManageStores(actor); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}
	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "门店 ID 不合法")
	}

	var req dto.StoreUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var store model.StoreModel
	if err := sc.DB.First(&store, "id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "门店不存在")
		}
		log.Println("[ERROR] 门店查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店查询失败")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.ChairCnt != nil {
		updates["chair_cnt"] = *req.ChairCnt
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "无改动", store)
	}

	if err := sc.DB.Model(&store).Updates(updates).Error; err != nil {
		log.Println("[ERROR] 门店更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店更新失败")
	}
	return helper.JsonUpdated(c, "门店已更新", store)
}

// DELETE /api/a/stores/:id — 还有员工挂靠就拒绝，提示停用
func (sc *StoreController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanManageStores(actor); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}
	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "门店 ID 不合法")
	}

	var refs int64
	if err := sc.DB.Model(&userModel.UserModel{}).Where("store_id = ?", storeID).Count(&refs).Error; err != nil {
		log.Println("[ERROR] 门店引用检查失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店删除失败")
	}
	if refs > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "门店仍有员工挂靠，不能删除，请改为停用")
	}

	res := sc.DB.Delete(&model.StoreModel{}, "id = ?", storeID)
	if res.Error != nil {
		if helper.IsForeignKeyViolation(res.Error) {
			return helper.JsonError(c, fiber.StatusConflict, "门店仍被其他数据引用，不能删除，请改为停用")
		}
		log.Println("[ERROR] 门店删除失败:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "门店删除失败")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "门店不存在")
	}
	return helper.JsonDeleted(c, "门店已删除", nil)
}
