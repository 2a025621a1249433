package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/features/org/departments/dto"
	"chike_backend/internals/features/org/departments/model"
	templateModel "chike_backend/internals/features/reports/templates/model"
	helper "chike_backend/internals/helpers"
)

var validate = validator.New()

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

// GET /api/u/departments — 登录即可看（选表单、筛团队都要用）
func (dc *DepartmentController) List(c *fiber.Ctx) error {
	var depts []model.DepartmentModel
	if err := dc.DB.Order("code ASC").Find(&depts).Error; err != nil {
		log.Println("[ERROR] 部门查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "部门查询失败")
	}
	return helper.JsonList(c, "ok", depts, nil)
}

// POST /api/a/departments
func (dc *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	dept := model.DepartmentModel{Code: req.Code, Name: req.Name}
	if err := dc.DB.Create(&dept).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "部门编码已存在")
		}
		log.Println("[ERROR] 部门创建失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "部门创建失败")
	}
	return helper.JsonCreated(c, "部门已创建", dept)
}

// PUT /api/a/departments/:id
// code 被模板引用后不可再改，否则存量模板的部门绑定会悬空。
func (dc *DepartmentController) Update(c *fiber.Ctx) error {
	deptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "部门 ID 不合法")
	}

	var req dto.DepartmentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var dept model.DepartmentModel
	if err := dc.DB.First(&dept, "id = ?", deptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "部门不存在")
		}
		log.Println("[ERROR] 部门查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "部门查询失败")
	}

	updates := map[string]interface{}{}
	if req.Code != nil && *req.Code != dept.Code {
		var refs int64
		if err := dc.DB.Model(&templateModel.DailyReportTemplateModel{}).
			Where("department_id = ?", dept.ID).Count(&refs).Error; err != nil {
			log.Println("[ERROR] 模板引用检查失败:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "部门更新失败")
		}
		if refs > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "部门编码已被日报模板引用，不能修改")
		}
		updates["code"] = *req.Code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "无改动", dept)
	}

	if err := dc.DB.Model(&dept).Updates(updates).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "部门编码已存在")
		}
		log.Println("[ERROR] 部门更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "部门更新失败")
	}
	return helper.JsonUpdated(c, "部门已更新", dept)
}
