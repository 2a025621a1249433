package controller

import (
	"encoding/json"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chike_backend/internals/constants"
	"chike_backend/internals/features/reports/templates/dto"
	"chike_backend/internals/features/reports/templates/model"
	"chike_backend/internals/features/reports/templates/service"
	helper "chike_backend/internals/helpers"
)

var validate = validator.New()

type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

// GET /api/a/report-templates?role=&department_id=
func (tc *TemplateController) List(c *fiber.Ctx) error {
	q := tc.DB.Model(&model.DailyReportTemplateModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if deptID := c.Query("department_id"); deptID != "" {
		id, err := uuid.Parse(deptID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id 不合法")
		}
		q = q.Where("department_id = ?", id)
	}

	var rows []model.DailyReportTemplateModel
	if err := q.Order("role, schema_id").Find(&rows).Error; err != nil {
		log.Println("[ERROR] 模板列表查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "获取模板列表失败")
	}

	out := make([]dto.TemplateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToTemplateResponse(&rows[i]))
	}
	return helper.JsonOK(c, "ok", out)
}

// POST /api/a/report-templates — upsert by (role, department_id, schema_id)
func (tc *TemplateController) Upsert(c *fiber.Ctx) error {
	var req dto.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !constants.IsKnownRole(req.Role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "未知角色: "+req.Role)
	}
	if err := validateTemplateDoc(req.ConfigJSON); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := model.DailyReportTemplateModel{
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		SchemaID:     req.SchemaID,
		ConfigJSON:   req.ConfigJSON,
	}
	err := tc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role"}, {Name: "department_id"}, {Name: "schema_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_json", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "部门不存在")
		}
		log.Println("[ERROR] 模板保存失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "模板保存失败")
	}

	log.Printf("[SUCCESS] 模板已保存 role=%s schema_id=%q\n", row.Role, row.SchemaID)
	return helper.JsonUpdated(c, "模板已保存", dto.ToTemplateResponse(&row))
}

// POST /api/a/report-templates/preview — 不落库，直接编译并返回 schema
func (tc *TemplateController) Preview(c *fiber.Ctx) error {
	schema, ok := service.CompileTemplate("preview", c.Body())
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "模板文档不合法（要求 version=2 且 containers 为数组）")
	}
	return helper.JsonOK(c, "ok", schema)
}

// DELETE /api/a/report-templates/:id
func (tc *TemplateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "模板 ID 不合法")
	}

	res := tc.DB.Delete(&model.DailyReportTemplateModel{}, "id = ?", id)
	if res.Error != nil {
		log.Println("[ERROR] 模板删除失败:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "模板删除失败")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "模板不存在")
	}
	return helper.JsonDeleted(c, "模板已删除", fiber.Map{"id": id})
}

// validateTemplateDoc 保存前把关：version=2、containers 为数组、容器 ID 不重复。
// （编译器本身不校验容器 ID 唯一性，脏文档要挡在入库之前。）
func validateTemplateDoc(raw []byte) error {
	var doc service.TemplateDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "config_json 不是合法 JSON")
	}
	if doc.Version != service.TemplateVersion {
		return fiber.NewError(fiber.StatusBadRequest, "仅支持 version=2 的模板文档")
	}
	if doc.Containers == nil {
		return fiber.NewError(fiber.StatusBadRequest, "containers 缺失或不是数组")
	}
	seen := make(map[string]struct{}, len(doc.Containers))
	for _, ct := range doc.Containers {
		if ct.ID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "容器缺少 id")
		}
		if _, dup := seen[ct.ID]; dup {
			return fiber.NewError(fiber.StatusBadRequest, "容器 id 重复: "+ct.ID)
		}
		seen[ct.ID] = struct{}{}
	}
	return nil
}
