package controller

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	deptModel "chike_backend/internals/features/org/departments/model"
	"chike_backend/internals/constants"
	"chike_backend/internals/features/reports/daily/dto"
	"chike_backend/internals/features/reports/daily/model"
	"chike_backend/internals/features/reports/daily/service"
	lockService "chike_backend/internals/features/reports/locks/service"
	templateService "chike_backend/internals/features/reports/templates/service"
	userModel "chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type DailyReportController struct {
	DB *gorm.DB
}

func NewDailyReportController(db *gorm.DB) *DailyReportController {
	return &DailyReportController{DB: db}
}

// loadUserContext 取用户 + 部门（主部门），日报读写都要用。
func (rc *DailyReportController) loadUserContext(userID uuid.UUID) (*userModel.UserModel, *deptModel.DepartmentModel, error) {
	var user userModel.UserModel
	if err := rc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "用户不存在")
	}
	if user.DepartmentID == nil {
		return &user, nil, nil
	}
	var dept deptModel.DepartmentModel
	if err := rc.DB.First(&dept, "id = ?", *user.DepartmentID).Error; err != nil {
		return &user, nil, nil
	}
	return &user, &dept, nil
}

func (rc *DailyReportController) resolveSchemaFor(user *userModel.UserModel, dept *deptModel.DepartmentModel) (*templateService.FormSchema, error) {
	if dept == nil {
		return nil, templateService.ErrNoSchema
	}
	return templateService.ResolveSchema(rc.DB, templateService.ResolveInput{
		User:           user,
		DepartmentID:   dept.ID,
		DepartmentCode: dept.Code,
	})
}

// GET /api/u/daily-reports/schema — 当前用户应填写的表单 schema。
// 未配置表单不是错误：返回 data=null，前端渲染“未配置”状态。
func (rc *DailyReportController) GetSchema(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	user, dept, err := rc.loadUserContext(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	schema, err := rc.resolveSchemaFor(user, dept)
	if err != nil {
		if errors.Is(err, templateService.ErrNoSchema) {
			return helper.JsonOK(c, "该部门未配置日报表单", nil)
		}
		log.Println("[ERROR] schema 解析失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "表单解析失败")
	}
	return helper.JsonOK(c, "ok", schema)
}

// GET /api/u/daily-reports?date=YYYY-MM-DD — 自己某天的日报
func (rc *DailyReportController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date 格式应为 YYYY-MM-DD")
	}

	var report model.DailyReportModel
	if err := rc.DB.Where("user_id = ? AND report_date = ?", userID, date).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonOK(c, "当日还没有日报", nil)
		}
		log.Println("[ERROR] 日报查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "日报查询失败")
	}
	return helper.JsonOK(c, "ok", dto.ToReportResponse(&report, ""))
}

// POST /api/u/daily-reports — 保存/提交自己的日报（upsert by user+date）。
// 锁定闸口与必填校验都在这里：提交（SUBMITTED）才做必填校验，草稿随便存。
func (rc *DailyReportController) Upsert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpsertReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if _, err := time.Parse("2006-01-02", req.ReportDate); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "report_date 格式应为 YYYY-MM-DD")
	}

	user, dept, err := rc.loadUserContext(userID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if user.StoreID == nil || dept == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "账号未挂靠门店或部门，不能填写日报")
	}

	// 日期锁定闸口（豁免规则集中在 policy.CanEditReport）
	locked, err := lockService.IsDateLocked(rc.DB, *user.StoreID, req.ReportDate)
	if err != nil {
		log.Println("[ERROR] 锁定状态查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "锁定状态查询失败")
	}
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanEditReport(actor, user.StoreID.String(), actor.UserID, locked); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	schema, err := rc.resolveSchemaFor(user, dept)
	if err != nil && !errors.Is(err, templateService.ErrNoSchema) {
		log.Println("[ERROR] schema 解析失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "表单解析失败")
	}

	// 提交才做必填校验
	if req.Status == model.StatusSubmitted && schema != nil {
		if fieldErrs := service.ValidateFormData(schema, req.FormData); len(fieldErrs) > 0 {
			return helper.JsonValidationError(c, fieldErrs)
		}
	}

	formJSON, err := json.Marshal(req.FormData)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "form_data 序列化失败")
	}

	schemaID := ""
	if schema != nil {
		schemaID = schema.ID
	}
	report := model.DailyReportModel{
		UserID:       userID,
		StoreID:      *user.StoreID,
		DepartmentID: dept.ID,
		ReportDate:   req.ReportDate,
		Status:       req.Status,
		FormData:     datatypes.JSON(formJSON),
		SchemaID:     schemaID,
	}
	if req.Status == model.StatusSubmitted {
		now := time.Now()
		report.SubmittedAt = &now
	}

	// 并发提交由 (user_id, report_date) 唯一约束 + upsert 串行化
	err = rc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "form_data", "schema_id", "submitted_at", "updated_at",
		}),
	}).Create(&report).Error
	if err != nil {
		log.Println("[ERROR] 日报写入失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "日报写入失败")
	}

	// 咨询部提交后同步强类型指标表
	if req.Status == model.StatusSubmitted && dept.Code == constants.DeptConsultation {
		// upsert 命中更新分支时 report.ID 可能是新生成的零值行，重查一次拿真实 ID
		var saved model.DailyReportModel
		if err := rc.DB.Where("user_id = ? AND report_date = ?", userID, req.ReportDate).First(&saved).Error; err == nil {
			service.SyncConsultationMetrics(rc.DB, &saved, schema)
		}
	}

	log.Printf("[SUCCESS] 日报已保存 user=%s date=%s status=%s\n", userID, req.ReportDate, req.Status)
	return helper.JsonUpdated(c, "日报已保存", dto.ToReportResponse(&report, ""))
}
