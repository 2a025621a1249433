package controller

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	deptModel "chike_backend/internals/features/org/departments/model"
	storeModel "chike_backend/internals/features/org/stores/model"
	grantService "chike_backend/internals/features/permissions/consultation/service"
	"chike_backend/internals/features/reports/daily/dto"
	"chike_backend/internals/features/reports/daily/model"
	"chike_backend/internals/features/reports/daily/service"
	lockService "chike_backend/internals/features/reports/locks/service"
	userModel "chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

// GET /api/a/team-reports?store_id&date — 团队日报列表。
// DEPT_LEAD 只能看本部门，policy 里判，查询里再兜一层。
func (rc *DailyReportController) TeamList(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date 格式应为 YYYY-MM-DD")
	}

	if d := policy.CanViewTeamReports(actor, storeID.String(), actor.DepartmentID); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	q := rc.DB.Where("store_id = ? AND report_date = ?", storeID, date)
	// 部门主管只看本部门
	if actor.HasRole(constants.RoleDeptLead) && !actor.HasAnyRole(constants.ManagerAndAbove...) {
		deptID, err := uuid.Parse(actor.DepartmentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusForbidden, "账号未挂靠部门")
		}
		q = q.Where("department_id = ?", deptID)
	}

	var reports []model.DailyReportModel
	if err := q.Order("updated_at DESC").Find(&reports).Error; err != nil {
		log.Println("[ERROR] 团队日报查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "团队日报查询失败")
	}

	names := rc.userNames(reports)
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, dto.ToReportResponse(&reports[i], names[reports[i].UserID]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// PUT /api/a/team-reports/:id — 管理侧修改他人日报
func (rc *DailyReportController) TeamEdit(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "日报 ID 不合法")
	}

	var req dto.TeamEditRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var report model.DailyReportModel
	if err := rc.DB.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "日报不存在")
		}
		log.Println("[ERROR] 日报查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "日报查询失败")
	}

	if d := policy.CanEditUserReport(actor, report.StoreID.String()); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}
	locked, err := lockService.IsDateLocked(rc.DB, report.StoreID, report.ReportDate)
	if err != nil {
		log.Println("[ERROR] 锁定状态查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "锁定状态查询失败")
	}
	if d := policy.CanEditReport(actor, report.StoreID.String(), report.UserID.String(), locked); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	updates := map[string]interface{}{}
	if req.FormData != nil {
		formJSON, err := json.Marshal(req.FormData)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "form_data 序列化失败")
		}
		updates["form_data"] = datatypes.JSON(formJSON)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == model.StatusSubmitted && report.SubmittedAt == nil {
			updates["submitted_at"] = time.Now()
		}
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "无改动", dto.ToReportResponse(&report, ""))
	}

	if err := rc.DB.Model(&report).Updates(updates).Error; err != nil {
		log.Println("[ERROR] 日报更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "日报更新失败")
	}
	log.Printf("[SUCCESS] 管理侧改日报 report=%s by=%s\n", report.ID, actor.UserID)
	return helper.JsonUpdated(c, "日报已更新", dto.ToReportResponse(&report, ""))
}

// GET /api/a/team-reports/summary?store_id&date — 当日提交情况汇总
func (rc *DailyReportController) Summary(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date 格式应为 YYYY-MM-DD")
	}
	if d := policy.CanViewTeamReports(actor, storeID.String(), actor.DepartmentID); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	var total, submitted, draft int64
	if err := rc.DB.Model(&userModel.UserModel{}).
		Where("store_id = ? AND is_active = TRUE AND department_id IS NOT NULL", storeID).
		Count(&total).Error; err != nil {
		log.Println("[ERROR] 汇总统计失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "汇总统计失败")
	}
	base := rc.DB.Model(&model.DailyReportModel{}).Where("store_id = ? AND report_date = ?", storeID, date)
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.StatusSubmitted).Count(&submitted).Error; err != nil {
		log.Println("[ERROR] 汇总统计失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "汇总统计失败")
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", model.StatusDraft).Count(&draft).Error; err != nil {
		log.Println("[ERROR] 汇总统计失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "汇总统计失败")
	}

	missing := total - submitted - draft
	if missing < 0 {
		missing = 0
	}
	return helper.JsonOK(c, "ok", dto.SummaryResponse{
		StoreID:    storeID,
		ReportDate: date,
		Submitted:  submitted,
		Draft:      draft,
		Missing:    missing,
		TotalStaff: total,
	})
}

// GET /api/a/team-reports/export?store_id&from&to — 导出 Excel。
// 咨询部数据额外受 ConsultationViewPermission.canExport 控制：
// 没有导出授权时只过滤掉咨询部行，不整单拒绝。
func (rc *DailyReportController) Export(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
	}
	from, to := c.Query("from"), c.Query("to")
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "from 格式应为 YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "to 格式应为 YYYY-MM-DD")
	}
	if from > to {
		return helper.JsonError(c, fiber.StatusBadRequest, "from 不能晚于 to")
	}
	if d := policy.CanViewTeamReports(actor, storeID.String(), actor.DepartmentID); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	var reports []model.DailyReportModel
	if err := rc.DB.
		Where("store_id = ? AND report_date BETWEEN ? AND ?", storeID, from, to).
		Order("report_date ASC, updated_at ASC").
		Find(&reports).Error; err != nil {
		log.Println("[ERROR] 导出查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "导出查询失败")
	}

	depts := rc.departmentsByID()
	consultDeptID := uuid.Nil
	for id, d := range depts {
		if d.Code == constants.DeptConsultation {
			consultDeptID = id
		}
	}

	// 咨询部行是否允许导出：现查授权快照，不缓存
	canExportConsult := true
	if consultDeptID != uuid.Nil {
		actorID, _ := uuid.Parse(actor.UserID)
		grant, err := grantService.GetGrant(rc.DB, actorID, storeID)
		if err != nil {
			log.Println("[ERROR] 咨询授权查询失败:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "咨询授权查询失败")
		}
		canExportConsult = policy.CanExportConsultation(actor, storeID.String(), grant, time.Now()).Allowed
	}

	names := rc.userNames(reports)
	rows := make([]service.ExportRow, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		if !canExportConsult && r.DepartmentID == consultDeptID {
			continue
		}
		deptName := ""
		if d, ok := depts[r.DepartmentID]; ok {
			deptName = d.Name
		}
		rows = append(rows, service.ExportRow{
			Report:         *r,
			UserName:       names[r.UserID],
			DepartmentName: deptName,
		})
	}

	wb, err := service.BuildTeamReportWorkbook(rows)
	if err != nil {
		log.Println("[ERROR] Excel 生成失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Excel 生成失败")
	}

	storeName := storeID.String()
	var store storeModel.StoreModel
	if err := rc.DB.First(&store, "id = ?", storeID).Error; err == nil {
		storeName = store.Name
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFileName(storeName, from, to)+`"`)
	buf, err := wb.WriteToBuffer()
	if err != nil {
		log.Println("[ERROR] Excel 输出失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Excel 输出失败")
	}
	return c.Send(buf.Bytes())
}

func (rc *DailyReportController) userNames(reports []model.DailyReportModel) map[uuid.UUID]string {
	ids := make([]uuid.UUID, 0, len(reports))
	seen := map[uuid.UUID]bool{}
	for i := range reports {
		if !seen[reports[i].UserID] {
			seen[reports[i].UserID] = true
			ids = append(ids, reports[i].UserID)
		}
	}
	names := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return names
	}
	var users []userModel.UserModel
	if err := rc.DB.Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		log.Println("[ERROR] 用户名查询失败:", err)
		return names
	}
	for i := range users {
		names[users[i].ID] = users[i].Name
	}
	return names
}

func (rc *DailyReportController) departmentsByID() map[uuid.UUID]deptModel.DepartmentModel {
	out := map[uuid.UUID]deptModel.DepartmentModel{}
	var depts []deptModel.DepartmentModel
	if err := rc.DB.Find(&depts).Error; err != nil {
		log.Println("[ERROR] 部门查询失败:", err)
		return out
	}
	for i := range depts {
		out[depts[i].ID] = depts[i]
	}
	return out
}
