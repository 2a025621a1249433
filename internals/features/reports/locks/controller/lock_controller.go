package controller

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chike_backend/internals/features/reports/locks/dto"
	"chike_backend/internals/features/reports/locks/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type LockController struct {
	DB *gorm.DB
}

func NewLockController(db *gorm.DB) *LockController {
	return &LockController{DB: db}
}

// GET /api/a/day-locks?store_id=&month=YYYY-MM
func (lc *LockController) List(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
	}

	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanViewTeamReports(actor, storeID.String(), actor.DepartmentID); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	q := lc.DB.Where("store_id = ?", storeID)
	if month := c.Query("month"); month != "" {
		q = q.Where("report_date LIKE ?", month+"%")
	}

	var locks []model.StoreDayLockModel
	if err := q.Order("report_date").Find(&locks).Error; err != nil {
		log.Println("[ERROR] 锁定记录查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "获取锁定记录失败")
	}
	return helper.JsonOK(c, "ok", locks)
}

// POST /api/a/day-locks — 锁定/解锁某门店某日期（upsert）
// 状态机：Unlocked →(锁定) Locked →(解锁) Unlocked；
// 解锁清空 locked_at/locked_by，行保留。
func (lc *LockController) Upsert(c *fiber.Ctx) error {
	var req dto.LockRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if _, err := time.Parse("2006-01-02", req.ReportDate); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "report_date 格式应为 YYYY-MM-DD")
	}

	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if d := policy.CanLockDate(actor, req.StoreID.String()); !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	actorID, _ := uuid.Parse(actor.UserID)
	row := model.StoreDayLockModel{
		StoreID:    req.StoreID,
		ReportDate: req.ReportDate,
		IsLocked:   req.Locked,
		Note:       req.Note,
	}
	if req.Locked {
		now := time.Now()
		row.LockedAt = &now
		row.LockedByID = &actorID
	}

	// 并发锁定/解锁由 (store_id, report_date) 唯一约束 + upsert 串行化
	err = lc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_locked", "locked_at", "locked_by_id", "note", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Println("[ERROR] 锁定状态写入失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "锁定状态写入失败")
	}

	action := "已解锁"
	if req.Locked {
		action = "已锁定"
	}
	log.Printf("[SUCCESS] %s store=%s date=%s by=%s\n", action, req.StoreID, req.ReportDate, actor.UserID)
	return helper.JsonUpdated(c, action, row)
}
