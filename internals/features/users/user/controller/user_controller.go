package controller

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chike_backend/internals/constants"
	"chike_backend/internals/features/users/user/dto"
	"chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
	"chike_backend/internals/policy"
)

var validate = validator.New()

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/a/users?store_id=&department_id=&q=&page=&per_page=
func (uc *UserController) List(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := uc.DB.Model(&model.UserModel{})
	// 店长/主管只看本门店
	if !actor.IsHQ() && !actor.HasRole(constants.RoleRegionManager) {
		if actor.StoreID == "" {
			return helper.JsonError(c, fiber.StatusForbidden, "账号未挂靠门店")
		}
		q = q.Where("store_id = ?", actor.StoreID)
	} else if sid := c.Query("store_id"); sid != "" {
		storeID, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		q = q.Where("store_id = ?", storeID)
	}
	if did := c.Query("department_id"); did != "" {
		deptID, err := uuid.Parse(did)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id 不合法")
		}
		q = q.Where("department_id = ?", deptID)
	}
	if kw := c.Query("q"); kw != "" {
		q = q.Where("name ILIKE ? OR account ILIKE ?", "%"+kw+"%", "%"+kw+"%")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] 用户统计失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "用户查询失败")
	}
	var users []model.UserModel
	if err := q.Order("created_at DESC").Offset(paging.Offset).Limit(paging.PerPage).Find(&users).Error; err != nil {
		log.Println("[ERROR] 用户查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "用户查询失败")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "用户 ID 不合法")
	}
	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "用户不存在")
		}
		log.Println("[ERROR] 用户查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "用户查询失败")
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponse(&user))
}

// POST /api/a/users — 账号由管理员开，不开放注册
func (uc *UserController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{constants.RoleStaff}
	}
	for _, r := range roles {
		if !constants.IsKnownRole(r) {
			return helper.JsonError(c, fiber.StatusBadRequest, "未知角色: "+r)
		}
	}

	// 建号走与改号相同的策略（目标快照取请求值）
	targetStore := ""
	if req.StoreID != nil {
		targetStore = *req.StoreID
	}
	d := policy.ValidateUserUpdate(actor,
		policy.TargetUser{UserID: "", StoreID: targetStore, Roles: nil},
		policy.UserUpdate{Roles: &roles, StoreID: req.StoreID})
	if !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	hash, err := helper.HashPassword(req.Password)
	if err != nil {
		log.Println("[ERROR] 密码哈希失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "创建用户失败")
	}

	user := model.UserModel{
		Account:          req.Account,
		Name:             req.Name,
		PasswordHash:     hash,
		NursingRole:      req.NursingRole,
		MarketingSubDept: req.MarketingSubDept,
		IsActive:         true,
	}
	if err := user.SetRoles(roles); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "角色列表不合法")
	}
	if req.StoreID != nil {
		id, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		user.StoreID = &id
	}
	if req.DepartmentID != nil {
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id 不合法")
		}
		user.DepartmentID = &id
	}
	if len(req.ExtraDepartments) > 0 {
		b, _ := json.Marshal(req.ExtraDepartments)
		user.ExtraDepartmentIDs = datatypes.JSON(b)
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "账号已存在")
		}
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "门店或部门不存在")
		}
		log.Println("[ERROR] 用户创建失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "创建用户失败")
	}

	log.Printf("[SUCCESS] 新建用户 account=%s by=%s\n", user.Account, actor.UserID)
	return helper.JsonCreated(c, "用户已创建", dto.ToUserResponse(&user))
}

// PUT /api/a/users/:id — 角色/门店/停用改动全部过策略；删除不存在，只有停用。
func (uc *UserController) Update(c *fiber.Ctx) error {
	actor, err := helper.GetActorFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "用户 ID 不合法")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Roles != nil {
		for _, r := range *req.Roles {
			if !constants.IsKnownRole(r) {
				return helper.JsonError(c, fiber.StatusBadRequest, "未知角色: "+r)
			}
		}
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "用户不存在")
		}
		log.Println("[ERROR] 用户查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "用户查询失败")
	}

	targetStore := ""
	if user.StoreID != nil {
		targetStore = user.StoreID.String()
	}
	deactivate := req.IsActive != nil && !*req.IsActive
	d := policy.ValidateUserUpdate(actor,
		policy.TargetUser{UserID: user.ID.String(), StoreID: targetStore, Roles: user.RoleList()},
		policy.UserUpdate{Roles: req.Roles, StoreID: req.StoreID, Deactivate: deactivate})
	if !d.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden, d.Reason)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Roles != nil {
		b, err := json.Marshal(*req.Roles)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "角色列表不合法")
		}
		updates["roles"] = datatypes.JSON(b)
	}
	if req.StoreID != nil {
		id, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "store_id 不合法")
		}
		updates["store_id"] = id
	}
	if req.DepartmentID != nil {
		id, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id 不合法")
		}
		updates["department_id"] = id
	}
	if req.ExtraDepartments != nil {
		b, _ := json.Marshal(*req.ExtraDepartments)
		updates["extra_department_ids"] = datatypes.JSON(b)
	}
	if req.NursingRole != nil {
		updates["nursing_role"] = *req.NursingRole
	}
	if req.MarketingSubDept != nil {
		updates["marketing_sub_dept"] = *req.MarketingSubDept
	}
	if req.Password != nil {
		if helper.IsWeakPassword(*req.Password) {
			return helper.JsonError(c, fiber.StatusBadRequest, "密码太弱：至少 8 位且包含字母和数字")
		}
		hash, err := helper.HashPassword(*req.Password)
		if err != nil {
			log.Println("[ERROR] 密码哈希失败:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "更新用户失败")
		}
		updates["password_hash"] = hash
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "无改动", dto.ToUserResponse(&user))
	}

	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "门店或部门不存在")
		}
		log.Println("[ERROR] 用户更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "更新用户失败")
	}

	log.Printf("[SUCCESS] 更新用户 user=%s by=%s\n", user.ID, actor.UserID)
	return helper.JsonUpdated(c, "用户已更新", dto.ToUserResponse(&user))
}
