package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authModel "chike_backend/internals/features/users/auth/model"
	"chike_backend/internals/features/users/auth/dto"
	"chike_backend/internals/features/users/auth/service"
	userModel "chike_backend/internals/features/users/user/model"
	helper "chike_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

const refreshCookieName = "refresh_token"

func setRefreshCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/api/auth",
		Expires:  time.Now().Add(ttl),
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "account = ?", req.Account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 账号不存在与密码错误同文案，避免枚举账号
			return helper.JsonError(c, fiber.StatusUnauthorized, "账号或密码错误")
		}
		log.Println("[ERROR] 登录查询失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "登录失败")
	}
	if !helper.CheckPassword(user.PasswordHash, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "账号或密码错误")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "账号已被停用")
	}

	dept := service.LoadDepartment(ac.DB, &user)
	access, refresh, err := service.IssueTokenPair(ac.DB, &user, dept, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] 签发 token 失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "登录失败")
	}
	setRefreshCookie(c, refresh, 7*24*time.Hour)
	go service.PruneExpired(ac.DB)

	log.Printf("[SUCCESS] 登录 account=%s\n", user.Account)
	return helper.JsonOK(c, "登录成功", dto.LoginResponse{
		AccessToken: access,
		User:        service.BuildSession(ac.DB, &user, helper.IsWeakPassword(req.Password)),
	})
}

// POST /api/auth/refresh-token
func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "缺少 refresh token")
	}

	userID, err := service.ConsumeRefresh(ac.DB, raw)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "refresh token 无效或已过期")
		}
		log.Println("[ERROR] refresh 处理失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "刷新失败")
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "用户不存在")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "账号已被停用")
	}

	dept := service.LoadDepartment(ac.DB, &user)
	access, refresh, err := service.IssueTokenPair(ac.DB, &user, dept, c.Get("User-Agent"), c.IP())
	if err != nil {
		log.Println("[ERROR] 签发 token 失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "刷新失败")
	}
	setRefreshCookie(c, refresh, 7*24*time.Hour)

	return helper.JsonOK(c, "刷新成功", fiber.Map{"access_token": access})
}

// POST /api/auth/logout — access token 进黑名单，refresh 全部吊销
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		entry := authModel.TokenBlacklist{
			Token:     raw,
			ExpiredAt: time.Now().Add(2 * time.Hour),
		}
		if err := ac.DB.Create(&entry).Error; err != nil && !helper.IsUniqueViolation(err) {
			log.Println("[ERROR] 黑名单写入失败:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "登出失败")
		}
	}
	if err := service.RevokeUserRefreshTokens(ac.DB, userID); err != nil {
		log.Println("[ERROR] refresh 吊销失败:", err)
	}
	c.Cookie(&fiber.Cookie{Name: refreshCookieName, Value: "", Path: "/api/auth", Expires: time.Now().Add(-time.Hour)})

	log.Printf("[SUCCESS] 登出 user=%s\n", userID)
	return helper.JsonOK(c, "已登出", nil)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "请求体不是合法 JSON")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if helper.IsWeakPassword(req.NewPassword) {
		return helper.JsonError(c, fiber.StatusBadRequest, "新密码太弱：至少 8 位且包含字母和数字")
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "用户不存在")
	}
	if !helper.CheckPassword(user.PasswordHash, req.OldPassword) {
		return helper.JsonError(c, fiber.StatusForbidden, "原密码不正确")
	}

	hash, err := helper.HashPassword(req.NewPassword)
	if err != nil {
		log.Println("[ERROR] 密码哈希失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "修改密码失败")
	}
	if err := ac.DB.Model(&user).Update("password_hash", hash).Error; err != nil {
		log.Println("[ERROR] 密码更新失败:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "修改密码失败")
	}
	// 改密后其它会话全部失效
	if err := service.RevokeUserRefreshTokens(ac.DB, userID); err != nil {
		log.Println("[ERROR] refresh 吊销失败:", err)
	}

	return helper.JsonUpdated(c, "密码已修改", nil)
}

// GET /api/u/me — 当前会话快照
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := ac.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "用户不存在")
	}
	return helper.JsonOK(c, "ok", service.BuildSession(ac.DB, &user, false))
}
