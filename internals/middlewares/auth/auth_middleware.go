// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"chike_backend/internals/configs"
	authModel "chike_backend/internals/features/users/auth/model"
	helper "chike_backend/internals/helpers"
)

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) 取 Authorization（或 cookie）
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) 黑名单检查（每个请求一次）
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] token 在黑名单中")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] 黑名单查询失败:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 3) 解析并验签 JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET 为空")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] token 解析失败:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) 校验 exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) user_id + 账号在用检查
		userID, err := extractUserID(claims)
		if err != nil {
			log.Println("[ERROR] user_id:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())
		helper.SetRawAccessToken(c, tokenString)

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			return fiber.NewError(fiber.StatusForbidden, "账号已被停用")
		}

		// 6) claims → Locals（roles、store_id、department 等）
		storeClaimsToLocals(c, claims)

		return c.Next()
	}
}
