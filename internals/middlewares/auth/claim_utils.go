// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	// Authorization header，找不到就退回 cookie
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	// 容忍多余空格，大小写不敏感
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}

	now := time.Now().UTC()
	expTime := time.Unix(expUnix, 0).UTC()
	if now.After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	idRaw, ok := claims["id"]
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	switch v := idRaw.(type) {
	case string:
		return uuid.Parse(strings.TrimSpace(v))
	default:
		return uuid.Nil, fmt.Errorf("invalid user id type")
	}
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user struct {
		IsActive bool
	}
	if err := db.Table("users").Select("is_active").Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}
	if !user.IsActive {
		return errors.New("user inactive")
	}
	return nil
}

/* ======== Store claims to Locals ======== */

// storeClaimsToLocals 把会话信息展开到 Locals，后续 handler 不再碰 JWT。
// claims 结构见 auth 服务签发逻辑：
// {id, user_name, roles: [], store_id, department_id, department_code, nursing_role}
func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if userName, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", userName)
	}

	roles := toStringSlice(claims["roles"])
	if len(roles) > 0 {
		c.Locals("roles", roles)
	}

	for _, key := range []string{"store_id", "department_id", "department_code", "nursing_role"} {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			c.Locals(key, strings.TrimSpace(v))
		}
	}
}

/* ======== Helpers ======== */

func toStringSlice(v interface{}) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok {
				s = strings.TrimSpace(s)
				if s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return nil
	}
}
