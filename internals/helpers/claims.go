package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chike_backend/internals/policy"
)

// 从 c.Locals("user_id") 取当前用户 ID。
// 未登录返回 401，格式非法返回 400。
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "用户未登录")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "用户未登录")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "用户未登录")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "token 中的用户 ID 不合法")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "token 中的用户 ID 不合法")
	}
}

// GetRolesFromLocals 取中间件写入的角色列表。
func GetRolesFromLocals(c *fiber.Ctx) []string {
	switch t := c.Locals("roles").(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	default:
		return nil
	}
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// GetActorFromLocals 把中间件展开的 claims 组装成策略评估用的 Actor。
func GetActorFromLocals(c *fiber.Ctx) (policy.Actor, error) {
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return policy.Actor{}, err
	}

	actor := policy.Actor{
		UserID:         userID.String(),
		Roles:          GetRolesFromLocals(c),
		StoreID:        localString(c, "store_id"),
		DepartmentID:   localString(c, "department_id"),
		DepartmentCode: localString(c, "department_code"),
		NursingRole:    localString(c, "nursing_role"),
	}
	if len(actor.Roles) == 0 {
		return policy.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "token 中缺少角色信息")
	}
	return actor, nil
}
