package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"chike_backend/internals/configs"
	authModel "chike_backend/internals/features/users/auth/model"
	deptModel "chike_backend/internals/features/org/departments/model"
	userModel "chike_backend/internals/features/users/user/model"
)

const (
	accessTTL  = 2 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

var ErrRefreshInvalid = errors.New("refresh token 无效")

// buildAccessClaims 的键名与 auth 中间件 storeClaimsToLocals 一一对应。
func buildAccessClaims(user *userModel.UserModel, dept *deptModel.DepartmentModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"user_name": user.Name,
		"roles":     user.RoleList(),
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTL).Unix(),
	}
	if user.StoreID != nil {
		claims["store_id"] = user.StoreID.String()
	}
	if user.DepartmentID != nil {
		claims["department_id"] = user.DepartmentID.String()
	}
	if dept != nil {
		claims["department_code"] = dept.Code
	}
	if user.NursingRole != nil {
		claims["nursing_role"] = *user.NursingRole
	}
	return claims
}

func hashRefresh(raw string) string {
	sum := sha256.Sum256([]byte(raw + configs.JWTRefreshSecret))
	return hex.EncodeToString(sum[:])
}

// IssueTokenPair 签发 access + refresh，并把 refresh 摘要落库。
func IssueTokenPair(db *gorm.DB, user *userModel.UserModel, dept *deptModel.DepartmentModel, userAgent, ip string) (access string, refresh string, err error) {
	now := time.Now().UTC()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, dept, now)).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTL).Unix(),
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}

	rec := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefresh(refresh),
		ExpiresAt: now.Add(refreshTTL),
	}
	if userAgent != "" {
		rec.UserAgent = &userAgent
	}
	if ip != "" {
		rec.IP = &ip
	}
	if err := db.Create(&rec).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ConsumeRefresh 验签 + 查库 + 旋转（旧 token 作废）。返回 user_id。
func ConsumeRefresh(db *gorm.DB, raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrRefreshInvalid
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrRefreshInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrRefreshInvalid
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrRefreshInvalid
	}

	var rec authModel.RefreshToken
	if err := db.Where("token_hash = ? AND revoked_at IS NULL AND expires_at > NOW()", hashRefresh(raw)).
		First(&rec).Error; err != nil {
		return uuid.Nil, ErrRefreshInvalid
	}
	// 旋转：旧 refresh 立即作废
	now := time.Now().UTC()
	if err := db.Model(&rec).Update("revoked_at", now).Error; err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// RevokeUserRefreshTokens 登出时连带吊销该用户全部 refresh。
func RevokeUserRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC()).Error
}

// PruneExpired 清掉早已过期/吊销的 refresh 记录，登录时顺手调用。
func PruneExpired(db *gorm.DB) {
	db.Where("expires_at < NOW() - INTERVAL '7 days'").Delete(&authModel.RefreshToken{})
}
