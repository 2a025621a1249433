package helper

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsWeakPassword 弱密码判定：长度 < 8，或缺少字母/数字任意一类。
// 登录时回传 password_weak 标记，提示用户改密，不强制拦截。
func IsWeakPassword(plain string) bool {
	if len(plain) < 8 {
		return true
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return !hasLetter || !hasDigit
}
