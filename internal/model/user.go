package model

import "time"

// ── 用户角色 ──

const (
	RoleJudge     = "judge"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User 用户账号表 — 对应 users
type User struct {
	UserID       string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"                   json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                               json:"-"`
	Name         string     `gorm:"type:varchar(255);not null"                               json:"name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'judge'"                json:"role"`
	IsActive     bool       `gorm:"not null;default:true"                                    json:"is_active"`
	LastLogin    *time.Time `gorm:""                                                         json:"last_login,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
