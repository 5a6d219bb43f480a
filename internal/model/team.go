package model

import "time"

// ── 队伍状态 ──
// waiting/active/completed 为演示流转；pending/approved/rejected 为报名审核流转

const (
	TeamStatusWaiting   = "waiting"
	TeamStatusActive    = "active"
	TeamStatusCompleted = "completed"
	TeamStatusPending   = "pending"
	TeamStatusApproved  = "approved"
	TeamStatusRejected  = "rejected"
)

// ValidTeamStatuses 合法的队伍状态集合
var ValidTeamStatuses = map[string]bool{
	TeamStatusWaiting:   true,
	TeamStatusActive:    true,
	TeamStatusCompleted: true,
	TeamStatusPending:   true,
	TeamStatusApproved:  true,
	TeamStatusRejected:  true,
}

// Team 队伍表 — 对应 teams
// 队名与出场顺序在赛事内唯一
type Team struct {
	TeamID            string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID           string  `gorm:"type:uuid;not null;index"                                 json:"event_id"`
	Name              string  `gorm:"type:varchar(255);not null"                               json:"name"`
	ProjectTitle      *string `gorm:"type:varchar(255)"                                        json:"project_title,omitempty"`
	Description       *string `gorm:"type:text"                                                json:"description,omitempty"`
	PresentationOrder *int    `gorm:""                                                         json:"presentation_order,omitempty"`
	Status            string  `gorm:"type:varchar(20);default:'waiting'"                       json:"status"`
	ProjectURL        *string `gorm:"type:text"                                                json:"project_url,omitempty"`
	BaseModel

	// 关联
	Members []TeamMember `gorm:"foreignKey:TeamID;references:TeamID" json:"members,omitempty"`
}

// TableName 指定表名
func (Team) TableName() string { return "teams" }

// TeamMember 队伍成员表 — 对应 team_members
// 纯联系人记录，不关联用户账号
type TeamMember struct {
	MemberID  string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeamID    string    `gorm:"type:uuid;not null;index"                                 json:"team_id"`
	Name      string    `gorm:"type:varchar(255);not null"                               json:"name"`
	Email     *string   `gorm:"type:varchar(255)"                                        json:"email,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (TeamMember) TableName() string { return "team_members" }
