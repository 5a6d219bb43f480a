package model

import "time"

// RubricCriterion 评分标准表 — 对应 rubric_criteria
// 全局静态参考数据（非赛事维度），由迁移种子化
type RubricCriterion struct {
	CriterionID     string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null"                               json:"name"`
	ShortName       *string   `gorm:"type:varchar(50)"                                         json:"short_name,omitempty"`
	Description     *string   `gorm:"type:text"                                                json:"description,omitempty"`
	MaxScore        int       `gorm:"not null;default:25"                                      json:"max_score"`
	DisplayOrder    int       `gorm:"not null;uniqueIndex"                                     json:"display_order"`
	IconName        *string   `gorm:"type:varchar(50)"                                         json:"icon_name,omitempty"`
	GuidingQuestion *string   `gorm:"type:text"                                                json:"guiding_question,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (RubricCriterion) TableName() string { return "rubric_criteria" }
