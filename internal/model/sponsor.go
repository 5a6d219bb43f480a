package model

import "time"

// Sponsor 赞助商表 — 对应 sponsors
// 品牌属性（logo、主题色）用于客户端按赞助商换肤
type Sponsor struct {
	SponsorID      string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"type:varchar(255);uniqueIndex;not null"                   json:"name"`
	LogoURL        *string   `gorm:"type:text"                                                json:"logo_url,omitempty"`
	WebsiteURL     *string   `gorm:"type:text"                                                json:"website_url,omitempty"`
	Tier           *string   `gorm:"type:varchar(50)"                                         json:"tier,omitempty"`
	PrimaryColor   string    `gorm:"type:varchar(7);default:'#500000'"                        json:"primary_color"`
	SecondaryColor string    `gorm:"type:varchar(7);default:'#FFFFFF'"                        json:"secondary_color"`
	TextColor      string    `gorm:"type:varchar(7);default:'#FFFFFF'"                        json:"text_color"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (Sponsor) TableName() string { return "sponsors" }
