package dto

// ── 赞助商模块 DTO ──

// CreateSponsorRequest 创建赞助商请求
type CreateSponsorRequest struct {
	Name           string  `json:"name"            binding:"required,min=1,max=255"`
	LogoURL        *string `json:"logo_url"`
	WebsiteURL     *string `json:"website_url"`
	Tier           *string `json:"tier"            binding:"omitempty,oneof=platinum gold silver bronze"`
	PrimaryColor   *string `json:"primary_color"   binding:"omitempty,len=7"`
	SecondaryColor *string `json:"secondary_color" binding:"omitempty,len=7"`
	TextColor      *string `json:"text_color"      binding:"omitempty,len=7"`
}

// UpdateSponsorRequest 更新赞助商请求
type UpdateSponsorRequest struct {
	Name           *string `json:"name"            binding:"omitempty,min=1,max=255"`
	LogoURL        *string `json:"logo_url"`
	WebsiteURL     *string `json:"website_url"`
	Tier           *string `json:"tier"            binding:"omitempty,oneof=platinum gold silver bronze"`
	PrimaryColor   *string `json:"primary_color"   binding:"omitempty,len=7"`
	SecondaryColor *string `json:"secondary_color" binding:"omitempty,len=7"`
	TextColor      *string `json:"text_color"      binding:"omitempty,len=7"`
}

// SponsorResponse 赞助商信息响应
type SponsorResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	LogoURL        *string `json:"logo_url,omitempty"`
	WebsiteURL     *string `json:"website_url,omitempty"`
	Tier           *string `json:"tier,omitempty"`
	PrimaryColor   string  `json:"primary_color"`
	SecondaryColor string  `json:"secondary_color"`
	TextColor      string  `json:"text_color"`
}
