// File: internal/sitesettings/model.go
package sitesettings

import (
	"school_portal_backend/internal/common"
)

// SiteSettings is the single row of site-wide configuration edited from the
// admin panel.
type SiteSettings struct {
	common.BaseModel
	SchoolNameFR string  `gorm:"type:varchar(200);not null;default:''"`
	SchoolNameAR string  `gorm:"type:varchar(200);not null;default:''"`
	AboutFR      string  `gorm:"type:text"`
	AboutAR      string  `gorm:"type:text"`
	Address      *string `gorm:"type:varchar(300)"`
	Phone        *string `gorm:"type:varchar(30)"`
	ContactEmail *string `gorm:"type:varchar(255)"`
	FacebookURL  *string `gorm:"type:varchar(500)"`
	YoutubeURL   *string `gorm:"type:varchar(500)"`
	LogoURL      *string `gorm:"type:varchar(500)"`
}

// TableName specifies the table name for the SiteSettings model.
func (SiteSettings) TableName() string {
	return "site_settings"
}

// UpdateSettingsRequest carries a partial settings update.
type UpdateSettingsRequest struct {
	SchoolNameFR *string `json:"school_name_fr,omitempty" binding:"omitempty,max=200"`
	SchoolNameAR *string `json:"school_name_ar,omitempty" binding:"omitempty,max=200"`
	AboutFR      *string `json:"about_fr,omitempty"`
	AboutAR      *string `json:"about_ar,omitempty"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=300"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	ContactEmail *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	FacebookURL  *string `json:"facebook_url,omitempty" binding:"omitempty,url"`
	YoutubeURL   *string `json:"youtube_url,omitempty" binding:"omitempty,url"`
	LogoURL      *string `json:"logo_url,omitempty" binding:"omitempty,url"`
}
