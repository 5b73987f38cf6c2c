package model

import "time"

type SocialPlatform string

const (
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformWhatsapp  SocialPlatform = "whatsapp"
)

// OAuthで接続した外部アカウント
type SocialAccount struct {
	ID       int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64          `gorm:"not null;index;uniqueIndex:uniq_user_platform" json:"user_id"`
	Platform SocialPlatform `gorm:"type:varchar(20);not null;uniqueIndex:uniq_user_platform" json:"platform"`

	PlatformUserID   string `gorm:"type:varchar(200);not null" json:"platform_user_id"`
	PlatformUsername string `gorm:"type:varchar(100)" json:"platform_username"`

	AccessToken    string     `gorm:"type:text;not null" json:"-"`
	RefreshToken   string     `gorm:"type:text" json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`

	FollowersCount int64 `gorm:"not null;default:0" json:"followers_count"`
	IsActive       bool  `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// トークンが期限切れか
func (a SocialAccount) IsTokenExpired(now time.Time) bool {
	if a.TokenExpiresAt == nil {
		return false
	}
	return now.After(*a.TokenExpiresAt)
}

type SocialPostStatus string

const (
	SocialPostDraft     SocialPostStatus = "draft"
	SocialPostScheduled SocialPostStatus = "scheduled"
	SocialPostPublished SocialPostStatus = "published"
	SocialPostFailed    SocialPostStatus = "failed"
)

type SocialPost struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64          `gorm:"not null;index" json:"user_id"`
	SocialAccountID int64          `gorm:"not null;index" json:"social_account_id"`
	Platform        SocialPlatform `gorm:"type:varchar(20);not null" json:"platform"`

	Content  string `gorm:"type:text;not null" json:"content"`
	Hashtags string `gorm:"type:varchar(500)" json:"hashtags"`

	ProductID *int64 `gorm:"index" json:"product_id"`

	Status SocialPostStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`

	//予約投稿はレコードとして保存するだけ（実際のタイマーは持たない）
	ScheduledAt *time.Time `json:"scheduled_at"`
	PublishedAt *time.Time `json:"published_at"`

	ExternalPostID string `gorm:"type:varchar(200)" json:"external_post_id"`
	PostURL        string `gorm:"type:varchar(500)" json:"post_url"`
	PlatformError  string `gorm:"type:text" json:"platform_error"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
