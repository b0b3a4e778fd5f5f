package models

import "time"

type Share struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID      uint       `gorm:"not null;uniqueIndex" json:"project_id"`
	OwnerID        uint       `gorm:"not null;index" json:"owner_id"`
	PasswordHash   string     `gorm:"type:varchar(64)" json:"-"`
	ExpireTime     *time.Time `json:"expire_time"`
	AccessCount    int        `gorm:"default:0" json:"access_count"`
	MaxAccessCount *int       `json:"max_access_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (s *Share) HasPassword() bool {
	return s.PasswordHash != ""
}

func (s *Share) Expired(now time.Time) bool {
	return s.ExpireTime != nil && now.After(*s.ExpireTime)
}

func (s *Share) QuotaExhausted() bool {
	return s.MaxAccessCount != nil && s.AccessCount >= *s.MaxAccessCount
}
