package models

import "time"

type UploadSession struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	TempDir       string    `gorm:"type:varchar(500);not null" json:"temp_dir"`
	TotalFiles    int       `gorm:"not null" json:"total_files"`
	UploadedFiles int       `gorm:"default:0" json:"uploaded_files"`
	FileList      string    `gorm:"type:text" json:"file_list"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
