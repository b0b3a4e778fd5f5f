package models

import "time"

type Project struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Source    string    `gorm:"type:varchar(100);not null" json:"source"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"not null" json:"price"`
	BoardType string    `gorm:"type:varchar(100);not null" json:"board_type"`
	Status    string    `gorm:"type:varchar(50);not null;index" json:"status"`
	Remark    string    `gorm:"type:text" json:"remark"`
	// StorageKey names the on-disk project folder. It is assigned once at
	// creation and never rewritten, so renaming the project cannot orphan
	// already-uploaded files.
	StorageKey string    `gorm:"type:varchar(320);not null;uniqueIndex" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProjectComponent struct {
	ID          uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   uint `gorm:"not null;index" json:"project_id"`
	ComponentID uint `gorm:"not null;index" json:"component_id"`
	Quantity    int  `gorm:"not null" json:"quantity"`
}

type ProjectRequirement struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint   `gorm:"not null;index" json:"project_id"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Color     string `gorm:"type:varchar(20);not null;default:#2196F3" json:"color"`
}
