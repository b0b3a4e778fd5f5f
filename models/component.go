package models

type Component struct {
	ID    uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string  `gorm:"type:varchar(255);not null" json:"name"`
	Model string  `gorm:"type:varchar(255);not null" json:"model"`
	Price float64 `gorm:"not null" json:"price"`
}
