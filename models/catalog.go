package models

type StatusOption struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Value     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"value"`
	Label     string `gorm:"type:varchar(100);not null" json:"label"`
	Color     string `gorm:"type:varchar(20);not null" json:"color"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

type SourceOption struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

type BoardTypeOption struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}
