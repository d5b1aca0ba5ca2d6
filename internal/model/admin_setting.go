package model

import "time"

// Setting key read by the public booking form
const SettingNextOpeningDate = "next_opening_date"

// AdminSetting is a single mutable key/value row
type AdminSetting struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Key       string    `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:varchar(255)"`
	UpdatedAt time.Time `json:"updated_at"`
}
