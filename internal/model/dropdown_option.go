package model

import "time"

// Dropdown categories shown in the public intake form
const (
	CategoryDetails = "details"
	CategoryType    = "type"
	CategoryDepot   = "depot"
)

// ValidCategory reports whether category is one of the known dropdown categories
func ValidCategory(category string) bool {
	switch category {
	case CategoryDetails, CategoryType, CategoryDepot:
		return true
	}
	return false
}

// DropdownOption is a configurable choice value for the public intake form.
// Deletion is soft: IsActive=false hides the option but keeps history.
type DropdownOption struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Category   string    `json:"category" gorm:"type:varchar(20);not null;index"`
	Label      string    `json:"label" gorm:"type:varchar(255);not null"`
	OrderIndex int       `json:"order_index" gorm:"default:0"`
	IsActive   bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time `json:"created_at"`
}
