package model

import "time"

// Trade represents one weekly operating cycle. At most one trade is active at
// a time; the activate operations enforce this transactionally.
type Trade struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	TradeNumber string    `json:"trade_number" gorm:"type:varchar(50);not null"`
	TradeDate   string    `json:"trade_date" gorm:"type:varchar(10);not null"`
	IsActive    bool      `json:"is_active" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
}
