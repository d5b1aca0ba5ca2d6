package model

import "time"

// PoolingSchedule is a collection location/date row linked to a trade.
// OrderIndex is the display position, kept contiguous per list by the
// reorder operation.
type PoolingSchedule struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	TradeID     uint      `json:"trade_id" gorm:"index"`
	Location    string    `json:"location" gorm:"type:varchar(255);not null"`
	PoolingDate string    `json:"pooling_date" gorm:"type:varchar(10);not null"`
	OrderIndex  int       `json:"order_index" gorm:"default:0;index"`
	CreatedAt   time.Time `json:"created_at"`
}
