package model

import "time"

// Submission is a booking record created by the public intake form. The admin
// API never mutates these rows; they are view/export only. Weight arrives as
// free text from the form and is coerced to a number only when aggregating.
type Submission struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	TradeNumber       string    `json:"trade_number" gorm:"type:varchar(50);index"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	PhoneNumber       string    `json:"phone_number" gorm:"type:varchar(50);not null"`
	Details           string    `json:"details" gorm:"type:text"`
	Weight            string    `json:"weight" gorm:"type:varchar(32)"`
	Type              string    `json:"type" gorm:"type:varchar(100)"`
	Depot             string    `json:"depot" gorm:"type:varchar(100)"`
	DeviceFingerprint string    `json:"device_fingerprint" gorm:"type:varchar(128);index"`
	SubmittedAt       time.Time `json:"submitted_at"`
}
