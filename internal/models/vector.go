package models

import "time"

// Vector is a generated vector set as handed to a client.
type Vector struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Subject     string    `gorm:"not null" json:"subject"`
	ClientID    string    `gorm:"type:uuid;index;not null" json:"client_id"`
	Algorithm   string    `gorm:"not null" json:"algorithm"`
	Family      string    `gorm:"not null" json:"family"`
	TestMode    string    `gorm:"not null" json:"test_mode"`
	Records     int       `gorm:"not null" json:"records"`
	Fingerprint string    `gorm:"size:64;not null" json:"fingerprint"`
	Params      JSONB     `gorm:"type:jsonb" json:"params"`
	Set         JSONB     `gorm:"type:jsonb;not null" json:"set"`
	Status      string    `gorm:"not null;default:ready" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Vector) TableName() string { return "vectors" }
