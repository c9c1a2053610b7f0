package models

import "time"

// Client is a vendor implementation under test.
type Client struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName    string    `gorm:"not null" json:"company_name"`
	ProductName    string    `gorm:"not null;default:UNKNOWN;size:30" json:"product_name"`
	ProductVersion string    `gorm:"not null;default:0.0;size:5" json:"product_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Subject   string    `gorm:"index;not null" json:"subject"`
	ClientID  *string   `gorm:"type:uuid" json:"client_id,omitempty"`
	Action    string    `gorm:"not null" json:"action"`
	Metadata  JSONB     `gorm:"type:jsonb;default:'{}'::jsonb" json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// Algorithm is a catalogue row, seeded from the engine registry at start-up.
type Algorithm struct {
	Name      string    `gorm:"primaryKey;size:32" json:"name"`
	Kind      string    `gorm:"not null" json:"kind"`
	Primitive string    `gorm:"not null" json:"primitive"`
	Reference string    `json:"reference"`
	UsesFresh bool      `gorm:"not null;default:false" json:"uses_fresh"`
	TestModes JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"test_modes"`
	UpdatedAt time.Time `json:"updated_at"`
}
