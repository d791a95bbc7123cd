package models

import "github.com/google/uuid"

type Customer struct {
	BaseModel
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;index" json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Company   string         `json:"company,omitempty"`
	Address   string         `json:"address,omitempty"`
	Status    CustomerStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedBy uuid.UUID      `gorm:"type:uuid;not null;index" json:"createdBy"`
}
