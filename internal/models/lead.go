package models

import "github.com/google/uuid"

type Lead struct {
	BaseModel
	Name       string     `gorm:"not null" json:"name"`
	Email      string     `gorm:"not null;index" json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	Source     string     `json:"source,omitempty"`
	Status     LeadStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assignedTo,omitempty"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdBy"`
}
