package models

import (
	"time"
)

// ContactRecord is the persisted contact book entry. The live campaign state
// (selection, intro cache, dispatch results) is in-memory only.
type ContactRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	Title     string    `gorm:"type:varchar(10)" json:"title"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	JobTitle  string    `gorm:"type:varchar(255)" json:"job_title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContactRecord) TableName() string {
	return "contacts"
}
