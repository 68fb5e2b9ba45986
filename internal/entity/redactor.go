package entity

import (
	"fmt"
	"time"
)

// Redactor is a staff account of the agency.
type Redactor struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	Username          string      `gorm:"size:150;uniqueIndex;not null" json:"username"`
	FirstName         string      `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName          string      `gorm:"size:150;not null;default:''" json:"last_name"`
	YearsOfExperience uint        `gorm:"not null;default:0" json:"years_of_experience"`
	PasswordHash      string      `gorm:"size:255;not null" json:"-"`
	DateJoined        time.Time   `gorm:"autoCreateTime" json:"date_joined"`
	Newspapers        []Newspaper `gorm:"many2many:newspaper_publishers" json:"newspapers,omitempty"`
}

func (r Redactor) String() string {
	return fmt.Sprintf("%s (%s %s)", r.Username, r.FirstName, r.LastName)
}
