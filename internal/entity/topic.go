package entity

import "time"

type Topic struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"size:255;not null;index" json:"name"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	Newspapers []Newspaper `gorm:"constraint:OnDelete:CASCADE" json:"newspapers,omitempty"`
}

func (t Topic) String() string {
	return t.Name
}
