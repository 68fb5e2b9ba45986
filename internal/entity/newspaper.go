package entity

import "time"

type Newspaper struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	PublishedDate time.Time  `gorm:"autoCreateTime;<-:create;index" json:"published_date"`
	TopicID       uint       `gorm:"not null;index" json:"topic_id"`
	Topic         *Topic     `json:"topic,omitempty"`
	Publishers    []Redactor `gorm:"many2many:newspaper_publishers" json:"publishers,omitempty"`
}

func (n Newspaper) String() string {
	return n.Title
}

// HasPublisher reports whether the redactor is among the loaded publishers.
func (n Newspaper) HasPublisher(redactorID uint) bool {
	for _, p := range n.Publishers {
		if p.ID == redactorID {
			return true
		}
	}
	return false
}

// NewspaperPublisher is the join row between a newspaper and one of its
// redactors. Deleting either side removes the row, never the other side.
type NewspaperPublisher struct {
	NewspaperID uint `gorm:"primaryKey"`
	RedactorID  uint `gorm:"primaryKey;index"`
}
