package dto

import (
	"strconv"
	"strings"

	"newsagency.com/newsroom/internal/entity"
	commonDto "newsagency.com/newsroom/pkg/dto"
)

// NewspaperForm keeps the topic and publisher ids as submitted so a value
// that is not an id is reported on its own field.
type NewspaperForm struct {
	Title      string   `form:"title" json:"title" binding:"required,max=255"`
	Content    string   `form:"content" json:"content" binding:"required"`
	Topic      string   `form:"topic" json:"topic" binding:"required,choice"`
	Publishers []string `form:"publishers" json:"publishers" binding:"dive,choice"`
}

func NewNewspaperForm(newspaper *entity.Newspaper) NewspaperForm {
	form := NewspaperForm{
		Title:   newspaper.Title,
		Content: newspaper.Content,
		Topic:   FormatID(newspaper.TopicID),
	}
	for _, p := range newspaper.Publishers {
		form.Publishers = append(form.Publishers, FormatID(p.ID))
	}
	return form
}

func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// TopicSelected reports whether the topic is chosen on the form.
func (f NewspaperForm) TopicSelected(topicID uint) bool {
	return strings.TrimSpace(f.Topic) == FormatID(topicID)
}

// Selected reports whether the redactor is ticked on the form.
func (f NewspaperForm) Selected(redactorID uint) bool {
	want := FormatID(redactorID)
	for _, id := range f.Publishers {
		if strings.TrimSpace(id) == want {
			return true
		}
	}
	return false
}

type NewspaperListResponse struct {
	Data []*entity.Newspaper      `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

// FormChoices lists what the topic and publishers inputs may hold.
type FormChoices struct {
	Topics    []*entity.Topic    `json:"topics"`
	Redactors []*entity.Redactor `json:"redactors"`
}
