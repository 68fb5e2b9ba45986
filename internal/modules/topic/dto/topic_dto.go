package dto

import (
	"newsagency.com/newsroom/internal/entity"
	commonDto "newsagency.com/newsroom/pkg/dto"
)

type TopicForm struct {
	Name string `form:"name" json:"name" binding:"required,max=255"`
}

type TopicListResponse struct {
	Data []*entity.Topic          `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

func NewTopicForm(topic *entity.Topic) TopicForm {
	return TopicForm{Name: topic.Name}
}
