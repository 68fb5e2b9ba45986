package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/topic/dto"
	topic "newsagency.com/newsroom/internal/modules/topic/service"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/response"
	"newsagency.com/newsroom/pkg/validator"
)

const listPath = "/topics/"

type TopicHandler struct {
	service topic.TopicService
}

func NewTopicHandler(service topic.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

func (h *TopicHandler) List(c *gin.Context) {
	var filter commonDto.TopicFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = commonDto.TopicFilter{}
	}
	filter.Name = strings.TrimSpace(filter.Name)

	res, err := h.service.ListTopics(c.Request.Context(), filter, pagination.ParsePage(c.Query("page")))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	search := commonDto.SearchForm{
		Field:       "name",
		Value:       filter.Name,
		Placeholder: "Search by name",
	}
	response.Render(c, http.StatusOK, "topic_list.html", gin.H{
		"topic_list":  res.Data,
		"pagination":  res.Meta,
		"search_form": search,
	})
}

func (h *TopicHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, nil, dto.TopicForm{}, nil)
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req dto.TopicForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, nil, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.CreateTopic(c.Request.Context(), req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderForm(c, nil, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *TopicHandler) UpdateForm(c *gin.Context) {
	t, ok := h.loadTopic(c)
	if !ok {
		return
	}
	h.renderForm(c, t, dto.NewTopicForm(t), nil)
}

func (h *TopicHandler) Update(c *gin.Context) {
	t, ok := h.loadTopic(c)
	if !ok {
		return
	}

	var req dto.TopicForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, t, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.UpdateTopic(c.Request.Context(), t.ID, req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderForm(c, t, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *TopicHandler) DeleteConfirm(c *gin.Context) {
	t, ok := h.loadTopic(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, "topic_confirm_delete.html", gin.H{"topic": t})
}

func (h *TopicHandler) Delete(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteTopic(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *TopicHandler) loadTopic(c *gin.Context) (*entity.Topic, bool) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}

	t, err := h.service.GetTopic(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}
	return t, true
}

func (h *TopicHandler) renderForm(c *gin.Context, t *entity.Topic, form dto.TopicForm, errs validator.FormErrors) {
	if errs == nil {
		errs = validator.FormErrors{}
	}
	response.Render(c, http.StatusOK, "topic_form.html", gin.H{
		"topic":  t,
		"form":   form,
		"errors": errs,
	})
}
