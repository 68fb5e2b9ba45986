package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/newspaper/dto"
	newspaper "newsagency.com/newsroom/internal/modules/newspaper/service"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/response"
	"newsagency.com/newsroom/pkg/validator"
)

const listPath = "/newspapers/"

type NewspaperHandler struct {
	service newspaper.NewspaperService
}

func NewNewspaperHandler(service newspaper.NewspaperService) *NewspaperHandler {
	return &NewspaperHandler{service: service}
}

func (h *NewspaperHandler) List(c *gin.Context) {
	var filter commonDto.NewspaperFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = commonDto.NewspaperFilter{}
	}
	filter.Title = strings.TrimSpace(filter.Title)

	res, err := h.service.ListNewspapers(c.Request.Context(), filter, pagination.ParsePage(c.Query("page")))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	search := commonDto.SearchForm{
		Field:       "title",
		Value:       filter.Title,
		Placeholder: "Search by title",
	}
	response.Render(c, http.StatusOK, "newspaper_list.html", gin.H{
		"newspaper_list": res.Data,
		"pagination":     res.Meta,
		"search_form":    search,
	})
}

func (h *NewspaperHandler) Detail(c *gin.Context) {
	n, ok := h.loadNewspaper(c)
	if !ok {
		return
	}
	redactorID, _ := response.GetRedactorID(c)
	response.Render(c, http.StatusOK, "newspaper_detail.html", gin.H{
		"newspaper":   n,
		"redactor_id": redactorID,
		"assigned":    n.HasPublisher(redactorID),
	})
}

func (h *NewspaperHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, nil, dto.NewspaperForm{}, nil)
}

func (h *NewspaperHandler) Create(c *gin.Context) {
	var req dto.NewspaperForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, nil, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.CreateNewspaper(c.Request.Context(), req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderForm(c, nil, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *NewspaperHandler) UpdateForm(c *gin.Context) {
	n, ok := h.loadNewspaper(c)
	if !ok {
		return
	}
	h.renderForm(c, n, dto.NewNewspaperForm(n), nil)
}

func (h *NewspaperHandler) Update(c *gin.Context) {
	n, ok := h.loadNewspaper(c)
	if !ok {
		return
	}

	var req dto.NewspaperForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderForm(c, n, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.UpdateNewspaper(c.Request.Context(), n.ID, req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderForm(c, n, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *NewspaperHandler) DeleteConfirm(c *gin.Context) {
	n, ok := h.loadNewspaper(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, "newspaper_confirm_delete.html", gin.H{"newspaper": n})
}

func (h *NewspaperHandler) Delete(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteNewspaper(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *NewspaperHandler) loadNewspaper(c *gin.Context) (*entity.Newspaper, bool) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}

	n, err := h.service.GetNewspaper(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}
	return n, true
}

func (h *NewspaperHandler) renderForm(c *gin.Context, n *entity.Newspaper, form dto.NewspaperForm, errs validator.FormErrors) {
	choices, err := h.service.FormChoices(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if errs == nil {
		errs = validator.FormErrors{}
	}

	response.Render(c, http.StatusOK, "newspaper_form.html", gin.H{
		"newspaper": n,
		"form":      form,
		"errors":    errs,
		"topics":    choices.Topics,
		"redactors": choices.Redactors,
	})
}
