package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/internal/modules/redactor/dto"
	redactor "newsagency.com/newsroom/internal/modules/redactor/service"
	"newsagency.com/newsroom/pkg/apperror"
	commonDto "newsagency.com/newsroom/pkg/dto"
	"newsagency.com/newsroom/pkg/pagination"
	"newsagency.com/newsroom/pkg/response"
	"newsagency.com/newsroom/pkg/validator"
)

const listPath = "/redactors/"

type RedactorHandler struct {
	service redactor.RedactorService
}

func NewRedactorHandler(service redactor.RedactorService) *RedactorHandler {
	return &RedactorHandler{service: service}
}

func (h *RedactorHandler) List(c *gin.Context) {
	var filter commonDto.RedactorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		filter = commonDto.RedactorFilter{}
	}
	filter.Username = strings.TrimSpace(filter.Username)

	res, err := h.service.ListRedactors(c.Request.Context(), filter, pagination.ParsePage(c.Query("page")))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	search := commonDto.SearchForm{
		Field:       "username",
		Value:       filter.Username,
		Placeholder: "Search by username",
	}
	response.Render(c, http.StatusOK, "redactor_list.html", gin.H{
		"redactor_list": res.Data,
		"pagination":    res.Meta,
		"search_form":   search,
	})
}

func (h *RedactorHandler) Detail(c *gin.Context) {
	r, ok := h.loadRedactor(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, "redactor_detail.html", gin.H{"redactor": r})
}

func (h *RedactorHandler) CreateForm(c *gin.Context) {
	h.renderCreateForm(c, dto.CreateRedactorForm{}, nil)
}

func (h *RedactorHandler) Create(c *gin.Context) {
	var req dto.CreateRedactorForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderCreateForm(c, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.CreateRedactor(c.Request.Context(), req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderCreateForm(c, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *RedactorHandler) UpdateForm(c *gin.Context) {
	r, ok := h.loadRedactor(c)
	if !ok {
		return
	}
	h.renderUpdateForm(c, r, dto.NewUpdateRedactorForm(r), nil)
}

func (h *RedactorHandler) Update(c *gin.Context) {
	r, ok := h.loadRedactor(c)
	if !ok {
		return
	}

	var req dto.UpdateRedactorForm
	if err := c.ShouldBind(&req); err != nil {
		h.renderUpdateForm(c, r, req, validator.ToFormErrors(err))
		return
	}

	if _, err := h.service.UpdateRedactor(c.Request.Context(), r.ID, req); err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderUpdateForm(c, r, req, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

func (h *RedactorHandler) DeleteConfirm(c *gin.Context) {
	r, ok := h.loadRedactor(c)
	if !ok {
		return
	}
	response.Render(c, http.StatusOK, "redactor_confirm_delete.html", gin.H{"redactor": r})
}

func (h *RedactorHandler) Delete(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteRedactor(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, listPath)
}

// ToggleNewspaper flips the assignment named by ?newspaper=, or by the
// newspaper detail page the link was followed from, and sends the client back
// where it came from.
func (h *RedactorHandler) ToggleNewspaper(c *gin.Context) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	newspaperID, err := toggleTarget(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if _, err := h.service.ToggleNewspaper(c.Request.Context(), id, newspaperID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Redirect(c, response.RefererOr(c, fmt.Sprintf("/redactors/%d/", id)))
}

var newspaperDetailPath = regexp.MustCompile(`^/newspapers/([0-9]+)/(\?.*)?$`)

func toggleTarget(c *gin.Context) (uint, error) {
	var req dto.ToggleNewspaperRequest
	if err := c.ShouldBindQuery(&req); err == nil {
		return req.NewspaperID, nil
	}

	if _, given := c.GetQuery("newspaper"); !given {
		m := newspaperDetailPath.FindStringSubmatch(response.RefererOr(c, ""))
		if m != nil {
			if newspaperID, err := strconv.ParseUint(m[1], 10, strconv.IntSize); err == nil && newspaperID > 0 {
				return uint(newspaperID), nil
			}
		}
	}
	return 0, apperror.New(http.StatusBadRequest, "invalid newspaper", apperror.ErrBadRequest)
}

func (h *RedactorHandler) loadRedactor(c *gin.Context) (*entity.Redactor, bool) {
	id, err := response.ParamID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}

	r, err := h.service.GetRedactor(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return nil, false
	}
	return r, true
}

func (h *RedactorHandler) renderCreateForm(c *gin.Context, form dto.CreateRedactorForm, errs validator.FormErrors) {
	if errs == nil {
		errs = validator.FormErrors{}
	}
	response.Render(c, http.StatusOK, "redactor_form.html", gin.H{
		"redactor": nil,
		"form":     form.Sanitized(),
		"errors":   errs,
		"creating": true,
	})
}

func (h *RedactorHandler) renderUpdateForm(c *gin.Context, r *entity.Redactor, form dto.UpdateRedactorForm, errs validator.FormErrors) {
	if errs == nil {
		errs = validator.FormErrors{}
	}
	response.Render(c, http.StatusOK, "redactor_form.html", gin.H{
		"redactor": r,
		"form":     form,
		"errors":   errs,
		"creating": false,
	})
}
