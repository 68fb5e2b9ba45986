package dto

import (
	"strconv"

	"newsagency.com/newsroom/internal/entity"
	commonDto "newsagency.com/newsroom/pkg/dto"
)

type CreateRedactorForm struct {
	Username          string `form:"username" json:"username" binding:"required,max=150,username"`
	FirstName         string `form:"first_name" json:"first_name" binding:"max=150"`
	LastName          string `form:"last_name" json:"last_name" binding:"max=150"`
	YearsOfExperience string `form:"years_of_experience" json:"years_of_experience" binding:"omitempty,number"`
	Password1         string `form:"password1" json:"password1" binding:"required,min=8"`
	Password2         string `form:"password2" json:"password2" binding:"required,eqfield=Password1"`
}

// Sanitized drops the passwords so a re-rendered form never echoes them.
func (f CreateRedactorForm) Sanitized() CreateRedactorForm {
	f.Password1 = ""
	f.Password2 = ""
	return f
}

type UpdateRedactorForm struct {
	Username          string `form:"username" json:"username" binding:"required,max=150,username"`
	FirstName         string `form:"first_name" json:"first_name" binding:"max=150"`
	LastName          string `form:"last_name" json:"last_name" binding:"max=150"`
	YearsOfExperience string `form:"years_of_experience" json:"years_of_experience" binding:"omitempty,number"`
}

func NewUpdateRedactorForm(redactor *entity.Redactor) UpdateRedactorForm {
	return UpdateRedactorForm{
		Username:          redactor.Username,
		FirstName:         redactor.FirstName,
		LastName:          redactor.LastName,
		YearsOfExperience: strconv.FormatUint(uint64(redactor.YearsOfExperience), 10),
	}
}

type RedactorListResponse struct {
	Data []*entity.Redactor       `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}

type ToggleNewspaperRequest struct {
	NewspaperID uint `form:"newspaper" binding:"required"`
}
