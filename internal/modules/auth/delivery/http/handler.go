package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsagency.com/newsroom/internal/modules/auth/dto"
	auth "newsagency.com/newsroom/internal/modules/auth/service"
	"newsagency.com/newsroom/pkg/response"
	"newsagency.com/newsroom/pkg/validator"
)

type AuthHandler struct {
	service      auth.AuthService
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(service auth.AuthService, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.renderLogin(c, dto.LoginInput{Next: c.Query("next")}, nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.renderLogin(c, input, validator.ToFormErrors(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		if formErrs, ok := validator.AsFormErrors(err); ok {
			h.renderLogin(c, input, formErrs)
			return
		}
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, res.AccessToken, int(h.cookieTTL.Seconds()))
	response.Redirect(c, response.SafeRedirectTarget(input.Next, "/"))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), response.SessionToken(c)); err != nil {
		response.ResponseError(c, err)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Redirect(c, response.LoginPath)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(response.SessionCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) renderLogin(c *gin.Context, input dto.LoginInput, errs validator.FormErrors) {
	if errs == nil {
		errs = validator.FormErrors{}
	}
	input.Password = ""
	response.Render(c, http.StatusOK, "login.html", gin.H{
		"form":   input,
		"errors": errs,
	})
}
