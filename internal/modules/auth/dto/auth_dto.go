package dto

import "newsagency.com/newsroom/internal/entity"

type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required,max=150"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresIn   int64            `json:"expires_in"`
	SessionID   string           `json:"-"`
	Redactor    *entity.Redactor `json:"redactor"`
}

// Session is the authenticated identity behind a request.
type Session struct {
	ID       string
	Redactor *entity.Redactor
}
