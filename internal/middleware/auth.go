package middleware

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"

	auth "newsagency.com/newsroom/internal/modules/auth/service"
	"newsagency.com/newsroom/pkg/apperror"
	"newsagency.com/newsroom/pkg/response"
)

type AuthMiddleware struct {
	authService auth.AuthService
}

func NewAuthMiddleware(authService auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth lets the request through only with a valid session. Anonymous
// requests are sent to the login page with the requested URL in ?next=.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := m.authService.Authenticate(c.Request.Context(), response.SessionToken(c))
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthorized) {
				response.Redirect(c, response.LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			response.ResponseError(c, err)
			return
		}

		c.Set(response.RedactorIDKey, session.Redactor.ID)
		c.Set(response.SessionIDKey, session.ID)
		c.Next()
	}
}
